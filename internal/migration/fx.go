package migration

import (
	"context"
	"time"

	"github.com/railzwaylabs/frontdesk/internal/config"
	"github.com/railzwaylabs/frontdesk/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(Apply),
)

// Apply migrates the configured database: embedded SQL on postgres,
// model-driven on sqlite.
func Apply(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
	if cfg.DBDriver != db.DriverPostgres {
		log.Info("applying model migrations", zap.String("driver", cfg.DBDriver))
		return AutoMigrate(conn)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	log.Info("applying embedded migrations")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	return RunMigrations(ctx, sqlDB)
}

// EnsureModels brings a sqlite schema up to the models at server start.
// Postgres schemas are owned by the migrate command.
func EnsureModels(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
	if cfg.DBDriver == db.DriverPostgres {
		return nil
	}
	return Apply(conn, cfg, log)
}
