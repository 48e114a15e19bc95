package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/frontdesk/internal/audit"
	"github.com/railzwaylabs/frontdesk/internal/bootstrap"
	"github.com/railzwaylabs/frontdesk/internal/clock"
	"github.com/railzwaylabs/frontdesk/internal/config"
	"github.com/railzwaylabs/frontdesk/internal/customer"
	"github.com/railzwaylabs/frontdesk/internal/events"
	"github.com/railzwaylabs/frontdesk/internal/guest"
	"github.com/railzwaylabs/frontdesk/internal/ledger"
	"github.com/railzwaylabs/frontdesk/internal/migration"
	"github.com/railzwaylabs/frontdesk/internal/observability"
	"github.com/railzwaylabs/frontdesk/internal/occupancy"
	"github.com/railzwaylabs/frontdesk/internal/payment"
	"github.com/railzwaylabs/frontdesk/internal/quickrent"
	"github.com/railzwaylabs/frontdesk/internal/redis"
	"github.com/railzwaylabs/frontdesk/internal/release"
	"github.com/railzwaylabs/frontdesk/internal/reservation"
	"github.com/railzwaylabs/frontdesk/internal/room"
	"github.com/railzwaylabs/frontdesk/internal/sale"
	"github.com/railzwaylabs/frontdesk/internal/seed"
	"github.com/railzwaylabs/frontdesk/internal/server"
	"github.com/railzwaylabs/frontdesk/internal/stay"
	"github.com/railzwaylabs/frontdesk/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "frontdesk",
		Short:   "Front desk occupancy and reconciliation service",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newSeedCmd(), newTokenCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and record the schema state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the front desk API",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo rooms and customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

func newTokenCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Sign a desk user token with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := server.IssueToken(cfg.JWTSecret, args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	return cmd
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runSeed() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		fx.Invoke(migration.EnsureModels),
		fx.Invoke(func(lc fx.Lifecycle, conn *gorm.DB, node *snowflake.Node, log *zap.Logger) {
			lc.Append(fx.StartHook(func(ctx context.Context) error {
				if err := seed.EnsureDemoData(ctx, conn, node); err != nil {
					return err
				}
				log.Info("demo data ensured")
				return nil
			}))
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		fx.Invoke(migration.EnsureModels),
		bootstrap.Module,
		clock.Module,
		redis.Module,
		events.Module,
		audit.Module,
		room.Module,
		customer.Module,
		reservation.Module,
		ledger.Module,
		stay.Module,
		occupancy.Module,
		payment.Module,
		sale.Module,
		guest.Module,
		quickrent.Module,
		release.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
