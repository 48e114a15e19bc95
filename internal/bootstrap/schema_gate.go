package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/railzwaylabs/frontdesk/internal/config"
	"github.com/railzwaylabs/frontdesk/internal/migration"
	"github.com/railzwaylabs/frontdesk/pkg/db"
	"gorm.io/gorm"
)

var (
	ErrSchemaInactive         = errors.New("schema is not active")
	ErrSchemaVersionMismatch  = errors.New("schema version differs from this build")
	ErrSchemaChecksumMismatch = errors.New("migration scripts differ from the ones that built the schema")
)

// SchemaGate compares the schema_state row written by `frontdesk migrate`
// with the migrations embedded in the running binary.
type SchemaGate struct {
	db       *gorm.DB
	enabled  bool
	version  string
	checksum string
}

// NewSchemaGate is a no-op for sqlite, whose schema is rebuilt from the
// models at startup.
func NewSchemaGate(conn *gorm.DB, cfg config.Config) (*SchemaGate, error) {
	if cfg.DBDriver != db.DriverPostgres {
		return &SchemaGate{}, nil
	}

	latest, err := migration.LatestMigrationVersion()
	if err != nil {
		return nil, err
	}
	checksum, err := migration.MigrationsChecksum()
	if err != nil {
		return nil, err
	}
	return newGate(conn, strconv.FormatUint(uint64(latest), 10), checksum), nil
}

func newGate(conn *gorm.DB, version, checksum string) *SchemaGate {
	return &SchemaGate{db: conn, enabled: true, version: version, checksum: checksum}
}

func (g *SchemaGate) Check(ctx context.Context) error {
	if !g.enabled {
		return nil
	}

	state, err := loadSchemaState(ctx, g.db)
	if err != nil {
		return err
	}
	switch {
	case state.Status != StatusActive:
		return fmt.Errorf("%w (status %q)", ErrSchemaInactive, state.Status)
	case state.SchemaVersion != g.version:
		return fmt.Errorf("%w: database at %s, binary expects %s", ErrSchemaVersionMismatch, state.SchemaVersion, g.version)
	case state.Checksum != "" && state.Checksum != g.checksum:
		return ErrSchemaChecksumMismatch
	}
	return nil
}
