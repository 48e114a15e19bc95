package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// RunMigrations brings a postgres database to the latest embedded version
// and records the version and checksum in schema_state for the schema gate.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}
	return withSchemaLock(ctx, db, func() error {
		return migrateUp(ctx, db)
	})
}

func migrateUp(ctx context.Context, db *sql.DB) error {
	target, err := LatestMigrationVersion()
	if err != nil {
		return err
	}
	checksum, err := MigrationsChecksum()
	if err != nil {
		return err
	}

	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	if _, err := cleanVersion(m); err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	applied, err := cleanVersion(m)
	if err != nil {
		return err
	}
	if applied != target {
		return fmt.Errorf("schema at version %d after migrate, embedded scripts end at %d", applied, target)
	}
	return recordSchemaState(ctx, db, strconv.FormatUint(uint64(applied), 10), checksum)
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	scripts, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	source, err := iofs.New(scripts, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// cleanVersion returns the applied version and refuses a dirty schema. An
// empty database reports version 0.
func cleanVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("read migration version: %w", err)
	case dirty:
		return 0, fmt.Errorf("schema is dirty at version %d; fix it by hand before migrating", version)
	}
	return version, nil
}
