package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
)

// migrateLockKey is shared by every frontdesk instance pointed at the same
// database, so two deploys never run migrations at once.
var migrateLockKey = lockKey("frontdesk.migrate")

var ErrMigrationLocked = errors.New("another migrate run holds the schema lock")

func lockKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64() >> 1)
}

// withSchemaLock runs fn while holding a session-level postgres advisory
// lock. The lock lives on one pooled connection, which is pinned for the
// duration.
func withSchemaLock(ctx context.Context, db *sql.DB, fn func() error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("reserve lock connection: %w", err)
	}
	defer conn.Close()

	var locked bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", migrateLockKey).Scan(&locked); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}
	if !locked {
		return ErrMigrationLocked
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", migrateLockKey)
	}()

	return fn()
}
