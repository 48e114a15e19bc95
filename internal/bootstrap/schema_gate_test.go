package bootstrap

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/frontdesk/internal/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStateDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`CREATE TABLE schema_state (
		id BOOLEAN PRIMARY KEY,
		status VARCHAR(20) NOT NULL,
		schema_version VARCHAR(20) NOT NULL,
		checksum VARCHAR(64) NOT NULL,
		activated_at TIMESTAMP NOT NULL
	)`).Error)
	return conn
}

func TestSchemaGateRequiresRecordedState(t *testing.T) {
	conn := newStateDB(t)
	err := newGate(conn, "1", "abc").Check(context.Background())
	require.ErrorIs(t, err, ErrSchemaStateNotFound)
}

func TestSchemaGateComparesVersionAndChecksum(t *testing.T) {
	conn := newStateDB(t)
	require.NoError(t, conn.Exec(
		`INSERT INTO schema_state (id, status, schema_version, checksum, activated_at) VALUES (TRUE, ?, ?, ?, ?)`,
		"active", "1", "abc", time.Now().UTC(),
	).Error)

	ctx := context.Background()
	require.NoError(t, newGate(conn, "1", "abc").Check(ctx))
	require.ErrorIs(t, newGate(conn, "2", "abc").Check(ctx), ErrSchemaVersionMismatch)
	require.ErrorIs(t, newGate(conn, "1", "def").Check(ctx), ErrSchemaChecksumMismatch)

	require.NoError(t, conn.Exec(`UPDATE schema_state SET status = ?`, "draining").Error)
	require.ErrorIs(t, newGate(conn, "1", "abc").Check(ctx), ErrSchemaInactive)
}

func TestSchemaGateSkipsSqlite(t *testing.T) {
	gate, err := NewSchemaGate(nil, config.Config{DBDriver: "sqlite"})
	require.NoError(t, err)
	require.NoError(t, gate.Check(context.Background()))
}
