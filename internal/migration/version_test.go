package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestMigrationVersion(t *testing.T) {
	v, err := LatestMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
}

func TestMigrationsChecksumIsStable(t *testing.T) {
	a, err := MigrationsChecksum()
	require.NoError(t, err)
	b, err := MigrationsChecksum()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
}

func TestParseMigrationVersion(t *testing.T) {
	v, ok := parseMigrationVersion("000012_add_index.up.sql")
	assert.True(t, ok)
	assert.Equal(t, uint(12), v)

	_, ok = parseMigrationVersion("init.up.sql")
	assert.False(t, ok)
}

func TestParseMigrationVersionRejectsZero(t *testing.T) {
	_, ok := parseMigrationVersion("000000_empty.up.sql")
	assert.False(t, ok)
}

func TestLockKeyIsStable(t *testing.T) {
	assert.Equal(t, lockKey("frontdesk.migrate"), migrateLockKey)
	assert.NotEqual(t, lockKey("frontdesk.migrate"), lockKey("frontdesk.seed"))
	assert.Positive(t, migrateLockKey)
}
