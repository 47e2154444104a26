package persistence

import (
	"testing"

	"github.com/codops/backend/internal/infrastructure/config"
	"github.com/codops/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase_SQLiteMemory(t *testing.T) {
	db := newTestDatabase(t)

	assert.Equal(t, config.DriverSQLite, db.Driver)
	assert.NoError(t, db.Ping())

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)

	for _, m := range models.All() {
		assert.True(t, db.DB.Migrator().HasTable(m), "missing table for %T", m)
	}
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestNewDatabase_SQLiteFileCreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/cod.sqlite"
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         path,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate())
	assert.FileExists(t, path)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_foreign_keys=on", sqliteDSN(MemoryPath))
	assert.Equal(t,
		"file:data/cod.sqlite?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL",
		sqliteDSN("data/cod.sqlite"))
}

func TestDatabase_CloseThenPing(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         MemoryPath,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping())
}
