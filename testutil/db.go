// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/RushabhMehta2005/stores-api/config"
	"github.com/RushabhMehta2005/stores-api/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		DSN:      "file::memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
