package testutils

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokesheet/internal/storage/sqlite"
)

// CreateTestSQLite opens a migrated database in the test's temp dir
func CreateTestSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "pokesheet.db"))
	require.NoError(t, err, "Failed to open test SQLite database")
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
