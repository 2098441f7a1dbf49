package testutil

import (
	"path/filepath"
	"testing"

	"github.com/courtsidehq/courtside/internal/db"
	"github.com/courtsidehq/courtside/internal/store"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// NewTestStore creates a store over a temporary migrated database.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(NewTestDB(t))
}
