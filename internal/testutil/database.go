// Package testutil provides test helpers for database-backed tests.
package testutil

import (
	"context"
	"testing"

	"github.com/himynameismarvin/budget-bop/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite database seeded with the
// given categories. Cleanup is registered automatically.
func SetupTestDB(t *testing.T, categories ...string) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for _, name := range categories {
		if _, err := store.CreateCategory(ctx, name, ""); err != nil {
			t.Fatalf("failed to seed category %q: %v", name, err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
