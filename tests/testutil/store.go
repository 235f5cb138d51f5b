package testutil

import (
	"context"
	"testing"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:", nil)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestUser inserts an active user with a placeholder pin digest.
func NewTestUser(t *testing.T, s store.Store, username string) *model.User {
	t.Helper()

	u, err := s.CreateUser(context.Background(), model.User{
		Username: username,
		PinHash:  "test-digest",
	})
	if err != nil {
		t.Fatalf("creating test user %q: %v", username, err)
	}
	return u
}
