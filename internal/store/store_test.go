package store

import (
	"database/sql"
	"testing"

	"github.com/skoefer/famhub/internal/database"
)

// setupTestDB opens a fresh in-memory database with migrations applied and
// one family + profile to hang records off.
func setupTestDB(t *testing.T) (*sql.DB, int64, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// Ensure foreign keys are enforced (modernc/sqlite may not honor DSN param for :memory:)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	family, err := NewFamilyStore(db).Create("Testfamilie", "hash")
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	profile, err := NewProfileStore(db).Create(family.ID, "Ana")
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return db, family.ID, profile.ID
}

func strPtr(s string) *string { return &s }
