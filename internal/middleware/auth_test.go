package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skoefer/famhub/internal/auth"
	"github.com/skoefer/famhub/internal/database"
	"github.com/skoefer/famhub/internal/store"
)

func setupAuthTest(t *testing.T) (*store.SessionStore, string, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	family, err := store.NewFamilyStore(db).Create("Testfamilie", "hash")
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	profile, err := store.NewProfileStore(db).Create(family.ID, "Ana")
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	sessions := store.NewSessionStore(db)
	sess, err := sessions.Create(profile.ID, family.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sessions, sess.Token, family.ID
}

func TestRequireAuthValidToken(t *testing.T) {
	sessions, token, familyID := setupAuthTest(t)

	var gotFamily int64
	handler := RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFamily = auth.FamilyID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotFamily != familyID {
		t.Errorf("family in context = %d, want %d", gotFamily, familyID)
	}
}

func TestRequireAuthQueryToken(t *testing.T) {
	sessions, token, _ := setupAuthTest(t)

	handler := RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAuthRejects(t *testing.T) {
	sessions, _, _ := setupAuthTest(t)

	handler := RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	for _, header := range []string{"", "Bearer wrong-token", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}
