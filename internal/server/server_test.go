package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skoefer/famhub/internal/agenda"
	"github.com/skoefer/famhub/internal/database"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv := New(db, agenda.WeekStartMonday, slog.Default())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON sends a JSON request and decodes the response body into out (when
// out is non-nil). It returns the status code.
func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func registerFamily(t *testing.T, ts *httptest.Server, family, code, profile string) string {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	status := doJSON(t, ts, http.MethodPost, "/api/register", "", map[string]string{
		"family_name":  family,
		"join_code":    code,
		"profile_name": profile,
	}, &out)
	if status != http.StatusCreated {
		t.Fatalf("register returned %d", status)
	}
	if out.Token == "" {
		t.Fatal("register returned no token")
	}
	return out.Token
}

func TestRegisterAndLogin(t *testing.T) {
	ts := setupServer(t)
	registerFamily(t, ts, "Sommer", "geheim123", "Lena")

	var out struct {
		Token string `json:"token"`
	}
	status := doJSON(t, ts, http.MethodPost, "/api/login", "", map[string]string{
		"family_name":  "Sommer",
		"join_code":    "geheim123",
		"profile_name": "Jonas",
	}, &out)
	if status != http.StatusOK {
		t.Fatalf("login returned %d", status)
	}
	if out.Token == "" {
		t.Fatal("login returned no token")
	}

	status = doJSON(t, ts, http.MethodPost, "/api/login", "", map[string]string{
		"family_name":  "Sommer",
		"join_code":    "falsch",
		"profile_name": "Jonas",
	}, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("login with wrong code returned %d, want 401", status)
	}
}

func TestDuplicateFamilyName(t *testing.T) {
	ts := setupServer(t)
	registerFamily(t, ts, "Sommer", "geheim123", "Lena")

	status := doJSON(t, ts, http.MethodPost, "/api/register", "", map[string]string{
		"family_name":  "Sommer",
		"join_code":    "anders999",
		"profile_name": "Max",
	}, nil)
	if status != http.StatusConflict {
		t.Fatalf("duplicate register returned %d, want 409", status)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := setupServer(t)

	if status := doJSON(t, ts, http.MethodGet, "/api/events", "", nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated request returned %d, want 401", status)
	}
	if status := doJSON(t, ts, http.MethodGet, "/api/events", "bogus-token", nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("bad token returned %d, want 401", status)
	}
}

func TestEventValidation(t *testing.T) {
	ts := setupServer(t)
	token := registerFamily(t, ts, "Sommer", "geheim123", "Lena")

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"event_date": "2100-05-10"}},
		{"bad date", map[string]any{"title": "Zahnarzt", "event_date": "10.05.2100"}},
		{"bad time", map[string]any{"title": "Zahnarzt", "event_date": "2100-05-10", "event_time": "9am"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if status := doJSON(t, ts, http.MethodPost, "/api/events", token, tc.body, nil); status != http.StatusBadRequest {
				t.Errorf("returned %d, want 400", status)
			}
		})
	}
}

type calendarState struct {
	Screen string `json:"screen"`
	Mode   string `json:"mode"`
	Month  string `json:"month"`
	Agenda []struct {
		Key   string `json:"key"`
		Date  string `json:"date"`
		Items []struct {
			Kind  string `json:"kind"`
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"items"`
	} `json:"agenda"`
	Grid []struct {
		Date    string `json:"date"`
		InMonth bool   `json:"in_month"`
	} `json:"grid"`
	Detail *struct {
		Kind  string `json:"kind"`
		Title string `json:"title"`
		Age   int    `json:"age"`
	} `json:"detail"`
	Form *struct {
		Editing bool   `json:"editing"`
		EventID int64  `json:"event_id"`
		Date    string `json:"date"`
	} `json:"form"`
}

func TestCalendarFlow(t *testing.T) {
	ts := setupServer(t)
	token := registerFamily(t, ts, "Sommer", "geheim123", "Lena")

	var event struct {
		ID int64 `json:"id"`
	}
	status := doJSON(t, ts, http.MethodPost, "/api/events", token, map[string]any{
		"title":      "Zahnarzt",
		"event_date": "2100-05-10",
		"event_time": "14:30",
	}, &event)
	if status != http.StatusCreated {
		t.Fatalf("create event returned %d", status)
	}

	var todo struct {
		ID int64 `json:"id"`
	}
	status = doJSON(t, ts, http.MethodPost, "/api/todos", token, map[string]any{
		"task":   "Miete zahlen",
		"due_at": "2100-05-10T09:00:00",
	}, &todo)
	if status != http.StatusCreated {
		t.Fatalf("create todo returned %d", status)
	}

	status = doJSON(t, ts, http.MethodPost, "/api/contacts", token, map[string]any{
		"first_name": "Oma",
		"last_name":  "Erika",
		"birthdate":  "1950-05-10",
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("create contact returned %d", status)
	}

	// The upcoming agenda puts all three on the same day: event, todo,
	// then birthday.
	var state calendarState
	if status := doJSON(t, ts, http.MethodGet, "/api/calendar", token, nil, &state); status != http.StatusOK {
		t.Fatalf("calendar state returned %d", status)
	}
	if state.Screen != "listing" || state.Mode != "upcoming" {
		t.Fatalf("initial state %s/%s, want listing/upcoming", state.Screen, state.Mode)
	}

	var day *struct {
		Key   string `json:"key"`
		Date  string `json:"date"`
		Items []struct {
			Kind  string `json:"kind"`
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"items"`
	}
	for i := range state.Agenda {
		if state.Agenda[i].Date == "2100-05-10" {
			day = &state.Agenda[i]
		}
	}
	if day == nil {
		t.Fatal("agenda has no group for 2100-05-10")
	}
	if len(day.Items) != 3 {
		t.Fatalf("day has %d items, want 3", len(day.Items))
	}
	wantKinds := []string{"event", "todo", "birthday"}
	for i, kind := range wantKinds {
		if day.Items[i].Kind != kind {
			t.Errorf("item %d kind = %s, want %s", i, day.Items[i].Kind, kind)
		}
	}

	// Switch to the grid and jump to May 2100.
	if status := doJSON(t, ts, http.MethodPost, "/api/calendar/mode", token, map[string]string{"mode": "calendar"}, &state); status != http.StatusOK {
		t.Fatalf("set mode returned %d", status)
	}
	if status := doJSON(t, ts, http.MethodPost, "/api/calendar/navigate", token, map[string]string{"month": "2100-05"}, &state); status != http.StatusOK {
		t.Fatalf("navigate returned %d", status)
	}
	if state.Screen != "grid" {
		t.Fatalf("screen = %s, want grid", state.Screen)
	}
	if len(state.Grid) != agenda.GridSize {
		t.Fatalf("grid has %d cells, want %d", len(state.Grid), agenda.GridSize)
	}

	// Selecting the todo opens the detail view.
	if status := doJSON(t, ts, http.MethodPost, "/api/calendar/select", token, map[string]any{"kind": "todo", "id": todo.ID}, &state); status != http.StatusOK {
		t.Fatalf("select returned %d", status)
	}
	if state.Screen != "detail" || state.Detail == nil {
		t.Fatalf("expected detail screen, got %s", state.Screen)
	}
	if state.Detail.Title != "Miete zahlen" {
		t.Errorf("detail title = %q", state.Detail.Title)
	}

	// Selecting an event opens the edit form instead.
	if status := doJSON(t, ts, http.MethodPost, "/api/calendar/select", token, map[string]any{"kind": "event", "id": event.ID}, &state); status != http.StatusOK {
		t.Fatalf("select event returned %d", status)
	}
	if state.Screen != "form" || state.Form == nil || !state.Form.Editing {
		t.Fatalf("expected edit form, got screen %s", state.Screen)
	}
	if state.Form.EventID != event.ID {
		t.Errorf("form event id = %d, want %d", state.Form.EventID, event.ID)
	}

	// Closing without submitting returns to the grid.
	if status := doJSON(t, ts, http.MethodPost, "/api/calendar/close", token, map[string]bool{"submitted": false}, &state); status != http.StatusOK {
		t.Fatalf("close returned %d", status)
	}
	if state.Screen != "grid" {
		t.Fatalf("screen after close = %s, want grid", state.Screen)
	}
}

func TestCalendarSeesMutations(t *testing.T) {
	ts := setupServer(t)
	token := registerFamily(t, ts, "Sommer", "geheim123", "Lena")

	var state calendarState
	doJSON(t, ts, http.MethodGet, "/api/calendar", token, nil, &state)
	if len(state.Agenda) != 0 {
		t.Fatalf("fresh family agenda has %d groups, want 0", len(state.Agenda))
	}

	// A created event shows up on the next state read without an explicit
	// refresh call.
	status := doJSON(t, ts, http.MethodPost, "/api/events", token, map[string]any{
		"title":      "Elternabend",
		"event_date": "2100-09-01",
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("create event returned %d", status)
	}

	doJSON(t, ts, http.MethodGet, "/api/calendar", token, nil, &state)
	if len(state.Agenda) != 1 {
		t.Fatalf("agenda has %d groups after create, want 1", len(state.Agenda))
	}
	if state.Agenda[0].Items[0].Title != "Elternabend" {
		t.Errorf("agenda item title = %q", state.Agenda[0].Items[0].Title)
	}
}

func TestFamilyScoping(t *testing.T) {
	ts := setupServer(t)
	tokenA := registerFamily(t, ts, "Sommer", "geheim123", "Lena")
	tokenB := registerFamily(t, ts, "Winter", "geheim456", "Max")

	var event struct {
		ID int64 `json:"id"`
	}
	status := doJSON(t, ts, http.MethodPost, "/api/events", tokenA, map[string]any{
		"title":      "Zahnarzt",
		"event_date": "2100-05-10",
	}, &event)
	if status != http.StatusCreated {
		t.Fatalf("create event returned %d", status)
	}

	path := fmt.Sprintf("/api/events/%d", event.ID)
	if status := doJSON(t, ts, http.MethodGet, path, tokenB, nil, nil); status != http.StatusNotFound {
		t.Fatalf("cross-family get returned %d, want 404", status)
	}
	if status := doJSON(t, ts, http.MethodDelete, path, tokenB, nil, nil); status != http.StatusNotFound {
		t.Fatalf("cross-family delete returned %d, want 404", status)
	}

	var state calendarState
	doJSON(t, ts, http.MethodGet, "/api/calendar", tokenB, nil, &state)
	if len(state.Agenda) != 0 {
		t.Fatalf("family B sees %d agenda groups, want 0", len(state.Agenda))
	}
}

func TestTodoDoneFlow(t *testing.T) {
	ts := setupServer(t)
	token := registerFamily(t, ts, "Sommer", "geheim123", "Lena")

	var todo struct {
		ID     int64  `json:"id"`
		Done   bool   `json:"done"`
		DoneBy *int64 `json:"done_by"`
	}
	status := doJSON(t, ts, http.MethodPost, "/api/todos", token, map[string]any{
		"task": "Müll rausbringen",
	}, &todo)
	if status != http.StatusCreated {
		t.Fatalf("create todo returned %d", status)
	}

	path := fmt.Sprintf("/api/todos/%d/done", todo.ID)
	if status := doJSON(t, ts, http.MethodPost, path, token, map[string]bool{"done": true}, &todo); status != http.StatusOK {
		t.Fatalf("set done returned %d", status)
	}
	if !todo.Done {
		t.Fatal("todo not marked done")
	}
	if todo.DoneBy == nil {
		t.Fatal("done_by not recorded")
	}

	if status := doJSON(t, ts, http.MethodPost, path, token, map[string]bool{"done": false}, &todo); status != http.StatusOK {
		t.Fatalf("unset done returned %d", status)
	}
	if todo.Done || todo.DoneBy != nil {
		t.Fatal("expected done state cleared")
	}
}

func TestLogout(t *testing.T) {
	ts := setupServer(t)
	token := registerFamily(t, ts, "Sommer", "geheim123", "Lena")

	if status := doJSON(t, ts, http.MethodPost, "/api/logout", token, nil, nil); status != http.StatusNoContent {
		t.Fatalf("logout returned %d", status)
	}
	if status := doJSON(t, ts, http.MethodGet, "/api/events", token, nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("request after logout returned %d, want 401", status)
	}
}

func TestHealth(t *testing.T) {
	ts := setupServer(t)

	var out map[string]string
	if status := doJSON(t, ts, http.MethodGet, "/health", "", nil, &out); status != http.StatusOK {
		t.Fatalf("health returned %d", status)
	}
	if out["status"] != "ok" {
		t.Fatalf("health status = %q", out["status"])
	}
}
