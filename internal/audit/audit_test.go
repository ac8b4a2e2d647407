package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ziadkadry99/learndash/internal/db"
	"github.com/ziadkadry99/learndash/internal/session"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := Entry{
		ID:            "test-1",
		SessionID:     "sess-a",
		Action:        ActionCounterIncremented,
		Section:       "state",
		Summary:       "counter 0 -> 1",
		PreviousValue: "0",
		NewValue:      "1",
	}
	if err := store.Log(ctx, entry); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "test-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry, got nil")
	}
	if got.SessionID != "sess-a" || got.Action != ActionCounterIncremented || got.Section != "state" {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.PreviousValue != "0" || got.NewValue != "1" {
		t.Errorf("values: got %q -> %q", got.PreviousValue, got.NewValue)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
	if time.Since(got.Timestamp) > time.Hour {
		t.Errorf("timestamp %s is far in the past", got.Timestamp)
	}
}

func TestLogGeneratesUUID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Log(ctx, Entry{SessionID: "s", Action: ActionParamsCleared}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	entries, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if len(entries[0].ID) != 36 {
		t.Errorf("expected UUID id, got %q", entries[0].ID)
	}
	if entries[0].PreviousValue != "" || entries[0].NewValue != "" {
		t.Errorf("expected empty values, got %+v", entries[0])
	}
}

func seed(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	entries := []Entry{
		{SessionID: "a", Action: ActionCounterIncremented, Section: "state"},
		{SessionID: "a", Action: ActionCounterReset, Section: "state"},
		{SessionID: "b", Action: ActionContactSubmitted, Section: "files"},
		{SessionID: "b", Action: ActionContactRejected, Section: "files"},
		{SessionID: "b", Action: ActionContactRejected, Section: "files"},
	}
	for _, e := range entries {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}
}

func TestQueryFilters(t *testing.T) {
	store := setupStore(t)
	seed(t, store)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter QueryFilter
		want   int
	}{
		{"all", QueryFilter{}, 5},
		{"session", QueryFilter{SessionID: "a"}, 2},
		{"action", QueryFilter{Action: ActionContactRejected}, 2},
		{"section", QueryFilter{Section: "files"}, 3},
		{"combined", QueryFilter{SessionID: "b", Action: ActionContactSubmitted}, 1},
		{"limit", QueryFilter{Limit: 2}, 2},
		{"offset", QueryFilter{Offset: 4}, 1},
		{"limit offset", QueryFilter{Limit: 2, Offset: 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(entries) != tt.want {
				t.Errorf("got %d entries, want %d", len(entries), tt.want)
			}
		})
	}
}

func TestQueryNewestFirst(t *testing.T) {
	store := setupStore(t)
	seed(t, store)

	entries, err := store.Query(context.Background(), QueryFilter{SessionID: "a"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 2 || entries[0].Action != ActionCounterReset {
		t.Errorf("expected reset first, got %+v", entries)
	}
}

func TestCountByAction(t *testing.T) {
	store := setupStore(t)
	seed(t, store)

	counts, err := store.CountByAction(context.Background(), "b")
	if err != nil {
		t.Fatalf("CountByAction: %v", err)
	}
	if counts[ActionContactRejected] != 2 || counts[ActionCounterIncremented] != 0 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	seed(t, store)
	ctx := context.Background()

	// Delete entries before far in the future (should delete all).
	deleted, err := store.DeleteBefore(ctx, time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if deleted != 5 {
		t.Errorf("expected 5 deleted, got %d", deleted)
	}

	entries, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 remaining entries, got %d", len(entries))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := setupStore(t)

	got, err := store.GetByID(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

// setupRouter serves the audit routes as if every request came from sessionID.
func setupRouter(store *Store, sessionID string) chi.Router {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if sessionID != "" {
				req = req.WithContext(session.WithID(req.Context(), sessionID))
			}
			next.ServeHTTP(w, req)
		})
	})
	RegisterRoutes(r, store)
	return r
}

func TestHTTPQuery(t *testing.T) {
	store := setupStore(t)
	seed(t, store)
	r := setupRouter(store, "b")

	req := httptest.NewRequest(http.MethodGet, "/api/audit/?action=contact_rejected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var entries []Entry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestHTTPQueryOnlyOwnSession(t *testing.T) {
	store := setupStore(t)
	seed(t, store)
	r := setupRouter(store, "a")

	// session_id in the query cannot widen the view.
	req := httptest.NewRequest(http.MethodGet, "/api/audit/?session_id=b", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var entries []Entry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.SessionID != "a" {
			t.Errorf("leaked entry of session %q: %+v", e.SessionID, e)
		}
	}
}

func TestHTTPRequiresSession(t *testing.T) {
	r := setupRouter(setupStore(t), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/audit/", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestHTTPQueryEmpty(t *testing.T) {
	r := setupRouter(setupStore(t), "a")

	req := httptest.NewRequest(http.MethodGet, "/api/audit/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestHTTPGetByID(t *testing.T) {
	store := setupStore(t)
	store.Log(context.Background(), Entry{ID: "e1", SessionID: "s", Action: ActionFileUploaded})
	r := setupRouter(store, "s")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/audit/e1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	setupRouter(store, "other").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/audit/e1", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("other session: expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/audit/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestHTTPStats(t *testing.T) {
	store := setupStore(t)
	seed(t, store)
	r := setupRouter(store, "b")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/audit/stats", nil))

	var counts map[string]int
	if err := json.NewDecoder(w.Body).Decode(&counts); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if counts["contact_rejected"] != 2 {
		t.Errorf("unexpected stats: %v", counts)
	}
}
