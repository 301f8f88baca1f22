package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookshare/internal/models"
	"bookshare/internal/service"
)

func getEvents(r http.Handler, query, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events"+query, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetEvents_RequiresAuth(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: &mockEventLog{}})

	if w := getEvents(r, "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestGetEvents_ListsWithCount(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	events := &mockEventLog{events: []models.UploadEvent{
		{EventID: "ev-1", OccurredAt: now, ActorEmail: "t@example.com", File: "a.pdf"},
		{EventID: "ev-2", OccurredAt: now.Add(time.Hour), ActorEmail: "t@example.com", File: "b.pdf"},
	}}
	auth := &mockAuth{parseClaims: studentClaims()}
	r := newTestRouter(&service.Service{Authorization: auth, EventLog: events})

	w := getEvents(r, "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["count"].(float64)) != 2 {
		t.Fatalf("expected count=2, got %v", m["count"])
	}
}

func TestGetEvents_ParsesDateOnlyToAsEndOfDay(t *testing.T) {
	events := &mockEventLog{}
	auth := &mockAuth{parseClaims: studentClaims()}
	r := newTestRouter(&service.Service{Authorization: auth, EventLog: events})

	w := getEvents(r, "?from=2026-08-01&to=2026-08-31", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if events.lastFilter.From.IsZero() || events.lastFilter.To.IsZero() {
		t.Fatalf("expected both bounds set, got %+v", events.lastFilter)
	}
	// Date-only 'to' covers the whole day.
	endOfDay := time.Date(2026, 8, 31, 23, 59, 59, 999999999, time.UTC)
	if !events.lastFilter.To.Equal(endOfDay) {
		t.Fatalf("expected end-of-day bound %v, got %v", endOfDay, events.lastFilter.To)
	}
}

func TestGetEvents_BadTimes(t *testing.T) {
	auth := &mockAuth{parseClaims: studentClaims()}
	r := newTestRouter(&service.Service{Authorization: auth, EventLog: &mockEventLog{}})

	if w := getEvents(r, "?from=not-a-date", "valid"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad 'from', got %d", w.Code)
	}
	if w := getEvents(r, "?to=also-bad", "valid"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad 'to', got %d", w.Code)
	}
	if w := getEvents(r, "?from=2026-08-31&to=2026-08-01", "valid"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}
}
