package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"bookshare/internal/models"
	"bookshare/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 2 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=60s", 2 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=60000", 2 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 2 * time.Second},
		{"both_present_interval_wins", "/ws?interval=5s&interval_ms=150", 5 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func wsDial(t *testing.T, srv *httptest.Server, rawQuery string) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = rawQuery

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func TestWebSocket_SnapshotThenUploads(t *testing.T) {
	now := time.Now().UTC().Add(time.Hour) // always newer than the watermark
	books := &mockBooks{count: 3}
	events := &mockEventLog{events: []models.UploadEvent{
		{EventID: "ev-1", OccurredAt: now, ActorEmail: "t@example.com", File: "a.pdf"},
	}}
	s := &service.Service{Books: books, EventLog: events}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := wsDial(t, srv, "interval_ms=20")
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	// Read initial library snapshot
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "library" {
		t.Fatalf("expected library envelope, got %+v", env)
	}
	var snap struct {
		Books int `json:"books"`
	}
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.Books != 3 {
		t.Fatalf("expected 3 books, got %d", snap.Books)
	}

	// Read the pushed upload events
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read uploads: %v", err)
	}
	if env.Type != "uploads" {
		t.Fatalf("expected uploads envelope, got %+v", env)
	}
	var evs []models.UploadEvent
	if err := json.Unmarshal(env.Data, &evs); err != nil {
		t.Fatalf("unmarshal events: %v", err)
	}
	if len(evs) != 1 || evs[0].File != "a.pdf" {
		t.Fatalf("unexpected events: %+v", evs)
	}
}

func TestWebSocket_InitialSnapshotError_Closes(t *testing.T) {
	books := &mockBooks{countErr: errors.New("boom")}
	s := &service.Service{Books: books, EventLog: &mockEventLog{}}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := wsDial(t, srv, "")
	defer conn.Close()

	// The server should close immediately after the failed initial snapshot.
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}
