package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/byrnald/inclusive-sign-translator/internal/metrics"
)

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ClientCount() != want {
		t.Fatalf("expected %d clients, got %d", want, hub.ClientCount())
	}
}

func TestHub_PublishWithoutClients(t *testing.T) {
	hub := NewHub(nil)

	// Publishing into an empty hub must not panic or block
	hub.Publish(Update{Letter: "A", Confidence: 0.7})

	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestHub_PublishToClient(t *testing.T) {
	m := metrics.New()
	hub := NewHub(m)
	ts := httptest.NewServer(hub)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	waitForClients(t, hub, 1)
	if got := m.SocketClients.Load(); got != 1 {
		t.Errorf("expected socket client metric 1, got %d", got)
	}

	sent := Update{
		Letter:     "B",
		Confidence: 0.8,
		Stable:     true,
		Fingers:    5,
		Timestamp:  time.Now().UnixMilli(),
	}
	hub.Publish(sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read websocket message: %v", err)
	}

	var got Update
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("failed to unmarshal update: %v", err)
	}
	if got.Letter != "B" || !got.Stable || got.Fingers != 5 {
		t.Errorf("update mismatch: %+v", got)
	}
	if got.Confidence != 0.8 {
		t.Errorf("confidence mismatch: got %f, want 0.8", got.Confidence)
	}

	// Closing the connection unregisters the client
	conn.Close()
	waitForClients(t, hub, 0)
	if got := m.SocketClients.Load(); got != 0 {
		t.Errorf("expected socket client metric 0 after close, got %d", got)
	}
}
