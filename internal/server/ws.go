package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/byrnald/inclusive-sign-translator/internal/metrics"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Update is one recognition result pushed to WebSocket clients.
type Update struct {
	Letter     string  `json:"letter"`
	Confidence float64 `json:"confidence"`
	Stable     bool    `json:"stable"`
	Fingers    int     `json:"fingers"`
	Timestamp  int64   `json:"timestamp"`
}

// Hub broadcasts recognition updates to connected WebSocket clients. The
// pipeline publishes into it; clients only listen.
type Hub struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
	metrics *metrics.Metrics
}

// NewHub creates a new Hub.
func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		metrics: m,
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.SocketClients.Add(1)
	}

	defer func() {
		if h.metrics != nil {
			h.metrics.SocketClients.Add(^uint64(0))
		}
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish sends an update to all connected clients.
func (h *Hub) Publish(u Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(u)
	if err != nil {
		return
	}

	for conn := range h.clients {
		// Failed writes surface in the client's read loop, which
		// unregisters the connection
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
