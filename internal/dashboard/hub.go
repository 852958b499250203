package dashboard

import (
	"net/http"
	"sync"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// RefreshMessage tells dashboards to reload the board
const RefreshMessage = "REFRESH"

// Hub tracks open dashboard websockets and pushes refresh notices
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[string]*websocket.Conn
}

// NewHub creates an empty hub. Any origin may connect.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*websocket.Conn),
	}
}

// Serve upgrades the request and holds the connection until the client leaves
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", logger.Fields{"error": err.Error()})
		return
	}

	id := uuid.NewString()
	h.register(id, conn)
	defer h.unregister(id)

	// Drain reads so close frames are processed
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends REFRESH to every client, dropping the ones that fail
func (h *Hub) Broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(RefreshMessage)); err != nil {
			logger.Warn("Failed to send WS message, removing client", logger.Fields{"client_id": id, "error": err.Error()})
			conn.Close()
			delete(h.clients, id)
		}
	}
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[id] = conn
	logger.Info("WebSocket client connected", logger.Fields{"client_id": id})
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.clients[id]; ok {
		conn.Close()
		delete(h.clients, id)
		logger.Info("WebSocket client disconnected", logger.Fields{"client_id": id})
	}
}
