package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

const EventBoardChanged = "board_changed"

// Event is the only message the server ever pushes.
type Event struct {
	Type string `json:"type"`
}

var boardChangedMessage, _ = json.Marshal(Event{Type: EventBoardChanged})

// Hub is the registry of live realtime connections. Structural changes are
// serialized by mu; delivery itself is handed to each client's writer.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *zap.SugaredLogger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger.Sugar(),
	}
}

func (h *Hub) Add(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Infow("Client connected", "client_id", client.ID, "clients_count", count)
}

func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Infow("Client disconnected", "client_id", client.ID, "clients_count", count)
	}
}

// Broadcast queues board_changed for every open client. Clients that are not
// open are skipped; nothing is retried or kept for later.
func (h *Hub) Broadcast() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.clients {
		if client.enqueue(boardChangedMessage) {
			delivered++
		}
	}
	h.logger.Debugw("Broadcast board_changed", "clients_count", len(h.clients), "delivered", delivered)
}

// NotifyBoardChanged makes the hub usable as the board service's notifier
// in single-instance deployments.
func (h *Hub) NotifyBoardChanged(_ context.Context) {
	h.Broadcast()
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client. Used on shutdown, since hijacked
// connections are not closed by http.Server.Shutdown.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		client.close()
	}
}
