package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/pkg/observability"
	"github.com/rs/zerolog"
)

// Notification types
const (
	TypeCommunicationSent = "communication.sent"
)

// Hub keeps the connected clients of every user and pushes notifications to them
type Hub struct {
	// Registered clients organized by user ID
	clients map[uuid.UUID]map[*Client]bool

	// Outbound notifications
	deliver chan *delivery

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Guards clients for readers outside the run loop
	mu sync.RWMutex

	logger zerolog.Logger
}

// Notification is a server-pushed event
type Notification struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

type delivery struct {
	userIDs []uuid.UUID
	payload []byte
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		deliver:    make(chan *delivery, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and deliveries until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliver:
			h.deliverNotification(d)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	observability.WebsocketClients.Inc()

	h.logger.Info().
		Str("userID", client.userID.String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops client and closes its send channel. Callers hold mu.
func (h *Hub) removeLocked(client *Client) {
	userClients, ok := h.clients[client.userID]
	if !ok || !userClients[client] {
		return
	}
	delete(userClients, client)
	close(client.send)
	observability.WebsocketClients.Dec()

	if len(userClients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().
		Str("userID", client.userID.String()).
		Msg("Client unregistered")
}

func (h *Hub) deliverNotification(d *delivery) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for _, userID := range d.userIDs {
		for client := range h.clients[userID] {
			select {
			case client.send <- d.payload:
				sent++
			default:
				// slow consumer
				h.removeLocked(client)
			}
		}
	}

	h.logger.Debug().
		Int("recipientCount", len(d.userIDs)).
		Int("clientCount", sent).
		Msg("Notification delivered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, userClients := range h.clients {
		for client := range userClients {
			h.removeLocked(client)
		}
	}
}

// Notify queues n for every connected client of the given users.
// It returns without blocking forever once the hub has stopped.
func (h *Hub) Notify(userIDs []uuid.UUID, n Notification) {
	if len(userIDs) == 0 {
		return
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(n)
	if err != nil {
		h.logger.Error().Err(err).Str("type", n.Type).Msg("Failed to marshal notification")
		return
	}
	select {
	case h.deliver <- &delivery{userIDs: userIDs, payload: payload}:
	case <-h.done:
	}
}

// ClientCount returns the number of connections a user currently holds
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
