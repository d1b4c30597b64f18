package ws

import (
	"sync"

	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/observability"
	"floodguard_backend/internal/services/dto"
)

// Event is the envelope pushed to dashboard clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Manager tracks the open dashboard connections per user and fans
// notifications out to them. A user may hold several connections
// (multiple tabs); each one gets the event.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	metrics *observability.Metrics
}

func NewManager(metrics *observability.Metrics) *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		metrics:    metrics,
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if m.clients[client.UserID] == nil {
				m.clients[client.UserID] = make(map[*Client]struct{})
			}
			m.clients[client.UserID][client] = struct{}{}
			m.mu.Unlock()
			m.metrics.WebsocketClients.Inc()
			logger.Debug("ws client connected", "user_id", client.UserID)

		case client := <-m.unregister:
			m.mu.Lock()
			if set, ok := m.clients[client.UserID]; ok {
				if _, ok := set[client]; ok {
					delete(set, client)
					close(client.Send)
					if len(set) == 0 {
						delete(m.clients, client.UserID)
					}
					m.metrics.WebsocketClients.Dec()
					logger.Debug("ws client disconnected", "user_id", client.UserID)
				}
			}
			m.mu.Unlock()
		}
	}
}

// Publish pushes a freshly created notification to the user's open
// connections. Satisfies services.NotificationPublisher.
func (m *Manager) Publish(userID string, notification *dto.NotificationResponse) {
	m.send(userID, Event{Type: "notification", Payload: notification})
}

func (m *Manager) send(userID string, event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients[userID] {
		select {
		case client.Send <- event:
		default:
			// Slow consumer: drop the connection rather than block.
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}

// ClientCount returns the number of open connections.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int
	for _, set := range m.clients {
		n += len(set)
	}
	return n
}

// IsConnected reports whether the user has at least one open connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID]) > 0
}
