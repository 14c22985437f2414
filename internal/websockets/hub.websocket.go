package websockets

import (
	"sync"
	"time"
)

const (
	STATUS_UNAUTHENTICATED = iota
	STATUS_AUTHENTICATED
)

type Hub struct {
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			m.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message, m)
		}
	}
}

func (m *Manager) registerClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	m.hub.clients[client.ID] = client
	m.log.Function("registerClient").Info("Client registered", "clientID", client.ID)
}

// unregisterClient is safe to call more than once for the same client.
func (m *Manager) unregisterClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	if _, ok := m.hub.clients[client.ID]; !ok {
		return
	}

	delete(m.hub.clients, client.ID)
	close(client.done)

	m.log.Function("unregisterClient").Info(
		"Client unregistered",
		"clientID", client.ID,
		"userID", client.UserID,
	)
}

func (h *Hub) broadcastMessage(message Message, m *Manager) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, client := range h.clients {
		if client.Status != STATUS_AUTHENTICATED {
			continue
		}
		m.deliver(client, message)
	}
}

func (m *Manager) SendMessageToUser(userID string, message Message) {
	log := m.log.Function("SendMessageToUser")

	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()

	connections := 0
	for _, client := range m.hub.clients {
		if client.Status == STATUS_AUTHENTICATED && client.UserID == userID {
			connections++
			m.deliver(client, message)
		}
	}

	if connections == 0 {
		log.Debug("No connections found for user", "userID", userID)
		return
	}

	log.Info("Message sent to user connections", "userID", userID, "messageID", message.ID, "connections", connections)
}

// deliver must be called with the hub lock held. A client that stays full for
// five seconds is disconnected.
func (m *Manager) deliver(client *Client, message Message) {
	select {
	case client.send <- message:
	default:
		go func(c *Client, msg Message) {
			select {
			case c.send <- msg:
			case <-c.done:
			case <-time.After(5 * time.Second):
				_ = m.log.Function("deliver").Error("Client too slow, disconnecting", "clientID", c.ID)
				m.unregisterClient(c)
			}
		}(client, message)
	}
}

func (m *Manager) ConnectionCount() int {
	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()
	return len(m.hub.clients)
}
