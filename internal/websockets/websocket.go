package websockets

import (
	"context"
	"time"

	"cleanconnect/internal/events"
	"cleanconnect/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	PING_INTERVAL     = 30 * time.Second
	PONG_TIMEOUT      = 60 * time.Second
	WRITE_TIMEOUT     = 10 * time.Second
	MAX_MESSAGE_SIZE  = 64 * 1024
	SEND_CHANNEL_SIZE = 64

	SYSTEM_CHANNEL       = "system"
	NOTIFICATION_CHANNEL = "notification"
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Authenticator resolves the token a client sends in its auth response.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

type Client struct {
	ID         string
	UserID     string
	Connection *websocket.Conn
	Manager    *Manager
	Status     int
	send       chan Message
	done       chan struct{}
}

type Manager struct {
	hub      *Hub
	auth     Authenticator
	log      logger.Logger
	eventBus *events.EventBus
}

func New(eventBus *events.EventBus, auth Authenticator) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub: &Hub{
			broadcast:  make(chan Message),
			register:   make(chan *Client),
			unregister: make(chan *Client),
			clients:    make(map[string]*Client),
		},
		auth:     auth,
		log:      log,
		eventBus: eventBus,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)

	if err := eventBus.Subscribe(events.NOTIFICATION_CHANNEL, manager.handleNotification); err != nil {
		return nil, log.Err("failed to subscribe to notifications", err)
	}

	return manager, nil
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	client := m.newClient(c)

	if err := client.sendAuthRequest(); err != nil {
		if err := c.Close(); err != nil {
			log.Er("failed to close connection", err)
		}
		return
	}

	m.hub.register <- client
	defer func() {
		log.Info("Client disconnected", "clientID", client.ID)
		m.hub.unregister <- client
		client.closeConnection()
	}()

	client.startAuthTimeout()

	go client.readPump()
	client.writePump()
}

func (m *Manager) newClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:         uuid.New().String(),
		Connection: conn,
		Manager:    m,
		Status:     STATUS_UNAUTHENTICATED,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
		done:       make(chan struct{}),
	}
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.unregister <- c
		c.closeConnection()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		log.Er("failed to set read deadline", err, "clientID", c.ID)
	}
	c.Connection.SetPongHandler(func(string) error {
		return c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				log.Er("Unexpected close error", err, "clientID", c.ID)
			}
			return
		}

		message.ID = uuid.New().String()
		message.Timestamp = time.Now()

		c.routeMessage(message)
	}
}

func (c *Client) routeMessage(message Message) {
	log := c.Manager.log.Function("routeMessage")

	if message.Type == string(events.AUTH_RESPONSE) {
		c.handleAuthResponse(message)
		return
	}

	if !c.isAuthenticated() {
		c.handleUnauthenticatedMessage(message)
		return
	}

	switch message.Type {
	case string(events.PING):
		c.enqueue(Message{
			ID:        uuid.New().String(),
			Type:      string(events.PONG),
			Channel:   SYSTEM_CHANNEL,
			Timestamp: time.Now(),
		})
	default:
		log.Warn("Unknown message type", "clientID", c.ID, "type", message.Type)
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case <-c.done:
			_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
			}
			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("WebSocket write error", err, "clientID", c.ID)
				return
			}

		case <-ticker.C:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline for ping", err, "clientID", c.ID)
			}
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) enqueue(message Message) {
	select {
	case c.send <- message:
	case <-c.done:
	default:
		c.Manager.log.Function("enqueue").Warn("Client send channel full, dropping message", "clientID", c.ID)
	}
}

func (c *Client) closeConnection() {
	if c.Connection == nil {
		return
	}
	_ = c.Connection.Close()
}

// handleNotification forwards a bus event to the connections of its recipients.
func (m *Manager) handleNotification(event events.Event) error {
	message := Message{
		ID:        event.ID,
		Type:      string(events.MESSAGE),
		Channel:   NOTIFICATION_CHANNEL,
		Action:    string(event.Type),
		Data:      event.Data,
		Timestamp: event.Timestamp,
	}

	if len(event.UserIDs) == 0 {
		m.BroadcastMessage(message)
		return nil
	}

	for _, userID := range event.UserIDs {
		m.SendMessageToUser(userID, message)
	}
	return nil
}

func (m *Manager) BroadcastMessage(message Message) {
	select {
	case m.hub.broadcast <- message:
	default:
		m.log.Function("BroadcastMessage").Warn("Broadcast channel is busy, dropping message", "messageID", message.ID)
	}
}
