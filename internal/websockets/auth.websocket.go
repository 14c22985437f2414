package websockets

import (
	"context"
	"time"

	"cleanconnect/internal/events"

	"github.com/google/uuid"
)

const AUTH_HANDSHAKE_TIMEOUT = 10 * time.Second

func (c *Client) isAuthenticated() bool {
	c.Manager.hub.mutex.RLock()
	defer c.Manager.hub.mutex.RUnlock()
	return c.Status == STATUS_AUTHENTICATED
}

func (c *Client) startAuthTimeout() {
	go func() {
		time.Sleep(AUTH_HANDSHAKE_TIMEOUT)
		if c.isAuthenticated() {
			return
		}

		c.Manager.log.Function("startAuthTimeout").Warn(
			"Client failed to authenticate within timeout, disconnecting",
			"clientID", c.ID,
		)
		c.closeConnection()
	}()
}

func (c *Client) sendAuthRequest() error {
	log := c.Manager.log.Function("sendAuthRequest")

	authRequest := Message{
		ID:        uuid.New().String(),
		Type:      string(events.AUTH_REQUEST),
		Channel:   SYSTEM_CHANNEL,
		Action:    "authenticate",
		Timestamp: time.Now(),
	}

	if err := c.Connection.WriteJSON(authRequest); err != nil {
		return log.Err("failed to send auth request", err, "clientID", c.ID)
	}
	return nil
}

func (c *Client) handleAuthResponse(message Message) {
	log := c.Manager.log.Function("handleAuthResponse")

	if c.isAuthenticated() {
		log.Warn("Auth response from already authenticated client", "clientID", c.ID)
		return
	}

	token, ok := message.Data["token"].(string)
	if !ok || token == "" {
		c.sendAuthFailure("Invalid token format")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), AUTH_HANDSHAKE_TIMEOUT)
	defer cancel()

	user, err := c.Manager.auth.Authenticate(ctx, token)
	if err != nil {
		log.Info("WebSocket token validation failed", "clientID", c.ID, "error", err.Error())
		c.sendAuthFailure("Authentication failed")
		return
	}

	c.Manager.hub.mutex.Lock()
	c.Status = STATUS_AUTHENTICATED
	c.UserID = user.ID
	c.Manager.hub.mutex.Unlock()

	log.Info("WebSocket client authenticated", "clientID", c.ID, "userID", user.ID)

	c.enqueue(Message{
		ID:        uuid.New().String(),
		Type:      string(events.AUTH_SUCCESS),
		Channel:   SYSTEM_CHANNEL,
		Action:    "authenticated",
		UserID:    user.ID,
		Data:      map[string]any{"userId": user.ID, "role": string(user.Role)},
		Timestamp: time.Now(),
	})
}

func (c *Client) sendAuthFailure(reason string) {
	c.enqueue(Message{
		ID:        uuid.New().String(),
		Type:      string(events.AUTH_FAILURE),
		Channel:   SYSTEM_CHANNEL,
		Action:    "authentication_failed",
		Data:      map[string]any{"reason": reason},
		Timestamp: time.Now(),
	})

	c.Manager.log.Function("sendAuthFailure").Info("Auth failure sent, closing connection", "clientID", c.ID, "reason", reason)

	go func() {
		time.Sleep(100 * time.Millisecond)
		c.closeConnection()
	}()
}

func (c *Client) handleUnauthenticatedMessage(message Message) {
	c.Manager.log.Function("handleUnauthenticatedMessage").Warn(
		"Blocking message from unauthenticated client",
		"clientID", c.ID,
		"type", message.Type,
	)

	c.enqueue(Message{
		ID:        uuid.New().String(),
		Type:      string(events.AUTH_FAILURE),
		Channel:   SYSTEM_CHANNEL,
		Action:    "authentication_required",
		Data:      map[string]any{"reason": "Authentication required"},
		Timestamp: time.Now(),
	})
}
