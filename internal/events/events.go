package events

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

type Channel string

func (c Channel) String() string {
	return string(c)
}

const (
	NOTIFICATION_CHANNEL Channel = "notifications"
)

type MessageType string

const (
	PING             MessageType = "ping"
	PONG             MessageType = "pong"
	MESSAGE          MessageType = "message"
	ERROR            MessageType = "error"
	AUTH_REQUEST     MessageType = "auth_request"
	AUTH_RESPONSE    MessageType = "auth_response"
	AUTH_SUCCESS     MessageType = "auth_success"
	AUTH_FAILURE     MessageType = "auth_failure"
	BOOKING_STATUS   MessageType = "booking.status"
	PAYMENT_DECISION MessageType = "payment.decision"
)

type Event struct {
	ID        string         `json:"id"`
	Type      MessageType    `json:"type"`
	Channel   Channel        `json:"channel"`
	UserIDs   []string       `json:"userIds,omitempty"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

type EventHandler func(event Event) error

const maxRetryDelay = 30 * time.Second

// EventBus fans events out to subscribed handlers. With a valkey client the
// events travel through pub/sub so every API instance sees them. Without one
// they are delivered in-process only.
type EventBus struct {
	client    valkey.Client
	log       logger.Logger
	handlers  map[Channel][]EventHandler
	listening map[Channel]bool
	mutex     sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	// retryDelay is the first wait before resubscribing after a dropped
	// subscription. It doubles up to maxRetryDelay.
	retryDelay time.Duration
}

func New(client valkey.Client) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	return &EventBus{
		client:    client,
		log:       logger.New("EventBus"),
		handlers:  make(map[Channel][]EventHandler),
		listening:  make(map[Channel]bool),
		ctx:        ctx,
		cancel:     cancel,
		retryDelay: time.Second,
	}
}

func (eb *EventBus) IsDistributed() bool {
	return eb.client != nil
}

func (eb *EventBus) Publish(channel Channel, event Event) error {
	log := eb.log.Function("Publish")

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Channel == "" {
		event.Channel = channel
	}

	if !eb.IsDistributed() {
		eb.notifyLocalHandlers(channel, event)
		return nil
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "eventID", event.ID)
	}

	ctx, cancel := context.WithTimeout(eb.ctx, 5*time.Second)
	defer cancel()

	err = eb.client.Do(ctx, eb.client.B().Publish().Channel(channel.String()).Message(string(eventData)).Build()).
		Error()
	if err != nil {
		return log.Err(
			"failed to publish event to valkey",
			err,
			"channel", channel,
			"eventID", event.ID,
		)
	}

	log.Debug("Event published", "channel", channel, "eventID", event.ID, "eventType", event.Type)
	return nil
}

// Subscribe registers a handler. The first handler on a channel starts the
// valkey listener for it, and local handlers are fed from that listener.
func (eb *EventBus) Subscribe(channel Channel, handler EventHandler) error {
	log := eb.log.Function("Subscribe")

	eb.mutex.Lock()
	eb.handlers[channel] = append(eb.handlers[channel], handler)
	startListener := eb.IsDistributed() && !eb.listening[channel]
	if startListener {
		eb.listening[channel] = true
	}
	eb.mutex.Unlock()

	log.Info("Handler subscribed to channel", "channel", channel)

	if startListener {
		eb.wg.Add(1)
		go eb.listenToChannel(channel)
	}

	return nil
}

func (eb *EventBus) notifyLocalHandlers(channel Channel, event Event) {
	log := eb.log.Function("notifyLocalHandlers")

	eb.mutex.RLock()
	handlers := append([]EventHandler(nil), eb.handlers[channel]...)
	eb.mutex.RUnlock()

	for i, handler := range handlers {
		go func(h EventHandler, handlerIndex int) {
			if err := h(event); err != nil {
				log.Er(
					"handler failed",
					err,
					"channel", channel,
					"eventID", event.ID,
					"handlerIndex", handlerIndex,
				)
			}
		}(handler, i)
	}
}

// listenToChannel keeps a subscription open until the bus closes, resubscribing
// with a growing delay whenever valkey drops it.
func (eb *EventBus) listenToChannel(channel Channel) {
	log := eb.log.Function("listenToChannel")
	defer eb.wg.Done()
	defer func() {
		eb.mutex.Lock()
		eb.listening[channel] = false
		eb.mutex.Unlock()
	}()

	delay := eb.retryDelay
	for {
		log.Info("Starting to listen to channel", "channel", channel)

		var received atomic.Bool
		err := eb.client.Receive(
			eb.ctx,
			eb.client.B().Subscribe().Channel(channel.String()).Build(),
			func(msg valkey.PubSubMessage) {
				received.Store(true)

				var event Event
				if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
					log.Er("failed to unmarshal event", err, "channel", channel)
					return
				}

				eb.notifyLocalHandlers(channel, event)
			},
		)
		if eb.ctx.Err() != nil {
			return
		}

		if received.Load() {
			delay = eb.retryDelay
		}
		log.Warn("Subscription dropped, retrying", "channel", channel, "error", err, "retryIn", delay)

		select {
		case <-eb.ctx.Done():
			return
		case <-time.After(delay):
		}

		delay = min(delay*2, maxRetryDelay)
	}
}

func (eb *EventBus) Close() error {
	eb.cancel()
	eb.wg.Wait()
	eb.log.Function("Close").Info("EventBus closed")
	return nil
}

// PublishNotification addresses an event to the given users.
func (eb *EventBus) PublishNotification(
	eventType MessageType,
	userIDs []string,
	data map[string]any,
) error {
	return eb.Publish(NOTIFICATION_CHANNEL, Event{
		Type:    eventType,
		UserIDs: userIDs,
		Data:    data,
	})
}

// Includes reports whether the event is addressed to userID. An event with no
// recipients is addressed to everyone.
func (e Event) Includes(userID string) bool {
	if len(e.UserIDs) == 0 {
		return true
	}
	for _, id := range e.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
