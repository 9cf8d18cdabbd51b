package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventUserSaved      = "user_saved"
	EventServiceCreated = "service_created"
	EventServiceUpdated = "service_updated"
	EventServiceDeleted = "service_deleted"
	EventBookingCreated = "booking_created"
	EventBookingUpdated = "booking_updated"
	EventBookingDeleted = "booking_deleted"
)

// ServiceEvents lists every event that changes the services collection.
var ServiceEvents = []string{EventServiceCreated, EventServiceUpdated, EventServiceDeleted}

// AllEvents lists every event type the API publishes.
var AllEvents = []string{
	EventUserSaved,
	EventServiceCreated, EventServiceUpdated, EventServiceDeleted,
	EventBookingCreated, EventBookingUpdated, EventBookingDeleted,
}

// DocumentEventPayload identifies the document a write touched.
type DocumentEventPayload struct {
	Collection string    `json:"collection"`
	ID         string    `json:"id,omitempty"`
	Email      string    `json:"email,omitempty"`
	Fields     []string  `json:"fields,omitempty"`
	At         time.Time `json:"at"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Decode unmarshals the JSON payload into v.
func (e *Event) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	onError     func(event *Event, err error)
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// OnError installs a callback for handler failures. Without one, failures are dropped.
func (b *EventBus) OnError(fn func(event *Event, err error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onError = fn
}

// Subscribe registers a handler for the given event types.
func (b *EventBus) Subscribe(handler EventHandler, eventTypes ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], handler)
	}
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	onError := b.onError
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously on the publishing request.
		if err := handler(event); err != nil && onError != nil {
			onError(event, err)
		}
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload any) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
