package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the kind of change an event describes
type EventType string

const (
	EventTypeCreated     EventType = "created"
	EventTypeUpdated     EventType = "updated"
	EventTypeDeleted     EventType = "deleted"
	EventTypeInvalidated EventType = "invalidated"
)

// EntityType represents the entity the event is about
type EntityType string

const (
	EntityTypeAccount  EntityType = "account"
	EntityTypeItem     EntityType = "recurring_item"
	EntityTypeRevision EntityType = "budget_revision"
	EntityTypeForecast EntityType = "forecast"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "account.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "account"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// AccountCreated creates an account.created event
func AccountCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeAccount, payload)
}

// AccountUpdated creates an account.updated event
func AccountUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeAccount, payload)
}

// AccountDeleted creates an account.deleted event
func AccountDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeAccount, payload)
}

// ItemCreated creates a recurring_item.created event
func ItemCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeItem, payload)
}

// ItemUpdated creates a recurring_item.updated event
func ItemUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeItem, payload)
}

// ItemDeleted creates a recurring_item.deleted event
func ItemDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeItem, payload)
}

// RevisionCreated creates a budget_revision.created event
func RevisionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeRevision, payload)
}

// RevisionDeleted creates a budget_revision.deleted event
func RevisionDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeRevision, payload)
}

// ForecastInvalidated creates a forecast.invalidated event, telling clients
// that any projection they are rendering is stale and should be refetched.
func ForecastInvalidated() Event {
	return NewEvent(EventTypeInvalidated, EntityTypeForecast, nil)
}
