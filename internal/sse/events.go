package sse

import "time"

// EventType identifies what kind of change an event describes.
type EventType string

// Event types pushed to connected gallery clients.
const (
	EventHeartbeat EventType = "heartbeat"

	EventArtworkCreated EventType = "artwork.created"
	EventArtworkDeleted EventType = "artwork.deleted"
	EventBookCreated    EventType = "book.created"
	EventBookDeleted    EventType = "book.deleted"
	EventJournalCreated EventType = "journal.created"
	EventJournalDeleted EventType = "journal.deleted"

	EventCartUpdated EventType = "cart.updated"

	EventNotificationCreated EventType = "notification.created"
	EventNotificationExpired EventType = "notification.expired"

	EventAuditLogged EventType = "audit.logged"
)

// Event is one server-sent event payload.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Type      EventType `json:"type"`
}

// NewEvent creates an event of the given type carrying data.
func NewEvent(eventType EventType, data any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// NewHeartbeatEvent creates a keepalive event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
	}
}
