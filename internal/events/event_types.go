package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventGiftPurchased   EventType = "gift_purchased"
	EventGiftUnpurchased EventType = "gift_unpurchased"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int `json:"user_id"`
}

// GiftPurchasedPayload payload.
type GiftPurchasedPayload struct {
	GiftID        int    `json:"gift_id"`
	UserID        int    `json:"user_id"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// GiftUnpurchasedPayload payload.
type GiftUnpurchasedPayload struct {
	GiftID      int `json:"gift_id"`
	ActorUserID int `json:"actor_user_id"`
}
