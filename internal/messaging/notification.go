// Package messaging publishes booking notifications to downstream consumers
// (mailers, analytics). The API never reads these messages back.
package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	EventCreated   = "event.created"
	AttendeeJoined = "attendee.joined"
	AttendeeLeft   = "attendee.left"
)

// Resource kinds a notification can refer to.
const (
	ResourceTrip  = "trip"
	ResourceEvent = "event"
)

// Notification is the JSON payload written for every booking change.
type Notification struct {
	Type       string    `json:"type"`
	Resource   string    `json:"resource"`
	ResourceID uuid.UUID `json:"resourceId"`
	UserID     uuid.UUID `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers notifications. Implementations must be safe for
// concurrent use by multiple request handlers.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
	Close() error
}

// NopPublisher discards every notification. It is used when no brokers are
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Notification) error { return nil }
func (NopPublisher) Close() error { return nil }
