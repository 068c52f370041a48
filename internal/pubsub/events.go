// Package pubsub provides a generic publish/subscribe event broker used to
// fan registry mutations out to cache invalidation and log subscribers.
package pubsub

import (
	"context"
	"time"
)

// EventType classifies a published event.
type EventType string

const (
	// CreatedEvent announces a new record or log entry.
	CreatedEvent EventType = "created"
	// UpdatedEvent announces a mutation to an existing record, including
	// score submissions and metadata updates.
	UpdatedEvent EventType = "updated"
)

// Event carries a typed payload to subscribers.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
