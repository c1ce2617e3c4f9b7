package messaging

import (
	"context"
)

// Queue represents an abstract bounded message queue for any payload type
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue, blocking while the
	// queue is full
	Publish(ctx context.Context, t *T) error

	// Consume removes the oldest message from the queue, blocking while the
	// queue is empty
	Consume(ctx context.Context) (*T, error)

	// Size returns the number of queued messages at the instant of the call
	Size() int
}
