package memory

import (
	"context"
	"sync"

	"github.com/viant/schedsim/service/messaging"
	"golang.org/x/sync/semaphore"
)

// Config for memory queue implementation
type Config struct {
	Capacity int `json:"capacity" yaml:"capacity"`
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{
		Capacity: 5,
	}
}

// Queue implements a bounded in-memory messaging.Queue. Free and filled slots
// are counted by two weighted semaphores; the ring buffer itself is guarded
// by a separate mutex.
type Queue[T any] struct {
	empty  *semaphore.Weighted
	full   *semaphore.Weighted
	mu     sync.Mutex
	items  []*T
	head   int
	count  int
	config Config
}

// NewQueue creates a new bounded in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.Capacity <= 0 {
		config.Capacity = DefaultConfig().Capacity
	}
	capacity := int64(config.Capacity)
	ret := &Queue[T]{
		empty:  semaphore.NewWeighted(capacity),
		full:   semaphore.NewWeighted(capacity),
		items:  make([]*T, config.Capacity),
		config: config,
	}
	// filled slots start at zero
	ret.full.TryAcquire(capacity)
	return ret
}

// Publish adds a new item to the queue, waiting for a free slot
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := q.empty.Acquire(ctx, 1); err != nil {
		return err
	}
	q.mu.Lock()
	q.items[(q.head+q.count)%len(q.items)] = t
	q.count++
	q.mu.Unlock()
	q.full.Release(1)
	return nil
}

// Consume retrieves the oldest item from the queue, waiting for one to arrive
func (q *Queue[T]) Consume(ctx context.Context) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.full.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	q.mu.Lock()
	item := q.items[q.head]
	q.items[q.head] = nil
	q.head = (q.head + 1) % len(q.items)
	q.count--
	q.mu.Unlock()
	q.empty.Release(1)
	return item, nil
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// IsEmpty reports whether the queue held no messages at the instant of the call
func (q *Queue[T]) IsEmpty() bool {
	return q.Size() == 0
}

// Capacity returns the fixed number of slots
func (q *Queue[T]) Capacity() int {
	return q.config.Capacity
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
