package event

import (
	"context"
	"sync"
)

// Listener handles a published event. Listeners run synchronously on the
// publishing goroutine and must not block.
type Listener[T any] func(ctx context.Context, event *Event[T])

// Recorder is a listener that keeps every event it receives.
type Recorder[T any] struct {
	mux    sync.Mutex
	events []*Event[T]
}

// Listen records the event.
func (r *Recorder[T]) Listen(_ context.Context, event *Event[T]) {
	r.mux.Lock()
	r.events = append(r.events, event)
	r.mux.Unlock()
}

// Events returns the recorded events in publication order.
func (r *Recorder[T]) Events() []*Event[T] {
	r.mux.Lock()
	defer r.mux.Unlock()
	return append([]*Event[T](nil), r.events...)
}

// Of returns the recorded events of the supplied type.
func (r *Recorder[T]) Of(eventType string) []*Event[T] {
	var ret []*Event[T]
	for _, e := range r.Events() {
		if e.Type() == eventType {
			ret = append(ret, e)
		}
	}
	return ret
}

// Reset drops all recorded events.
func (r *Recorder[T]) Reset() {
	r.mux.Lock()
	r.events = nil
	r.mux.Unlock()
}
