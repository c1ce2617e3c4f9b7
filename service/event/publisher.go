package event

import (
	"context"
	"sync"

	"github.com/viant/schedsim/internal/clock"
)

// Publisher fans events out to registered listeners. A nil publisher drops
// every event.
type Publisher[T any] struct {
	mux       sync.RWMutex
	listeners []Listener[T]
}

func NewPublisher[T any](listeners ...Listener[T]) *Publisher[T] {
	ret := &Publisher[T]{}
	for _, l := range listeners {
		if l != nil {
			ret.listeners = append(ret.listeners, l)
		}
	}
	return ret
}

// Subscribe registers an additional listener.
func (p *Publisher[T]) Subscribe(listener Listener[T]) {
	if p == nil || listener == nil {
		return
	}
	p.mux.Lock()
	p.listeners = append(p.listeners, listener)
	p.mux.Unlock()
}

// Publish stamps the event and delivers it to every listener in
// registration order.
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) {
	if p == nil || event == nil {
		return
	}
	event.CreatedAt = clock.Now()
	p.mux.RLock()
	listeners := p.listeners
	p.mux.RUnlock()
	for _, listener := range listeners {
		listener(ctx, event)
	}
}

// Emit builds and publishes an event in one call.
func (p *Publisher[T]) Emit(ctx context.Context, eventType string, processID, at int, data T) {
	if p == nil {
		return
	}
	p.Publish(ctx, NewEvent(&Context{EventType: eventType, ProcessID: processID, Time: at}, data))
}
