package event

import (
	"time"

	"github.com/viant/schedsim/internal/clock"
)

// Event types emitted during a simulation.
const (
	TypeProduced   = "produced"
	TypeRegistered = "registered"
	TypeDispatched = "dispatched"
	TypeBlocked    = "blocked"
	TypeCompleted  = "completed"
	TypeForced     = "forced"
)

// Context identifies what an event is about. Time is simulated time, not
// wall clock.
type Context struct {
	RunID     string `json:"runID,omitempty"`
	ProcessID int    `json:"processID"`
	EventType string `json:"eventType"`
	Time      int    `json:"time"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}

// Type returns the event type or an empty string when the context is missing.
func (e *Event[T]) Type() string {
	if e == nil || e.Context == nil {
		return ""
	}
	return e.Context.EventType
}
