package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/schedsim/internal/clock"
)

// Delta represents an incremental counter change emitted by pipeline workers
// or the scheduler. The fields are signed.
type Delta struct {
	Produced   int
	Consumed   int
	Dispatched int
	Completed  int
	Blocked    int
	Forced     int
}

// Progress keeps aggregated counters for a single run. It is safe for
// concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	Produced   int
	Consumed   int
	Dispatched int
	Completed  int
	Blocked    int
	Forced     int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta to the tracker. If an onChange callback
// has been registered it is invoked with a copy of the updated tracker
// outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()
	p.Produced += d.Produced
	p.Consumed += d.Consumed
	p.Dispatched += d.Dispatched
	p.Completed += d.Completed
	p.Blocked += d.Blocked
	p.Forced += d.Forced

	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// InFlight returns the number of produced processes not yet consumed.
func (p *Progress) InFlight() int {
	s := p.Snapshot()
	return s.Produced - s.Consumed
}

// OnChange registers a callback that is invoked after every Update. Passing
// nil disables the callback.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

// copy must be called with the lock held
func (p *Progress) copy() Progress {
	return Progress{
		RunID:      p.RunID,
		StartedAt:  p.StartedAt,
		Produced:   p.Produced,
		Consumed:   p.Consumed,
		Dispatched: p.Dispatched,
		Completed:  p.Completed,
		Blocked:    p.Blocked,
		Forced:     p.Forced,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new Progress tracker, embeds it in a derived
// context and returns both.
func WithNewTracker(ctx context.Context, runID string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the Progress tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Progress, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Progress{}, false
}

// UpdateCtx looks up the tracker in ctx (if any) and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
