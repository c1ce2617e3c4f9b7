package scheduler

import (
	"context"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/tracing"
)

// run holds the state of a single Execute call. The service lock is held for
// its whole lifetime.
type run struct {
	ctx       context.Context
	span      *tracing.Span
	service   *Service
	processes []*model.Process
	now       int
	forced    []int
}

func (r *run) done(p *model.Process) bool {
	return p.IsCompleted() || p.Forced
}

func (r *run) finished() int {
	count := 0
	for _, p := range r.processes {
		if r.done(p) {
			count++
		}
	}
	return count
}

// nextArrival returns the earliest arrival after the current time among
// unfinished processes.
func (r *run) nextArrival() (int, bool) {
	next, ok := 0, false
	for _, p := range r.processes {
		if r.done(p) || p.ArrivalTime <= r.now {
			continue
		}
		if !ok || p.ArrivalTime < next {
			next, ok = p.ArrivalTime, true
		}
	}
	return next, ok
}

// request asks the ledger for p's full demand and reports a refusal.
func (r *run) request(p *model.Process) bool {
	if r.service.ledger.RequestResources(p) {
		return true
	}
	r.service.logger.Debug().Int("process", p.ID).Int("time", r.now).Str("need", p.Need().String()).Msg("resource request refused")
	r.span.AddEvent("blocked", p.ID)
	progress.UpdateCtx(r.ctx, progress.Delta{Blocked: 1})
	r.service.publisher.Emit(r.ctx, event.TypeBlocked, p.ID, r.now, *p.Clone())
	return false
}

// execute runs p for up to slice time units starting now.
func (r *run) execute(p *model.Process, slice int) {
	if slice > p.RemainingTime {
		slice = p.RemainingTime
	}
	p.Start(r.now)
	entry := model.GanttEntry{ProcessID: p.ID, Start: r.now, End: r.now + slice}
	r.now = entry.End
	p.RemainingTime -= slice
	r.service.gantt = append(r.service.gantt, entry)
	progress.UpdateCtx(r.ctx, progress.Delta{Dispatched: 1})
	r.service.publisher.Emit(r.ctx, event.TypeDispatched, p.ID, entry.Start, *p.Clone())
}

// complete records statistics and returns p's resources.
func (r *run) complete(p *model.Process) {
	p.Complete(r.now)
	r.service.ledger.ReleaseResources(p)
	progress.UpdateCtx(r.ctx, progress.Delta{Completed: 1})
	r.service.publisher.Emit(r.ctx, event.TypeCompleted, p.ID, r.now, *p.Clone())
}

// force finishes every unfinished process matching the filter without
// dispatching it; its statistics stay undefined.
func (r *run) force(filter func(p *model.Process) bool) {
	for _, p := range r.processes {
		if r.done(p) || (filter != nil && !filter(p)) {
			continue
		}
		p.Force()
		r.service.ledger.ReleaseResources(p)
		r.forced = append(r.forced, p.ID)
		progress.UpdateCtx(r.ctx, progress.Delta{Forced: 1})
		r.service.publisher.Emit(r.ctx, event.TypeForced, p.ID, r.now, *p.Clone())
	}
}

func (r *run) status() model.RunStatus {
	if len(r.forced) > 0 {
		return model.RunStatusDeadlockEscape
	}
	return model.RunStatusCompleted
}
