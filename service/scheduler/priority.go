package scheduler

import (
	"sort"

	"github.com/viant/schedsim/model"
)

// ready returns arrived, unblocked processes with work left, ordered by
// priority then arrival; admission order breaks remaining ties.
func (r *run) ready() []*model.Process {
	var ret []*model.Process
	for _, p := range r.processes {
		if r.done(p) || p.Blocked || p.RemainingTime <= 0 || p.ArrivalTime > r.now {
			continue
		}
		ret = append(ret, p)
	}
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].Priority != ret[j].Priority {
			return ret[i].Priority < ret[j].Priority
		}
		return ret[i].ArrivalTime < ret[j].ArrivalTime
	})
	return ret
}

// runnable reports whether any unfinished process is still unblocked,
// including ones that have not arrived yet.
func (r *run) runnable() bool {
	for _, p := range r.processes {
		if !r.done(p) && !p.Blocked {
			return true
		}
	}
	return false
}

// priority runs non-preemptive priority scheduling: the most urgent ready
// process that can be granted its resources runs its full burst.
func (r *run) priority() model.RunStatus {
	for r.finished() < len(r.processes) {
		candidates := r.ready()
		if len(candidates) == 0 {
			next, ok := r.nextArrival()
			if !ok {
				break
			}
			r.now = next
			continue
		}

		var selected *model.Process
		for _, candidate := range candidates {
			if r.request(candidate) {
				selected = candidate
				break
			}
		}
		if selected == nil {
			if !r.runnable() {
				r.force(func(p *model.Process) bool { return p.Blocked })
				return r.status()
			}
			r.now++
			continue
		}

		r.execute(selected, selected.RemainingTime)
		r.complete(selected)
	}
	r.force(nil)
	return r.status()
}
