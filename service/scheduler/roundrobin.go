package scheduler

import "github.com/viant/schedsim/model"

// roundRobin runs preemptive round-robin scheduling with the supplied
// quantum. A process refused on its first dispatch is dropped from the ready
// queue for the rest of the run; once more consecutive refusals than there
// are processes pile up the run ends with a deadlock escape.
func (r *run) roundRobin(quantum int) model.RunStatus {
	if quantum <= 0 {
		quantum = 1
	}
	n := len(r.processes)
	inQueue := make([]bool, n)
	var queue []int
	admit := func(skip int) {
		for i, p := range r.processes {
			if i == skip || inQueue[i] || r.done(p) || p.Blocked || p.RemainingTime <= 0 || p.ArrivalTime > r.now {
				continue
			}
			queue = append(queue, i)
			inQueue[i] = true
		}
	}
	admit(-1)

	consecutiveBlocks := 0
	for r.finished() < n {
		if len(queue) == 0 {
			next, ok := r.nextArrival()
			if !ok {
				break
			}
			r.now = next
			admit(-1)
			consecutiveBlocks = 0
			continue
		}
		if consecutiveBlocks > n {
			break
		}

		idx := queue[0]
		queue = queue[1:]
		inQueue[idx] = false
		p := r.processes[idx]

		if !p.HasStarted && !r.request(p) {
			consecutiveBlocks++
			continue
		}
		consecutiveBlocks = 0

		r.execute(p, quantum)
		admit(idx)
		if p.RemainingTime == 0 {
			r.complete(p)
			continue
		}
		queue = append(queue, idx)
		inQueue[idx] = true
	}
	r.force(nil)
	return r.status()
}
