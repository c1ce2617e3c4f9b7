package ledger

import (
	"sync"

	"github.com/viant/schedsim/model"
)

// Resolver resolves process handles to records.
type Resolver interface {
	Get(h model.Handle) *model.Process
}

// Service tracks available, allocated and maximum resources per process.
type Service struct {
	numResources int
	total        model.Vector
	available    model.Vector
	processes    []model.Handle
	safeSequence []int
	blocked      []int
	arena        Resolver
	mux          sync.Mutex
}

// New creates a ledger for the supplied total resource vector. The number of
// resource types is fixed to len(total) for the lifetime of the ledger.
func New(arena Resolver, total model.Vector) *Service {
	return &Service{
		numResources: len(total),
		total:        total.Clone(),
		available:    total.Clone(),
		arena:        arena,
	}
}

// NumResources returns the number of resource types.
func (s *Service) NumResources() int {
	return s.numResources
}

// AddProcess registers p with the ledger, zeroes its allocation and pads its
// maximum demand to the number of resource types. p must already be stored
// in the arena.
func (s *Service) AddProcess(p *model.Process) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.processes = append(s.processes, p.Handle)
	p.Allocated = model.Zero(s.numResources)
	p.MaxDemand = p.MaxDemand.Pad(s.numResources)
}

// RemoveProcess stops tracking p and drops it from the blocked set. Resources
// still allocated to p are not returned; callers release them first.
func (s *Service) RemoveProcess(p *model.Process) {
	s.mux.Lock()
	defer s.mux.Unlock()
	for i, h := range s.processes {
		if h == p.Handle {
			s.processes = append(s.processes[:i], s.processes[i+1:]...)
			break
		}
	}
	s.unblock(p)
}

// RequestResources tries to grant p its full remaining need. It returns false
// and marks p blocked when the need exceeds what is available or when the
// resulting state would be unsafe; in that case no allocation is changed.
func (s *Service) RequestResources(p *model.Process) bool {
	s.mux.Lock()
	defer s.mux.Unlock()

	need := p.Need()
	if !need.Fits(s.available) {
		s.block(p)
		return false
	}
	trial := s.available.Sub(need)

	previous := p.Allocated
	p.Allocated = p.MaxDemand.Clone()
	if !s.isSafe(trial) {
		p.Allocated = previous
		s.block(p)
		return false
	}
	s.available = trial
	s.unblock(p)
	return true
}

// ReleaseResources returns everything allocated to p. Releasing twice is a
// no-op.
func (s *Service) ReleaseResources(p *model.Process) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.available = s.available.Add(p.Allocated)
	p.Allocated = model.Zero(s.numResources)
}

// IsSafe runs the safety algorithm against the current state. A safe result
// refreshes the stored safe sequence.
func (s *Service) IsSafe() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.isSafe(s.available)
}

// SafeSequence returns the sequence found by the last successful safety
// check.
func (s *Service) SafeSequence() []int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]int(nil), s.safeSequence...)
}

// BlockedProcesses returns the IDs of blocked processes in blocking order.
func (s *Service) BlockedProcesses() []int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]int(nil), s.blocked...)
}

// Available returns a copy of the available vector.
func (s *Service) Available() model.Vector {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.available.Clone()
}

// Total returns the total resource vector.
func (s *Service) Total() model.Vector {
	return s.total.Clone()
}

func (s *Service) block(p *model.Process) {
	p.Blocked = true
	for _, id := range s.blocked {
		if id == p.ID {
			return
		}
	}
	s.blocked = append(s.blocked, p.ID)
}

func (s *Service) unblock(p *model.Process) {
	p.Blocked = false
	for i, id := range s.blocked {
		if id == p.ID {
			s.blocked = append(s.blocked[:i], s.blocked[i+1:]...)
			return
		}
	}
}

// tracked resolves the tracked handles in registration order, skipping
// tombstoned records.
func (s *Service) tracked() []*model.Process {
	ret := make([]*model.Process, 0, len(s.processes))
	for _, h := range s.processes {
		if p := s.arena.Get(h); p != nil {
			ret = append(ret, p)
		}
	}
	return ret
}
