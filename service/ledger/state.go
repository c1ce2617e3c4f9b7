package ledger

import "github.com/viant/schedsim/model"

// Row is a read-only view of one tracked process.
type Row struct {
	ProcessID int
	Max       model.Vector
	Allocated model.Vector
	Need      model.Vector
	Blocked   bool
}

// State is a point-in-time copy of the ledger used by reports.
type State struct {
	Total        model.Vector
	Available    model.Vector
	Rows         []Row
	SafeSequence []int
	Blocked      []int
}

// Snapshot copies the ledger state under the ledger lock so that reports
// never observe a half-applied request.
func (s *Service) Snapshot() *State {
	s.mux.Lock()
	defer s.mux.Unlock()
	ret := &State{
		Total:        s.total.Clone(),
		Available:    s.available.Clone(),
		SafeSequence: append([]int(nil), s.safeSequence...),
		Blocked:      append([]int(nil), s.blocked...),
	}
	for _, p := range s.tracked() {
		ret.Rows = append(ret.Rows, Row{
			ProcessID: p.ID,
			Max:       p.MaxDemand.Clone(),
			Allocated: p.Allocated.Clone(),
			Need:      p.Need(),
			Blocked:   p.Blocked,
		})
	}
	return ret
}

// Allocated returns the sum of allocations over tracked processes.
func (s *State) Allocated() model.Vector {
	sum := model.Zero(len(s.Total))
	for _, row := range s.Rows {
		sum = sum.Add(row.Allocated)
	}
	return sum
}

// IsConserved reports whether available plus allocated equals total for every
// resource type and available is non-negative.
func (s *State) IsConserved() bool {
	for _, v := range s.Available {
		if v < 0 {
			return false
		}
	}
	return s.Available.Add(s.Allocated()).Equal(s.Total)
}
