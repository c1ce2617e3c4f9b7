package ledger

import "github.com/viant/schedsim/model"

// isSafe reports whether every tracked process can still obtain its maximum
// demand and finish, starting from the supplied available vector. Processes
// are reduced in registration order; a safe result replaces the stored safe
// sequence. Callers hold s.mux.
func (s *Service) isSafe(available model.Vector) bool {
	processes := s.tracked()
	finished := make([]bool, len(processes))
	work := available.Clone()
	sequence := make([]int, 0, len(processes))

	for count := 0; count < len(processes); {
		found := false
		for i, p := range processes {
			if finished[i] || !p.Need().Fits(work) {
				continue
			}
			work = work.Add(p.Allocated)
			sequence = append(sequence, p.ID)
			finished[i] = true
			found = true
			count++
		}
		if !found {
			return false
		}
	}
	s.safeSequence = sequence
	return true
}
