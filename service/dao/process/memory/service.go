package memory

import (
	"context"
	"sync"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/dao"
)

// Service is the process arena: an in-memory, thread-safe store that owns
// every process record of a run. Records are addressed by a stable
// model.Handle (slot index + 1) so that the ledger and the scheduler can keep
// lightweight references. Deleting a record tombstones its slot; handles of
// other records never change.
type Service struct {
	slots []*model.Process
	ids   map[int]model.Handle
	mux   sync.RWMutex
}

var _ dao.Service[int, model.Process] = (*Service)(nil)

// Save stores a new record and assigns its handle. Saving a record that is
// already stored is a no-op.
func (s *Service) Save(_ context.Context, p *model.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	if p.ID <= 0 {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if h, ok := s.ids[p.ID]; ok {
		if s.slots[h-1] == p {
			return nil
		}
		return dao.ErrDuplicateID
	}
	s.slots = append(s.slots, p)
	p.Handle = model.Handle(len(s.slots))
	s.ids[p.ID] = p.Handle
	return nil
}

// Load returns the record with the supplied process ID.
func (s *Service) Load(_ context.Context, id int) (*model.Process, error) {
	if id <= 0 {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	h, ok := s.ids[id]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return s.slots[h-1], nil
}

// Delete tombstones the record with the supplied process ID.
func (s *Service) Delete(_ context.Context, id int) error {
	if id <= 0 {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	h, ok := s.ids[id]
	if !ok {
		return dao.ErrNotFound
	}
	s.slots[h-1].Handle = model.NoHandle
	s.slots[h-1] = nil
	delete(s.ids, id)
	return nil
}

// List returns live records in insertion order.
func (s *Service) List(_ context.Context) ([]*model.Process, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]*model.Process, 0, len(s.ids))
	for _, p := range s.slots {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// Get resolves a handle; it returns nil for invalid or tombstoned handles.
func (s *Service) Get(h model.Handle) *model.Process {
	if !h.Valid() {
		return nil
	}
	s.mux.RLock()
	defer s.mux.RUnlock()
	if int(h) > len(s.slots) {
		return nil
	}
	return s.slots[h-1]
}

// Len returns the number of live records.
func (s *Service) Len() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return len(s.ids)
}

// New creates an empty arena.
func New() *Service {
	return &Service{ids: map[int]model.Handle{}}
}
