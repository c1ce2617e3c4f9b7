package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/ledger"
	"github.com/viant/schedsim/tracing"
)

// Store owns process records and resolves handles.
type Store interface {
	dao.Service[int, model.Process]
	ledger.Resolver
}

// Result describes one scheduling run.
type Result struct {
	Policy  policy.Kind
	Quantum int
	// Threshold is the automatic selection threshold, 0 when the policy
	// was forced.
	Threshold   int
	ReadyAtZero int
	Status      model.RunStatus
	Gantt       []model.GanttEntry
	// Forced lists processes finished by a deadlock escape.
	Forced []int
}

// Makespan returns the end time of the last dispatch.
func (r *Result) Makespan() int {
	if r == nil || len(r.Gantt) == 0 {
		return 0
	}
	return r.Gantt[len(r.Gantt)-1].End
}

// Service is the scheduling engine
type Service struct {
	arena     Store
	ledger    *ledger.Service
	policy    *policy.Policy
	logger    zerolog.Logger
	publisher *event.Publisher[model.Process]

	handles []model.Handle
	gantt   []model.GanttEntry
	status  model.RunStatus
	mux     sync.Mutex
}

// New creates a scheduler over the supplied arena
func New(arena Store, options ...Option) (*Service, error) {
	s := &Service{
		arena:     arena,
		policy:    policy.Default(),
		logger:    zerolog.Nop(),
		publisher: event.NewPublisher[model.Process](),
		status:    model.RunStatusPending,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.arena == nil {
		return nil, fmt.Errorf("process arena is required")
	}
	if s.ledger == nil {
		return nil, fmt.Errorf("resource ledger is required")
	}
	return s, nil
}

// Add admits p: stores it in the arena and registers it with the ledger.
func (s *Service) Add(ctx context.Context, p *model.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if n := s.ledger.NumResources(); len(p.MaxDemand) > n {
		return fmt.Errorf("process %d: demand for %d resource types, expected at most %d", p.ID, len(p.MaxDemand), n)
	}

	s.mux.Lock()
	defer s.mux.Unlock()
	if err := s.arena.Save(ctx, p); err != nil {
		return fmt.Errorf("failed to store process %d: %w", p.ID, err)
	}
	s.handles = append(s.handles, p.Handle)
	s.ledger.AddProcess(p)
	s.logger.Debug().Int("process", p.ID).Str("maxDemand", p.MaxDemand.String()).Msg("process registered")
	s.publisher.Emit(ctx, event.TypeRegistered, p.ID, p.ArrivalTime, *p.Clone())
	return nil
}

// Remove releases whatever p holds, untracks it and tombstones its record.
func (s *Service) Remove(ctx context.Context, id int) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	p, err := s.arena.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load process %d: %w", id, err)
	}
	s.ledger.ReleaseResources(p)
	s.ledger.RemoveProcess(p)
	for i, h := range s.handles {
		if h == p.Handle {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			break
		}
	}
	return s.arena.Delete(ctx, id)
}

// Processes returns copies of the scheduled processes in admission order.
func (s *Service) Processes() []*model.Process {
	s.mux.Lock()
	defer s.mux.Unlock()
	var ret []*model.Process
	for _, p := range s.resolve() {
		ret = append(ret, p.Clone())
	}
	return ret
}

// Gantt returns the dispatch history of the last run.
func (s *Service) Gantt() []model.GanttEntry {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]model.GanttEntry(nil), s.gantt...)
}

// Status returns how the last run terminated.
func (s *Service) Status() model.RunStatus {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.status
}

// Count returns the number of admitted processes.
func (s *Service) Count() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.handles)
}

// Ledger returns the resource ledger.
func (s *Service) Ledger() *ledger.Service {
	return s.ledger
}

// Execute runs every admitted process under the discipline chosen for the
// current load and returns the outcome. Per-run fields are reset first, so
// Execute can be called repeatedly on the same process set.
func (s *Service) Execute(ctx context.Context) (result *Result, err error) {
	ctx, span := tracing.StartSpan(ctx, "scheduler.Execute", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	s.mux.Lock()
	defer s.mux.Unlock()

	processes := s.resolve()
	readyAtZero := 0
	for _, p := range processes {
		p.ResetRun()
		if p.ArrivalTime == 0 {
			readyAtZero++
		}
	}
	s.gantt = nil

	aPolicy := s.policy
	if ctxPolicy := policy.FromContext(ctx); ctxPolicy != nil {
		aPolicy = ctxPolicy
	}
	result = &Result{
		Policy:      aPolicy.Select(readyAtZero),
		Threshold:   aPolicy.AutoThreshold(),
		ReadyAtZero: readyAtZero,
	}
	if result.Policy.IsPreemptive() {
		result.Quantum = aPolicy.TimeQuantum()
	}
	span.WithAttributes(map[string]string{"policy": string(result.Policy)}).
		WithInt("processes", len(processes)).
		WithInt("readyAtZero", readyAtZero)
	s.logger.Info().
		Str("policy", string(result.Policy)).
		Int("processes", len(processes)).
		Int("readyAtZero", readyAtZero).
		Int("quantum", result.Quantum).
		Msg("scheduling started")

	r := &run{ctx: ctx, span: span, service: s, processes: processes}
	switch result.Policy {
	case policy.KindRoundRobin:
		result.Status = r.roundRobin(result.Quantum)
	default:
		result.Status = r.priority()
	}

	s.status = result.Status
	result.Gantt = append([]model.GanttEntry(nil), s.gantt...)
	result.Forced = r.forced
	span.WithAttributes(map[string]string{"status": string(result.Status)})
	if !result.Status.IsClean() {
		s.logger.Warn().Ints("forced", r.forced).Msg("deadlock escape: unresolved processes were forcibly finished")
	}
	s.logger.Info().Str("status", string(result.Status)).Int("makespan", result.Makespan()).Msg("scheduling finished")
	return result, nil
}

// resolve must be called with the lock held
func (s *Service) resolve() []*model.Process {
	ret := make([]*model.Process, 0, len(s.handles))
	for _, h := range s.handles {
		if p := s.arena.Get(h); p != nil {
			ret = append(ret, p)
		}
	}
	return ret
}
