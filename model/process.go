package model

import (
	"errors"
	"fmt"

	"github.com/markphelps/optional"
)

// Handle addresses a process record inside the process arena. The zero value
// is not a valid handle.
type Handle int

// NoHandle marks a process that has not been stored yet.
const NoHandle Handle = 0

// Valid reports whether the handle was assigned by the arena.
func (h Handle) Valid() bool {
	return h > NoHandle
}

// Process represents a simulated process descriptor together with its
// scheduling statistics and resource bookkeeping.
type Process struct {
	ID          int `json:"id"`
	ArrivalTime int `json:"arrivalTime"`
	BurstTime   int `json:"burstTime"`
	Priority    int `json:"priority"` // lower value is more urgent

	RemainingTime  int          `json:"remainingTime"`
	StartTime      optional.Int `json:"startTime"`
	CompletionTime optional.Int `json:"completionTime"`
	WaitingTime    optional.Int `json:"waitingTime"`
	TurnaroundTime optional.Int `json:"turnaroundTime"`
	HasStarted     bool         `json:"hasStarted"`

	MaxDemand Vector `json:"maxDemand"`
	Allocated Vector `json:"allocated"`
	Blocked   bool   `json:"blocked"`
	// Forced is set when a deadlock escape finished the process without
	// dispatching it; its statistics stay unset.
	Forced bool `json:"forced,omitempty"`

	Handle Handle `json:"-"`
}

// NewProcess creates a process ready for admission.
func NewProcess(id, arrival, burst, priority int, maxDemand Vector) *Process {
	return &Process{
		ID:            id,
		ArrivalTime:   arrival,
		BurstTime:     burst,
		Priority:      priority,
		RemainingTime: burst,
		MaxDemand:     maxDemand.Clone(),
	}
}

// Validate checks the descriptor before it is admitted.
func (p *Process) Validate() error {
	var errs []error
	if p.ID <= 0 {
		errs = append(errs, fmt.Errorf("invalid process id: %d", p.ID))
	}
	if p.ArrivalTime < 0 {
		errs = append(errs, fmt.Errorf("process %d: invalid arrival time: %d", p.ID, p.ArrivalTime))
	}
	if p.BurstTime <= 0 {
		errs = append(errs, fmt.Errorf("process %d: invalid burst time: %d", p.ID, p.BurstTime))
	}
	for i, v := range p.MaxDemand {
		if v < 0 {
			errs = append(errs, fmt.Errorf("process %d: negative demand for resource %d: %d", p.ID, i, v))
		}
	}
	return errors.Join(errs...)
}

// Need returns the outstanding demand (max - allocated).
func (p *Process) Need() Vector {
	return p.MaxDemand.Sub(p.Allocated)
}

// Label returns the display name used in reports ("P<ID>").
func (p *Process) Label() string {
	return fmt.Sprintf("P%d", p.ID)
}

// ResetRun clears the per-run scheduling state so that the process can be
// scheduled again from scratch. Resource state and the blocked flag are owned
// by the ledger and are left untouched.
func (p *Process) ResetRun() {
	p.RemainingTime = p.BurstTime
	p.HasStarted = false
	p.Forced = false
	p.StartTime = optional.Int{}
	p.CompletionTime = optional.Int{}
	p.WaitingTime = optional.Int{}
	p.TurnaroundTime = optional.Int{}
}

// Start records the first dispatch time.
func (p *Process) Start(now int) {
	if p.HasStarted {
		return
	}
	p.HasStarted = true
	p.StartTime = optional.NewInt(now)
}

// Complete records completion statistics at the supplied time.
func (p *Process) Complete(now int) {
	turnaround := now - p.ArrivalTime
	p.RemainingTime = 0
	p.CompletionTime = optional.NewInt(now)
	p.TurnaroundTime = optional.NewInt(turnaround)
	p.WaitingTime = optional.NewInt(turnaround - p.BurstTime)
}

// Force marks the process as finished by a deadlock escape.
func (p *Process) Force() {
	p.Forced = true
}

// IsCompleted reports whether the process ran to completion.
func (p *Process) IsCompleted() bool {
	return p.CompletionTime.Present()
}

// Clone returns a copy that shares no slices with p.
func (p *Process) Clone() *Process {
	if p == nil {
		return nil
	}
	ret := *p
	ret.MaxDemand = p.MaxDemand.Clone()
	ret.Allocated = p.Allocated.Clone()
	return &ret
}
