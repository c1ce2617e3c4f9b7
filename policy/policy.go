package policy

import (
	"context"
	"fmt"
	"strings"
)

// Selection modes recognised by the scheduler.
const (
	ModeAuto       = "auto"        // pick by load (default)
	ModePriority   = "priority"    // always priority
	ModeRoundRobin = "round-robin" // always round-robin
)

const (
	// DefaultThreshold is the largest number of processes ready at time zero
	// still scheduled by priority in auto mode.
	DefaultThreshold = 5
	// DefaultQuantum is the round-robin time slice.
	DefaultQuantum = 2
)

// Kind identifies the discipline used by a scheduling run.
type Kind string

const (
	KindPriority   Kind = "priority"
	KindRoundRobin Kind = "round-robin"
)

// IsPreemptive reports whether the discipline slices CPU time.
func (k Kind) IsPreemptive() bool {
	return k == KindRoundRobin
}

// Policy represents the scheduling settings for the current run.
//
//   - Mode controls the selection (auto / priority / round-robin).
//   - Threshold is only used when Mode==auto.
//   - Quantum is only used by round-robin.
//
// A nil *Policy behaves like the default auto policy.
type Policy struct {
	Mode      string
	Threshold int
	Quantum   int
}

// Default returns the auto policy with the default threshold and quantum.
func Default() *Policy {
	return &Policy{Mode: ModeAuto, Threshold: DefaultThreshold, Quantum: DefaultQuantum}
}

// Config represents the serialisable form of a Policy.
type Config struct {
	Mode      string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Threshold int    `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Quantum   int    `json:"quantum,omitempty" yaml:"quantum,omitempty"`
}

// Validate checks mode and numeric bounds.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Mode) {
	case "", ModeAuto, ModePriority, ModeRoundRobin:
	default:
		return fmt.Errorf("unsupported scheduling mode: %q", c.Mode)
	}
	if c.Quantum < 0 {
		return fmt.Errorf("invalid time quantum: %d", c.Quantum)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("invalid policy threshold: %d", c.Threshold)
	}
	return nil
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{Mode: p.Mode, Threshold: p.Threshold, Quantum: p.Quantum}
}

// FromConfig converts a stored Config back to a runtime Policy, filling
// zero values with defaults.
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	ret := Default()
	if c.Mode != "" {
		ret.Mode = strings.ToLower(c.Mode)
	}
	if c.Threshold > 0 {
		ret.Threshold = c.Threshold
	}
	if c.Quantum > 0 {
		ret.Quantum = c.Quantum
	}
	return ret
}

// Select returns the discipline for a run with readyAtZero processes arriving
// at time zero.
func (p *Policy) Select(readyAtZero int) Kind {
	if p == nil {
		p = Default()
	}
	switch p.Mode {
	case ModePriority:
		return KindPriority
	case ModeRoundRobin:
		return KindRoundRobin
	}
	if readyAtZero <= p.AutoThreshold() {
		return KindPriority
	}
	return KindRoundRobin
}

// AutoThreshold returns the ready-at-zero threshold used by automatic
// selection, or 0 when the mode forces a discipline.
func (p *Policy) AutoThreshold() int {
	if p == nil {
		p = Default()
	}
	if p.Mode == ModePriority || p.Mode == ModeRoundRobin {
		return 0
	}
	if p.Threshold <= 0 {
		return DefaultThreshold
	}
	return p.Threshold
}

// TimeQuantum returns the configured quantum or the default one.
func (p *Policy) TimeQuantum() int {
	if p == nil || p.Quantum <= 0 {
		return DefaultQuantum
	}
	return p.Quantum
}

// NeedsQuantum reports whether a run of total processes may use round-robin
// and therefore needs a time quantum.
func (p *Policy) NeedsQuantum(total int) bool {
	if p == nil {
		p = Default()
	}
	switch p.Mode {
	case ModePriority:
		return false
	case ModeRoundRobin:
		return true
	}
	return total > p.AutoThreshold()
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy, nil when none was embedded.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
