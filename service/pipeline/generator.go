package pipeline

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/viant/schedsim/internal/clock"
	"github.com/viant/schedsim/model"
)

// GeneratorConfig bounds randomly generated descriptors. Burst, priority and
// per-type demand are drawn uniformly from 1..Max; arrival from 0..MaxArrival.
type GeneratorConfig struct {
	NumResources int `json:"numResources" yaml:"numResources"`
	MaxArrival   int `json:"maxArrival" yaml:"maxArrival"`
	MaxBurst     int `json:"maxBurst" yaml:"maxBurst"`
	MaxPriority  int `json:"maxPriority" yaml:"maxPriority"`
	MaxDemand    int `json:"maxDemand" yaml:"maxDemand"`
}

// DefaultGeneratorConfig returns the default generator bounds
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		NumResources: 3,
		MaxBurst:     10,
		MaxPriority:  5,
		MaxDemand:    5,
	}
}

// Validate checks the bounds.
func (c *GeneratorConfig) Validate() error {
	var errs []error
	if c.NumResources <= 0 {
		errs = append(errs, fmt.Errorf("invalid number of resource types: %d", c.NumResources))
	}
	if c.MaxArrival < 0 {
		errs = append(errs, fmt.Errorf("invalid max arrival: %d", c.MaxArrival))
	}
	if c.MaxBurst <= 0 || c.MaxPriority <= 0 || c.MaxDemand <= 0 {
		errs = append(errs, fmt.Errorf("generator bounds must be positive: burst=%d priority=%d demand=%d", c.MaxBurst, c.MaxPriority, c.MaxDemand))
	}
	return errors.Join(errs...)
}

// Generator produces random process descriptors. It is safe for concurrent
// use.
type Generator struct {
	config GeneratorConfig
	rnd    *rand.Rand
	mux    sync.Mutex
}

// NewGenerator creates a generator; a zero seed picks one from the clock.
func NewGenerator(config GeneratorConfig, seed int64) *Generator {
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return &Generator{config: config, rnd: rand.New(rand.NewSource(seed))}
}

// Next returns a new descriptor with the supplied ID
func (g *Generator) Next(id int) *model.Process {
	g.mux.Lock()
	defer g.mux.Unlock()
	arrival := 0
	if g.config.MaxArrival > 0 {
		arrival = g.rnd.Intn(g.config.MaxArrival + 1)
	}
	burst := g.rnd.Intn(g.config.MaxBurst) + 1
	priority := g.rnd.Intn(g.config.MaxPriority) + 1
	demand := model.Zero(g.config.NumResources)
	for i := range demand {
		demand[i] = g.rnd.Intn(g.config.MaxDemand) + 1
	}
	return model.NewProcess(id, arrival, burst, priority, demand)
}

// Delay returns a random duration within r.
func (g *Generator) Delay(r DelayRange) time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	g.mux.Lock()
	defer g.mux.Unlock()
	return r.Min + time.Duration(g.rnd.Int63n(int64(r.Max-r.Min)+1))
}
