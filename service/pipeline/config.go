package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// MinProducers is the smallest number of producers a run uses.
const MinProducers = 2

// DelayRange bounds a random pause.
type DelayRange struct {
	Min time.Duration `json:"min" yaml:"min"`
	Max time.Duration `json:"max" yaml:"max"`
}

func (r DelayRange) validate(name string) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("invalid %v delay range: %v..%v", name, r.Min, r.Max)
	}
	return nil
}

// Config represents pipeline configuration
type Config struct {
	Producers      int             `json:"producers" yaml:"producers"`
	BufferSize     int             `json:"bufferSize" yaml:"bufferSize"`
	TotalProcesses int             `json:"totalProcesses" yaml:"totalProcesses"`
	ProducerDelay  DelayRange      `json:"producerDelay" yaml:"producerDelay"`
	ConsumerDelay  DelayRange      `json:"consumerDelay" yaml:"consumerDelay"`
	Generator      GeneratorConfig `json:"generator" yaml:"generator"`
}

// DefaultConfig returns the default pipeline configuration
func DefaultConfig() Config {
	return Config{
		Producers:      MinProducers,
		BufferSize:     5,
		TotalProcesses: 10,
		ProducerDelay:  DelayRange{Min: 100 * time.Millisecond, Max: 600 * time.Millisecond},
		ConsumerDelay:  DelayRange{Min: 50 * time.Millisecond, Max: 350 * time.Millisecond},
		Generator:      DefaultGeneratorConfig(),
	}
}

// Normalize raises the producer count to MinProducers, logging a warning
// when it had to.
func (c *Config) Normalize(logger zerolog.Logger) {
	if c.Producers < MinProducers {
		logger.Warn().Int("requested", c.Producers).Int("using", MinProducers).Msg("too few producers")
		c.Producers = MinProducers
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("invalid buffer size: %d", c.BufferSize))
	}
	if c.TotalProcesses < 0 {
		errs = append(errs, fmt.Errorf("invalid total process count: %d", c.TotalProcesses))
	}
	if err := c.ProducerDelay.validate("producer"); err != nil {
		errs = append(errs, err)
	}
	if err := c.ConsumerDelay.validate("consumer"); err != nil {
		errs = append(errs, err)
	}
	if err := c.Generator.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// share returns how many processes producer i (0 based) generates; the first
// producer also takes the remainder.
func (c *Config) share(i int) int {
	ret := c.TotalProcesses / c.Producers
	if i == 0 {
		ret += c.TotalProcesses % c.Producers
	}
	return ret
}
