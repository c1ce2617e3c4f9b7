package schedsim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/schedsim/internal/logging"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/service/pipeline"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the simulator configuration.
// It can be populated from JSON or YAML; LoadConfig starts from
// DefaultConfig so a file only needs the settings it changes.
type Config struct {
	Resources ResourcesConfig `json:"resources" yaml:"resources"`
	Pipeline  pipeline.Config `json:"pipeline" yaml:"pipeline"`
	Scheduler policy.Config   `json:"scheduler" yaml:"scheduler"`
	Logging   logging.Config  `json:"logging" yaml:"logging"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
	// Seed drives the descriptor generator; zero picks one from the clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	// ReportURL, when set, receives a copy of every simulation report. Any
	// afs supported URL works.
	ReportURL string `json:"reportURL,omitempty" yaml:"reportURL,omitempty"`
}

// ResourcesConfig describes the fixed resource pool.
type ResourcesConfig struct {
	Types int          `json:"types" yaml:"types"`
	Total model.Vector `json:"total" yaml:"total"`
}

// TracingConfig enables the stdout OpenTelemetry exporter.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns three resource types with totals [10, 5, 7], two
// producers, a buffer of five and ten generated processes.
func DefaultConfig() *Config {
	return &Config{
		Resources: ResourcesConfig{
			Types: 3,
			Total: model.Vector{10, 5, 7},
		},
		Pipeline:  pipeline.DefaultConfig(),
		Scheduler: *policy.ToConfig(policy.Default()),
		Logging:   logging.DefaultConfig(),
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Resources.Types <= 0 {
		errs = append(errs, fmt.Errorf("resources.types must be > 0"))
	}
	if len(c.Resources.Total) != c.Resources.Types {
		errs = append(errs, fmt.Errorf("resources.total has %d entries, expected %d", len(c.Resources.Total), c.Resources.Types))
	}
	for i, v := range c.Resources.Total {
		if v < 0 {
			errs = append(errs, fmt.Errorf("resources.total[%d] must be >= 0", i))
		}
	}
	pipelineConfig := c.pipelineConfig()
	if err := pipelineConfig.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("pipeline: %w", err))
	}
	if err := c.Scheduler.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scheduler: %w", err))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	return errors.Join(errs...)
}

// Policy returns the scheduling policy.
func (c *Config) Policy() *policy.Policy {
	return policy.FromConfig(&c.Scheduler)
}

// pipelineConfig ties the generator to the configured resource types.
func (c *Config) pipelineConfig() pipeline.Config {
	ret := c.Pipeline
	ret.Generator.NumResources = c.Resources.Types
	return ret
}

// LoadConfig reads a YAML or JSON configuration through afs.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if strings.EqualFold(path.Ext(URL), ".json") {
		err = json.Unmarshal(data, ret)
	} else {
		err = yaml.Unmarshal(data, ret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if ret.Resources.Types == 0 {
		ret.Resources.Types = len(ret.Resources.Total)
	}
	return ret, nil
}
