package workload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/schedsim/model"
	"gopkg.in/yaml.v3"
)

// Definition describes one process of a workload file. A zero ID is
// replaced with the next free one when the workload is built.
type Definition struct {
	ID        int   `json:"id,omitempty" yaml:"id,omitempty"`
	Arrival   int   `json:"arrival" yaml:"arrival"`
	Burst     int   `json:"burst" yaml:"burst"`
	Priority  int   `json:"priority" yaml:"priority"`
	MaxDemand []int `json:"maxDemand" yaml:"maxDemand"`
}

// Workload is a named set of process definitions.
type Workload struct {
	Name      string        `json:"name,omitempty" yaml:"name,omitempty"`
	Processes []*Definition `json:"processes" yaml:"processes"`
}

// Build converts definitions into validated process descriptors.
func (w *Workload) Build() ([]*model.Process, error) {
	maxID := 0
	for _, d := range w.Processes {
		if d != nil && d.ID > maxID {
			maxID = d.ID
		}
	}
	seen := map[int]bool{}
	var errs []error
	ret := make([]*model.Process, 0, len(w.Processes))
	for i, d := range w.Processes {
		if d == nil {
			errs = append(errs, fmt.Errorf("process #%d: empty definition", i+1))
			continue
		}
		id := d.ID
		if id == 0 {
			maxID++
			id = maxID
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("process #%d: duplicate id %d", i+1, id))
			continue
		}
		seen[id] = true
		p := model.NewProcess(id, d.Arrival, d.Burst, d.Priority, d.MaxDemand)
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		ret = append(ret, p)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return ret, nil
}

// Service loads and stores workload files through afs, so any afs supported
// URL (file, mem, cloud storage) can hold them.
type Service struct {
	fs afs.Service
}

// New creates a workload service
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}

func isJSON(URL string) bool {
	return strings.EqualFold(path.Ext(URL), ".json")
}

// Load reads a YAML or JSON workload. URLs without an extension default to
// YAML.
func (s *Service) Load(ctx context.Context, URL string) (*Workload, error) {
	if path.Ext(URL) == "" {
		URL += ".yaml"
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load workload from %s: %w", URL, err)
	}
	ret := &Workload{}
	if isJSON(URL) {
		err = json.Unmarshal(data, ret)
	} else {
		err = yaml.Unmarshal(data, ret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode workload %s: %w", URL, err)
	}
	if ret.Name == "" {
		ret.Name = strings.TrimSuffix(path.Base(URL), path.Ext(URL))
	}
	return ret, nil
}

// Save writes the workload, encoding by the URL extension.
func (s *Service) Save(ctx context.Context, URL string, workload *Workload) error {
	if workload == nil {
		return fmt.Errorf("cannot save nil workload")
	}
	var data []byte
	var err error
	if isJSON(URL) {
		data, err = json.MarshalIndent(workload, "", "  ")
	} else {
		data, err = yaml.Marshal(workload)
	}
	if err != nil {
		return fmt.Errorf("failed to encode workload: %w", err)
	}
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save workload to %s: %w", URL, err)
	}
	return nil
}

// FromProcesses captures process descriptors as a workload.
func FromProcesses(name string, processes []*model.Process) *Workload {
	ret := &Workload{Name: name}
	for _, p := range processes {
		ret.Processes = append(ret.Processes, &Definition{
			ID:        p.ID,
			Arrival:   p.ArrivalTime,
			Burst:     p.BurstTime,
			Priority:  p.Priority,
			MaxDemand: p.MaxDemand.Clone(),
		})
	}
	return ret
}
