package schedsim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/schedsim/internal/idgen"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/dao/process/memory"
	"github.com/viant/schedsim/service/dao/workload"
	"github.com/viant/schedsim/service/event"
	"github.com/viant/schedsim/service/ledger"
	"github.com/viant/schedsim/service/pipeline"
	"github.com/viant/schedsim/service/report"
	"github.com/viant/schedsim/service/scheduler"
	"github.com/viant/schedsim/tracing"
)

// ErrNoProcesses is returned when scheduling is requested before any process
// was added.
var ErrNoProcesses = errors.New("no processes in the system")

// Result describes a completed simulation or scheduling run.
type Result struct {
	RunID    string
	Schedule *scheduler.Result
	Summary  *report.Summary
	// State is the ledger after the run.
	State    *ledger.State
	Progress progress.Progress
}

// session is the process set, ledger and scheduler the menu operates on. A
// simulation replaces it; manual additions accumulate into it.
type session struct {
	arena     *memory.Service
	ledger    *ledger.Service
	scheduler *scheduler.Service
}

// Runtime represents the simulator runtime
type Runtime struct {
	config    *Config
	logger    zerolog.Logger
	writer    io.Writer
	fs        afs.Service
	workloads *workload.Service
	listeners []event.Listener[model.Process]

	mux     sync.Mutex
	session *session
}

func (r *Runtime) newSession(aPolicy *policy.Policy, logger zerolog.Logger) (*session, error) {
	arena := memory.New()
	resources := ledger.New(arena, r.config.Resources.Total)
	sched, err := scheduler.New(arena,
		scheduler.WithLedger(resources),
		scheduler.WithPolicy(aPolicy),
		scheduler.WithLogger(logger),
		scheduler.WithListeners(r.listeners...))
	if err != nil {
		return nil, err
	}
	return &session{arena: arena, ledger: resources, scheduler: sched}, nil
}

// current returns the active session, creating the manual-entry one on first
// use. Manual sessions always use the default time quantum.
func (r *Runtime) current() (*session, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.session != nil {
		return r.session, nil
	}
	manual := r.config.Policy()
	manual.Quantum = policy.DefaultQuantum
	sess, err := r.newSession(manual, r.logger)
	if err != nil {
		return nil, err
	}
	r.session = sess
	return sess, nil
}

func (r *Runtime) active() *session {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.session
}

// Simulate runs the producer/consumer pipeline on a fresh process set, then
// schedules everything it produced and writes the reports. The new process
// set replaces whatever was added before.
func (r *Runtime) Simulate(ctx context.Context) (result *Result, err error) {
	runID := idgen.New()
	ctx, tracker := progress.WithNewTracker(ctx, runID, nil)
	ctx, span := tracing.StartSpan(ctx, "schedsim.Simulate", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"run.id": runID})

	logger := r.logger.With().Str("run", runID).Logger()
	sess, err := r.newSession(r.config.Policy(), logger)
	if err != nil {
		return nil, err
	}
	producers, err := pipeline.New(
		pipeline.WithConfig(r.config.pipelineConfig()),
		pipeline.WithGenerator(pipeline.NewGenerator(r.config.pipelineConfig().Generator, r.config.Seed)),
		pipeline.WithLogger(logger),
		pipeline.WithListeners(r.listeners...))
	if err != nil {
		return nil, err
	}
	r.mux.Lock()
	r.session = sess
	r.mux.Unlock()

	if err = producers.Run(ctx, sess.scheduler); err != nil {
		return nil, fmt.Errorf("simulation %s failed: %w", runID, err)
	}

	out, flush := r.output(ctx, runID)
	if err = report.ProcessTable(out, sess.scheduler.Processes()); err != nil {
		return nil, err
	}
	if err = report.SystemState(out, sess.ledger.Snapshot()); err != nil {
		return nil, err
	}
	result, err = r.schedule(ctx, out, sess)
	if err != nil {
		return nil, err
	}
	result.RunID = runID
	result.Progress = tracker.Snapshot()
	return result, flush()
}

// Execute schedules the manually added processes and writes the reports.
func (r *Runtime) Execute(ctx context.Context) (result *Result, err error) {
	sess := r.active()
	if sess == nil || sess.scheduler.Count() == 0 {
		return nil, ErrNoProcesses
	}
	runID := idgen.New()
	ctx, tracker := progress.WithNewTracker(ctx, runID, nil)
	ctx, span := tracing.StartSpan(ctx, "schedsim.Execute", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	out, flush := r.output(ctx, runID)
	if result, err = r.schedule(ctx, out, sess); err != nil {
		return nil, err
	}
	result.RunID = runID
	result.Progress = tracker.Snapshot()
	return result, flush()
}

func (r *Runtime) schedule(ctx context.Context, out io.Writer, sess *session) (*Result, error) {
	schedule, err := sess.scheduler.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if err = report.Selection(out, schedule); err != nil {
		return nil, err
	}
	processes := sess.scheduler.Processes()
	if err = report.GanttChart(out, schedule.Gantt); err != nil {
		return nil, err
	}
	if err = report.Statistics(out, processes); err != nil {
		return nil, err
	}
	state := sess.ledger.Snapshot()
	if err = report.SystemState(out, state); err != nil {
		return nil, err
	}
	return &Result{Schedule: schedule, Summary: report.Summarize(processes), State: state}, nil
}

// output returns the report writer and a function uploading the collected
// report to Config.ReportURL, when one is configured.
func (r *Runtime) output(ctx context.Context, runID string) (io.Writer, func() error) {
	URL := r.config.ReportURL
	if URL == "" {
		return r.writer, func() error { return nil }
	}
	if strings.HasSuffix(URL, "/") {
		URL += runID + ".txt"
	}
	buf := &bytes.Buffer{}
	return io.MultiWriter(r.writer, buf), func() error {
		if err := r.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(buf.Bytes())); err != nil {
			return fmt.Errorf("failed to upload report to %s: %w", URL, err)
		}
		return nil
	}
}

// AddProcess admits a manually entered process into the current process set
// and probes whether its full demand could be granted safely right now. The
// probe allocation is released immediately. A process that is not safe is
// still added; it stays blocked and will be forcibly finished by the next run
// unless resources allow it.
func (r *Runtime) AddProcess(ctx context.Context, p *model.Process) (bool, error) {
	sess, err := r.current()
	if err != nil {
		return false, err
	}
	if err = sess.scheduler.Add(ctx, p); err != nil {
		return false, err
	}
	if sess.ledger.RequestResources(p) {
		sess.ledger.ReleaseResources(p)
		return true, nil
	}
	r.logger.Warn().Int("process", p.ID).Str("need", p.Need().String()).Msg("process added but would cause unsafe state")
	return false, nil
}

// RemoveProcess drops a process from the current process set.
func (r *Runtime) RemoveProcess(ctx context.Context, id int) error {
	sess := r.active()
	if sess == nil {
		return ErrNoProcesses
	}
	return sess.scheduler.Remove(ctx, id)
}

// LoadWorkload adds every process of a workload file and returns the IDs of
// those whose allocation would be unsafe.
func (r *Runtime) LoadWorkload(ctx context.Context, URL string) ([]int, error) {
	aWorkload, err := r.workloads.Load(ctx, URL)
	if err != nil {
		return nil, err
	}
	processes, err := aWorkload.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid workload %s: %w", URL, err)
	}
	var unsafe []int
	for _, p := range processes {
		safe, err := r.AddProcess(ctx, p)
		if err != nil {
			return unsafe, err
		}
		if !safe {
			unsafe = append(unsafe, p.ID)
		}
	}
	r.logger.Info().Str("workload", aWorkload.Name).Int("processes", len(processes)).Ints("unsafe", unsafe).Msg("workload loaded")
	return unsafe, nil
}

// SaveWorkload writes the current process set as a workload file.
func (r *Runtime) SaveWorkload(ctx context.Context, URL string) error {
	sess := r.active()
	if sess == nil {
		return ErrNoProcesses
	}
	return r.workloads.Save(ctx, URL, workload.FromProcesses("", sess.scheduler.Processes()))
}

// Processes returns copies of the current process set.
func (r *Runtime) Processes() []*model.Process {
	sess := r.active()
	if sess == nil {
		return nil
	}
	return sess.scheduler.Processes()
}

// State returns a ledger snapshot of the current process set, nil when
// nothing was added yet.
func (r *Runtime) State() *ledger.State {
	sess := r.active()
	if sess == nil {
		return nil
	}
	return sess.ledger.Snapshot()
}

// DisplayState writes the process table and the ledger state.
func (r *Runtime) DisplayState(w io.Writer) error {
	if w == nil {
		w = r.writer
	}
	sess := r.active()
	if sess == nil || sess.scheduler.Count() == 0 {
		_, err := fmt.Fprintf(w, "\n%s\n", report.NoProcesses)
		return err
	}
	if err := report.ProcessTable(w, sess.scheduler.Processes()); err != nil {
		return err
	}
	return report.SystemState(w, sess.ledger.Snapshot())
}
