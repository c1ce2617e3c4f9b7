package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markphelps/optional"
	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/policy"
	"github.com/viant/schedsim/service/ledger"
	"github.com/viant/schedsim/service/scheduler"
)

func TestSequenceAndBlocked(t *testing.T) {
	var testCases = []struct {
		name     string
		ids      []int
		sequence string
		blocked  string
	}{
		{name: "empty", ids: nil, sequence: "Not yet computed", blocked: "None"},
		{name: "single", ids: []int{3}, sequence: "<P3>", blocked: "P3"},
		{name: "many", ids: []int{1, 2}, sequence: "<P1, P2>", blocked: "P1, P2"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.sequence, Sequence(testCase.ids))
			assert.Equal(t, testCase.blocked, Blocked(testCase.ids))
		})
	}
}

func TestSystemState(t *testing.T) {
	state := &ledger.State{
		Total:     model.Vector{10, 5, 7},
		Available: model.Vector{8, 4, 7},
		Rows: []ledger.Row{
			{ProcessID: 1, Max: model.Vector{2, 1, 0}, Allocated: model.Vector{2, 1, 0}, Need: model.Vector{0, 0, 0}},
			{ProcessID: 2, Max: model.Vector{9, 9, 9}, Allocated: model.Vector{0, 0, 0}, Need: model.Vector{9, 9, 9}, Blocked: true},
		},
		SafeSequence: []int{1},
		Blocked:      []int{2},
	}
	buf := &bytes.Buffer{}
	assert.NoError(t, SystemState(buf, state))
	out := buf.String()
	assert.Contains(t, out, "RESOURCE MANAGEMENT STATE")
	assert.Contains(t, out, "Available Resources: [8, 4, 7]")
	assert.Contains(t, out, "[2,1,0]")
	assert.Contains(t, out, "BLOCKED")
	assert.Contains(t, out, "READY")
	assert.Contains(t, out, "Safe Sequence: <P1>")
	assert.Contains(t, out, "Blocked Processes: P2")
}

func TestProcessTable(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.NoError(t, ProcessTable(buf, nil))
	assert.Contains(t, buf.String(), NoProcesses)

	buf.Reset()
	assert.NoError(t, ProcessTable(buf, []*model.Process{model.NewProcess(7, 1, 4, 2, model.Vector{1, 2, 3})}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := strings.Fields(lines[len(lines)-1])
	assert.Equal(t, []string{"7", "1", "4", "2", "[1,", "2,", "3]"}, last)
}

func TestGanttChart(t *testing.T) {
	buf := &bytes.Buffer{}
	entries := []model.GanttEntry{
		{ProcessID: 1, Start: 0, End: 2},
		{ProcessID: 2, Start: 2, End: 4},
		{ProcessID: 1, Start: 4, End: 5},
		{ProcessID: 12, Start: 5, End: 16},
	}
	assert.NoError(t, GanttChart(buf, entries))
	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "| P1 | P2 | P1 | P12 |\n0    2    4    5     16\n"), out)

	buf.Reset()
	assert.NoError(t, GanttChart(buf, nil))
	assert.Contains(t, buf.String(), "(no dispatches)")
}

func TestSummarize(t *testing.T) {
	p1 := model.NewProcess(1, 0, 3, 1, nil)
	p1.Start(0)
	p1.Complete(3)
	p2 := model.NewProcess(2, 1, 2, 1, nil)
	p2.Start(3)
	p2.Complete(5)
	p3 := model.NewProcess(3, 0, 2, 1, nil)
	p3.Force()

	summary := Summarize([]*model.Process{p1, p2, p3})
	assert.Equal(t, 3, summary.Processes)
	assert.Equal(t, 2, summary.Completed)
	assert.Equal(t, []int{3}, summary.Forced)
	assert.InDelta(t, 1.0, summary.AvgWaiting, 1e-9)    // 0 and 2
	assert.InDelta(t, 3.5, summary.AvgTurnaround, 1e-9) // 3 and 4
	assert.InDelta(t, 1.4142, summary.WaitingStdDev, 1e-3)
	assert.Equal(t, 5, summary.Makespan)

	empty := Summarize(nil)
	assert.Equal(t, 0.0, empty.AvgWaiting)

	buf := &bytes.Buffer{}
	assert.NoError(t, Statistics(buf, []*model.Process{p1, p2, p3}))
	out := buf.String()
	assert.Contains(t, out, "Average Waiting Time: 1.00")
	assert.Contains(t, out, "Average Turnaround Time: 3.50")
	assert.Contains(t, out, "Forcibly finished (statistics undefined): P3")
	assert.Equal(t, "-", formatOptional(optional.Int{}))
}

func TestSelection(t *testing.T) {
	var testCases = []struct {
		name   string
		result *scheduler.Result
		expect []string
	}{
		{
			name:   "priority",
			result: &scheduler.Result{Policy: policy.KindPriority, Threshold: 5, ReadyAtZero: 3},
			expect: []string{"Ready processes at time 0: 3", "Condition: <= 5 ready processes", "PRIORITY SCHEDULING"},
		},
		{
			name:   "round robin",
			result: &scheduler.Result{Policy: policy.KindRoundRobin, Threshold: 5, ReadyAtZero: 6, Quantum: 2},
			expect: []string{"Condition: > 5 ready processes", "ROUND ROBIN SCHEDULING", "Time Quantum: 2"},
		},
		{
			name:   "forced",
			result: &scheduler.Result{Policy: policy.KindRoundRobin, Quantum: 3},
			expect: []string{"forced by configuration", "Time Quantum: 3"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			assert.NoError(t, Selection(buf, testCase.result))
			for _, expect := range testCase.expect {
				assert.Contains(t, buf.String(), expect)
			}
		})
	}
}
