package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/ledger"
	"github.com/viant/schedsim/service/scheduler"
)

const rule = "========================================"

// NoProcesses is printed when there is nothing to show.
const NoProcesses = "No processes in the system yet."

func header(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, center(title), rule)
}

func center(title string) string {
	if pad := (len(rule) - len(title)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + title
	}
	return title
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}

// Sequence renders process IDs as "<P1, P2>".
func Sequence(ids []int) string {
	if len(ids) == 0 {
		return "Not yet computed"
	}
	return "<" + labels(ids) + ">"
}

// Blocked renders blocked process IDs as "P1, P2" or "None".
func Blocked(ids []int) string {
	if len(ids) == 0 {
		return "None"
	}
	return labels(ids)
}

func labels(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("P%d", id)
	}
	return strings.Join(parts, ", ")
}

// SystemState renders the ledger snapshot.
func SystemState(w io.Writer, state *ledger.State) error {
	header(w, "RESOURCE MANAGEMENT STATE")
	fmt.Fprintf(w, "Total Resources: %v\n", state.Total)
	fmt.Fprintf(w, "Available Resources: %v\n\n", state.Available)
	if len(state.Rows) > 0 {
		fmt.Fprintln(w, "Process Resource Table:")
		table := newTable(w)
		fmt.Fprintln(table, "PID\tMax\tAllocated\tNeed\tStatus")
		for _, row := range state.Rows {
			status := "READY"
			if row.Blocked {
				status = "BLOCKED"
			}
			fmt.Fprintf(table, "%d\t%v\t%v\t%v\t%s\n", row.ProcessID, row.Max.Format(","), row.Allocated.Format(","), row.Need.Format(","), status)
		}
		if err := table.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Safe Sequence: %s\n", Sequence(state.SafeSequence))
	fmt.Fprintf(w, "Blocked Processes: %s\n", Blocked(state.Blocked))
	_, err := fmt.Fprintln(w, rule)
	return err
}

// ProcessTable renders process descriptors.
func ProcessTable(w io.Writer, processes []*model.Process) error {
	header(w, "PROCESS TABLE")
	if len(processes) == 0 {
		_, err := fmt.Fprintln(w, NoProcesses)
		return err
	}
	table := newTable(w)
	fmt.Fprintln(table, "PID\tArrival\tBurst\tPriority\tResources")
	for _, p := range processes {
		fmt.Fprintf(table, "%d\t%d\t%d\t%d\t%v\n", p.ID, p.ArrivalTime, p.BurstTime, p.Priority, p.MaxDemand)
	}
	return table.Flush()
}

// GanttChart renders the dispatch history as a bar of process labels with
// the time axis underneath.
func GanttChart(w io.Writer, entries []model.GanttEntry) error {
	header(w, "GANTT CHART")
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "(no dispatches)")
		return err
	}
	bar := "|"
	axis := fmt.Sprint(entries[0].Start)
	for _, entry := range entries {
		bar += fmt.Sprintf(" P%d |", entry.ProcessID)
		// each end time starts under the closing bar of its cell
		if pad := len(bar) - 1 - len(axis); pad > 0 {
			axis += strings.Repeat(" ", pad)
		} else {
			axis += " "
		}
		axis += fmt.Sprint(entry.End)
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", bar, axis)
	return err
}

// Selection renders which discipline a run used and why.
func Selection(w io.Writer, result *scheduler.Result) error {
	header(w, "SCHEDULER SELECTION")
	fmt.Fprintf(w, "Ready processes at time 0: %d\n", result.ReadyAtZero)
	preemptive := result.Policy.IsPreemptive()
	switch {
	case result.Threshold == 0:
		fmt.Fprintln(w, "Condition: forced by configuration")
	case preemptive:
		fmt.Fprintf(w, "Condition: > %d ready processes\n", result.Threshold)
	default:
		fmt.Fprintf(w, "Condition: <= %d ready processes\n", result.Threshold)
	}
	if !preemptive {
		_, err := fmt.Fprintln(w, "Selected: PRIORITY SCHEDULING (non-preemptive)")
		return err
	}
	fmt.Fprintln(w, "Selected: ROUND ROBIN SCHEDULING")
	_, err := fmt.Fprintf(w, "Time Quantum: %d\n", result.Quantum)
	return err
}
