package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/markphelps/optional"
	"github.com/viant/schedsim/model"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates statistics of one run. Forcibly finished processes have
// no statistics and are excluded from every average.
type Summary struct {
	Processes        int     `json:"processes"`
	Completed        int     `json:"completed"`
	Forced           []int   `json:"forced,omitempty"`
	AvgWaiting       float64 `json:"avgWaiting"`
	AvgTurnaround    float64 `json:"avgTurnaround"`
	WaitingStdDev    float64 `json:"waitingStdDev"`
	TurnaroundStdDev float64 `json:"turnaroundStdDev"`
	Makespan         int     `json:"makespan"`
}

// Summarize computes run statistics.
func Summarize(processes []*model.Process) *Summary {
	ret := &Summary{Processes: len(processes)}
	var waiting, turnaround []float64
	for _, p := range processes {
		if p.Forced || !p.IsCompleted() {
			if p.Forced {
				ret.Forced = append(ret.Forced, p.ID)
			}
			continue
		}
		ret.Completed++
		waiting = append(waiting, float64(p.WaitingTime.OrElse(0)))
		turnaround = append(turnaround, float64(p.TurnaroundTime.OrElse(0)))
		if end := p.CompletionTime.OrElse(0); end > ret.Makespan {
			ret.Makespan = end
		}
	}
	if len(waiting) == 0 {
		return ret
	}
	ret.AvgWaiting = stat.Mean(waiting, nil)
	ret.AvgTurnaround = stat.Mean(turnaround, nil)
	if len(waiting) > 1 {
		ret.WaitingStdDev = stat.StdDev(waiting, nil)
		ret.TurnaroundStdDev = stat.StdDev(turnaround, nil)
	}
	return ret
}

func formatOptional(v optional.Int) string {
	if value, err := v.Get(); err == nil {
		return strconv.Itoa(value)
	}
	return "-"
}

// Statistics renders per-process statistics followed by the averages.
func Statistics(w io.Writer, processes []*model.Process) error {
	header(w, "PROCESS STATISTICS")
	table := newTable(w)
	fmt.Fprintln(table, "PID\tArrival\tBurst\tStart\tCompletion\tWaiting\tTurnaround")
	for _, p := range processes {
		fmt.Fprintf(table, "%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			p.ID, p.ArrivalTime, p.BurstTime,
			formatOptional(p.StartTime),
			formatOptional(p.CompletionTime),
			formatOptional(p.WaitingTime),
			formatOptional(p.TurnaroundTime))
	}
	if err := table.Flush(); err != nil {
		return err
	}

	summary := Summarize(processes)
	header(w, "AVERAGE STATISTICS")
	fmt.Fprintf(w, "Average Waiting Time: %.2f\n", summary.AvgWaiting)
	fmt.Fprintf(w, "Average Turnaround Time: %.2f\n", summary.AvgTurnaround)
	if len(summary.Forced) > 0 {
		fmt.Fprintf(w, "Forcibly finished (statistics undefined): %s\n", labels(summary.Forced))
	}
	_, err := fmt.Fprintln(w, rule)
	return err
}
