package model

import "fmt"

// GanttEntry records one dispatch interval.
type GanttEntry struct {
	ProcessID int `json:"processID"`
	Start     int `json:"start"`
	End       int `json:"end"`
}

// String renders the entry as "P<ID>:<start>-<end>".
func (e GanttEntry) String() string {
	return fmt.Sprintf("P%d:%d-%d", e.ProcessID, e.Start, e.End)
}

// Duration returns the length of the interval.
func (e GanttEntry) Duration() int {
	return e.End - e.Start
}
