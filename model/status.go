package model

// RunStatus describes how a scheduling run terminated.
type RunStatus string

const (
	// RunStatusPending is reported before the first run.
	RunStatusPending RunStatus = "pending"
	// RunStatusCompleted means every process was dispatched to completion.
	RunStatusCompleted RunStatus = "completed"
	// RunStatusDeadlockEscape means the run ended by forcibly finishing
	// processes that could never be granted resources. Statistics of those
	// processes are undefined.
	RunStatusDeadlockEscape RunStatus = "completedWithDeadlockEscape"
)

// IsClean reports whether the run finished without a deadlock escape.
func (s RunStatus) IsClean() bool {
	return s == RunStatusCompleted
}
