// Package report renders simulation state for humans: the resource ledger,
// the process table, the Gantt chart and per-process statistics. Renderers
// only consume snapshots and copies, never live state.
package report
