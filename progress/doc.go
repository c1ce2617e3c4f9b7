// Package progress keeps aggregated counters for one simulation run
// (processes produced, consumed, dispatched, completed, blocked, forced).
// The tracker travels in the context so producers, the consumer and the
// scheduler can all update it without a global registry.
package progress
