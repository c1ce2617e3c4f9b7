// Package policy decides which scheduling discipline a run uses. By default
// the choice is load based: a small number of processes ready at time zero
// runs under non-preemptive priority scheduling, anything larger under
// round-robin. A Policy embedded in the context can force either discipline.
package policy
