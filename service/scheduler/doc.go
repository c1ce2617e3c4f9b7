// Package scheduler runs a fixed set of processes to completion on a
// simulated single CPU. Each run picks one discipline up front: non-preemptive
// priority scheduling for light load, round-robin for heavier load. Every
// dispatch is gated by the resource ledger, so a process is only run once its
// full maximum demand has been granted without leaving the system unsafe.
package scheduler
