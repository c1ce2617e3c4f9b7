// Package ledger implements the Banker's resource ledger.  It is the only
// service allowed to mutate the available vector and the per-process
// allocation vectors: every request is checked against the safety algorithm
// before it is committed, so the ledger never grants an allocation that could
// lead to deadlock.
//
// The ledger grants full demands only: a successful request moves a process
// from its current allocation straight to its maximum demand.
package ledger
