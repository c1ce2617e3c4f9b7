// Package model contains the in-memory representation of the simulated
// processes, resource vectors and dispatch history shared by the ledger, the
// scheduler and the reporting layer.
//
// Process records are owned by the process arena (see
// service/dao/process/memory); other components keep a Handle and resolve it
// when they need the record, so removal never leaves a dangling reference.
package model
