// Package pipeline generates random process descriptors on several producer
// goroutines and hands them to a single consumer through a bounded queue.
// The consumer registers every descriptor with a Registrar, normally the
// scheduler. All shared state of a run lives in a Coordinator created by
// Run and discarded once every worker has returned.
package pipeline
