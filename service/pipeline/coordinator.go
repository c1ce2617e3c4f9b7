package pipeline

import (
	"sync"
	"sync/atomic"

	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/messaging"
)

// Coordinator is the state shared by the workers of one run: the handoff
// queue, the process ID sequence and the finished flag.
type Coordinator struct {
	RunID    string
	queue    messaging.Queue[model.Process]
	idMux    sync.Mutex
	lastID   int
	finished atomic.Bool
}

// NewCoordinator creates a coordinator whose ID sequence starts at 1.
func NewCoordinator(runID string, queue messaging.Queue[model.Process]) *Coordinator {
	return &Coordinator{RunID: runID, queue: queue}
}

// NextID returns the next process ID. IDs are unique and increase
// monotonically across all producers.
func (c *Coordinator) NextID() int {
	c.idMux.Lock()
	defer c.idMux.Unlock()
	c.lastID++
	return c.lastID
}

// Queue returns the handoff queue.
func (c *Coordinator) Queue() messaging.Queue[model.Process] {
	return c.queue
}

// Finish marks the run as finished.
func (c *Coordinator) Finish() {
	c.finished.Store(true)
}

// Finished reports whether every worker has returned.
func (c *Coordinator) Finished() bool {
	return c.finished.Load()
}
