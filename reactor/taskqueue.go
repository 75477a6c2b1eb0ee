package reactor

import (
	"sync"

	"github.com/eapache/queue"
)

// Task is a zero-argument unit of work submitted from any thread and
// drained only on the loop's owning thread.
type Task func()

// taskQueue is the FIFO PendingTaskQueue of spec.md §3/§4.5.
//
// The teacher (momentics/hioload-ws) lists github.com/eapache/queue in
// go.mod but never imports it anywhere in its source; we give the
// library the job it was declared for instead of dropping it — a
// growable ring-buffer FIFO is exactly what a cross-thread task queue
// needs.
type taskQueue struct {
	mu sync.Mutex
	q  *queue.Queue
}

func newTaskQueue() *taskQueue {
	return &taskQueue{q: queue.New()}
}

func (tq *taskQueue) push(t Task) {
	tq.mu.Lock()
	tq.q.Add(t)
	tq.mu.Unlock()
}

// drain swaps the entire pending queue out atomically and returns it in
// FIFO order, leaving the queue empty for new submissions.
func (tq *taskQueue) drain() []Task {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	n := tq.q.Length()
	if n == 0 {
		return nil
	}
	out := make([]Task, n)
	for i := 0; i < n; i++ {
		out[i] = tq.q.Remove().(Task)
	}
	return out
}
