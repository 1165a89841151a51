// Implements ProcessQueue, the FIFO used for the entry, ready, input-wait
// and output-wait queues. Queues hold process ids; the records themselves
// live in the Simulator's process table.

package sim

import (
	"fmt"
	"strings"
)

// ProcessQueue is a FIFO queue of process ids.
// Order is arrival/admission order; nothing reorders it.
type ProcessQueue struct {
	name  string
	queue []int
}

// NewProcessQueue creates an empty queue. The name is used in reports.
func NewProcessQueue(name string) *ProcessQueue {
	return &ProcessQueue{name: name}
}

// Name returns the queue's report label.
func (pq *ProcessQueue) Name() string {
	return pq.name
}

// Enqueue adds a process id to the back of the queue.
func (pq *ProcessQueue) Enqueue(id int) {
	if id <= 0 {
		panic(fmt.Sprintf("%s queue: Enqueue: invalid process id %d", pq.name, id))
	}
	pq.queue = append(pq.queue, id)
}

// Dequeue removes and returns the id at the front of the queue.
// ok is false when the queue is empty.
func (pq *ProcessQueue) Dequeue() (id int, ok bool) {
	if len(pq.queue) == 0 {
		return 0, false
	}
	id = pq.queue[0]
	pq.queue = pq.queue[1:]
	return id, true
}

// Peek returns the id at the front of the queue without removing it.
func (pq *ProcessQueue) Peek() (id int, ok bool) {
	if len(pq.queue) == 0 {
		return 0, false
	}
	return pq.queue[0], true
}

// Len returns the number of queued processes.
func (pq *ProcessQueue) Len() int {
	return len(pq.queue)
}

// IDs returns a copy of the queue contents, front first.
func (pq *ProcessQueue) IDs() []int {
	ids := make([]int, len(pq.queue))
	copy(ids, pq.queue)
	return ids
}

// Contains reports whether id is queued.
func (pq *ProcessQueue) Contains(id int) bool {
	for _, v := range pq.queue {
		if v == id {
			return true
		}
	}
	return false
}

func (pq *ProcessQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range pq.queue {
		sb.WriteString(fmt.Sprint(id))
		if i < len(pq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
