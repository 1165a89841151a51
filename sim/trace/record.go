// Package trace provides event recording for scheduler runs.
// It has no dependencies on sim/ and stores pure data types only.
package trace

// AdmissionRecord captures one admission decision for the head of the entry queue.
// A refused head stalls admission for the rest of that call.
type AdmissionRecord struct {
	ProcessID int
	Clock     int64
	Admitted  bool
	Reason    string
}

// DispatchRecord captures a process moving from a queue into a device slot.
type DispatchRecord struct {
	ProcessID int
	Clock     int64
	Device    string
}

// TransitionRecord captures a burst completion. To is the destination queue
// name, or "terminated".
type TransitionRecord struct {
	ProcessID int
	Clock     int64
	From      string
	To        string
}

// ProgressRecord is one tick of service given to one process.
type ProgressRecord struct {
	ProcessID int
	Device    string
}

// TickRecord captures queue and slot contents at the end of a tick, plus every
// unit of service handed out during it.
type TickRecord struct {
	Clock    int64
	Compute  int // 0 when empty
	InputIO  int
	OutputIO int
	Entry    []int
	Ready    []int
	Input    []int
	Output   []int
	Advanced []ProgressRecord
}

// Resident counts the processes held in the ready/input/output queues and slots.
func (tr TickRecord) Resident() int {
	n := len(tr.Ready) + len(tr.Input) + len(tr.Output)
	for _, id := range []int{tr.Compute, tr.InputIO, tr.OutputIO} {
		if id != 0 {
			n++
		}
	}
	return n
}
