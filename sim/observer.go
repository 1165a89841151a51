package sim

// Snapshot is a read-only view of queue and slot contents at one tick.
// Slot fields hold 0 when the slot is empty.
type Snapshot struct {
	Clock    int64
	Compute  int
	InputIO  int
	OutputIO int
	Entry    []int
	Ready    []int
	Input    []int
	Output   []int
}

// Resident counts processes in the ready/input/output queues and the slots.
// The entry queue is not resident.
func (s Snapshot) Resident() int {
	n := len(s.Ready) + len(s.Input) + len(s.Output)
	for _, id := range []int{s.Compute, s.InputIO, s.OutputIO} {
		if id != 0 {
			n++
		}
	}
	return n
}

// Observer receives the engine's reportable moments. Implementations must
// not mutate the processes they are handed.
type Observer interface {
	// Status is called every Config.ReportInterval ticks, before dispatch.
	Status(snap Snapshot)
	// Admitted is called when a process moves from the entry to the ready queue.
	Admitted(p *Process, clock int64)
	// Idle is called on the tick the Compute device goes from busy to idle.
	Idle(clock int64)
	// Terminated is called once the final burst of a process completes.
	Terminated(p *Process)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) Status(Snapshot)          {}
func (NopObserver) Admitted(*Process, int64) {}
func (NopObserver) Idle(int64)               {}
func (NopObserver) Terminated(*Process)      {}
