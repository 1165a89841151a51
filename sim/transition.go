package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cpusched/cpusched/sim/trace"
)

// InstructionError reports a history entry whose kind the engine cannot
// route. Workload loaders reject such records, so hitting one mid-run means
// the process table was corrupted.
type InstructionError struct {
	ProcessID int
	Index     int
	Kind      Kind
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("process %d: instruction %d has unrecognized kind %q", e.ProcessID, e.Index, byte(e.Kind))
}

// queueFor returns the wait queue feeding the device for kind k, or nil.
func (sim *Simulator) queueFor(k Kind) *ProcessQueue {
	switch k {
	case Compute:
		return sim.ready
	case InputIO:
		return sim.input
	case OutputIO:
		return sim.output
	default:
		return nil
	}
}

// transition is called with a process that has just completed its current
// burst and has already left its device slot. It either terminates the
// process or advances its cursor and queues it for the next device.
func (sim *Simulator) transition(p *Process, now int64) error {
	from := p.Current().Kind
	if p.AtLastInstruction() {
		sim.terminate(p, now)
		sim.recordTransition(trace.TransitionRecord{ProcessID: p.ID, Clock: now, From: from.String(), To: string(StateTerminated)})
		return nil
	}

	p.Cursor++
	next := p.Current()
	q := sim.queueFor(next.Kind)
	if q == nil {
		return &InstructionError{ProcessID: p.ID, Index: p.Cursor, Kind: next.Kind}
	}
	p.stats(next.Kind).Remaining = next.Duration
	p.State = waitingState(next.Kind)
	q.Enqueue(p.ID)

	sim.recordTransition(trace.TransitionRecord{ProcessID: p.ID, Clock: now, From: from.String(), To: q.Name()})
	logrus.Debugf("[tick %07d] process %d finished %s burst, queued on %s for %d ticks", now, p.ID, from, q.Name(), next.Duration)
	return nil
}

// terminate finalizes a process's statistics. The caller has already removed
// it from every queue and slot.
func (sim *Simulator) terminate(p *Process, now int64) {
	p.EndTime = now + 1
	p.WaitTime = (p.EndTime - p.StartTime) - p.ServiceTime()
	if p.WaitTime < 0 {
		panic(fmt.Sprintf("terminate: process %d serviced %d ticks in a %d tick lifetime",
			p.ID, p.ServiceTime(), p.EndTime-p.StartTime))
	}
	p.State = StateTerminated
	sim.Metrics.recordTermination(p)

	logrus.Debugf("[tick %07d] process %d terminated, wait=%d", now, p.ID, p.WaitTime)
	sim.observer.Terminated(p)
}
