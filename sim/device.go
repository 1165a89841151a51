package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cpusched/cpusched/sim/trace"
)

// Device is a single-resource server: one active slot drained from one FIFO.
// The Compute device drains the ready queue; each I/O device drains its own
// wait queue.
type Device struct {
	Kind  Kind
	Slot  Slot
	Queue *ProcessQueue
}

func newDevice(kind Kind, queue *ProcessQueue) *Device {
	return &Device{Kind: kind, Queue: queue}
}

// runningState and waitingState map a device kind to the state of a process
// in its slot and in its queue.
func runningState(k Kind) ProcessState {
	switch k {
	case Compute:
		return StateComputing
	case InputIO:
		return StateInput
	default:
		return StateOutput
	}
}

func waitingState(k Kind) ProcessState {
	switch k {
	case Compute:
		return StateReady
	case InputIO:
		return StateInputWait
	default:
		return StateOutputWait
	}
}

// dispatchCompute runs the Compute device for one tick. An empty slot is
// refilled through admission and the ready queue; if it stays empty the tick
// counts as idle.
func (sim *Simulator) dispatchCompute(now int64) error {
	dev := sim.compute
	if !dev.Slot.Occupied() {
		sim.admit(now)
		sim.load(dev, now)
	}

	id, ok := dev.Slot.Occupant()
	if !ok {
		sim.Metrics.IdleTicks++
		if !sim.cpuIdle {
			sim.cpuIdle = true
			logrus.Debugf("[tick %07d] compute slot empty, idling", now)
			sim.observer.Idle(now)
		}
		return nil
	}
	sim.cpuIdle = false
	return sim.advance(dev, sim.mustProcess(id), now)
}

// dispatchIO runs one I/O device for one tick.
func (sim *Simulator) dispatchIO(dev *Device, now int64) error {
	if !dev.Slot.Occupied() {
		sim.load(dev, now)
	}
	id, ok := dev.Slot.Occupant()
	if !ok {
		return nil
	}
	return sim.advance(dev, sim.mustProcess(id), now)
}

// load pops the device's queue into its empty slot and arms the countdown
// from the process's current instruction.
func (sim *Simulator) load(dev *Device, now int64) {
	id, ok := dev.Queue.Dequeue()
	if !ok {
		return
	}
	p := sim.mustProcess(id)
	cur := p.Current()
	if cur.Kind != dev.Kind {
		panic(fmt.Sprintf("load: process %d queued for %s but current instruction %d is %s",
			id, dev.Kind, p.Cursor, cur.Kind))
	}
	dev.Slot.Fill(id)
	p.State = runningState(dev.Kind)
	p.stats(dev.Kind).Remaining = cur.Duration

	if sim.Trace != nil {
		sim.Trace.RecordDispatch(trace.DispatchRecord{ProcessID: id, Clock: now, Device: dev.Kind.String()})
	}
}

// advance gives the occupant of dev one tick of service. A process already
// serviced this tick is skipped. On burst completion the slot is vacated and
// the process handed to transition.
func (sim *Simulator) advance(dev *Device, p *Process, now int64) error {
	if id, _ := dev.Slot.Occupant(); id != p.ID {
		panic(fmt.Sprintf("advance: %s slot holds %d, asked to advance %d", dev.Kind, id, p.ID))
	}
	if sim.serviced[p.ID] {
		return nil
	}
	st := p.stats(dev.Kind)
	if st.Remaining <= 0 {
		panic(fmt.Sprintf("advance: process %d has no %s work left", p.ID, dev.Kind))
	}
	st.Remaining--
	st.Total++
	sim.advanced = append(sim.advanced, trace.ProgressRecord{ProcessID: p.ID, Device: dev.Kind.String()})
	if st.Remaining > 0 {
		return nil
	}

	st.Bursts++
	sim.serviced[p.ID] = true
	dev.Slot.Vacate()
	return sim.transition(p, now)
}
