// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cpusched/cpusched/sim/trace"
)

// ErrHorizonExceeded is returned by Run when the clock passes Config.MaxTime
// before every process has terminated. The run is abandoned, not completed.
var ErrHorizonExceeded = errors.New("simulation abandoned: max time exceeded")

// Simulator is the core object that holds simulation time, the process table,
// the four queues, the three device slots and the run counters.
// It is not safe for concurrent use; independent Simulators share nothing.
type Simulator struct {
	Clock   int64
	Config  Config
	Metrics *Metrics
	// Trace is nil when Config.TraceLevel is none.
	Trace *trace.SimulationTrace

	// processes is the single owner of every Process record; queues and
	// slots refer to entries by id. order keeps load order for reporting.
	processes map[int]*Process
	order     []int

	entry  *ProcessQueue
	ready  *ProcessQueue
	input  *ProcessQueue
	output *ProcessQueue

	compute  *Device
	inputIO  *Device
	outputIO *Device

	admission AdmissionPolicy
	observer  Observer

	// serviced holds the ids whose burst completed this tick; they receive
	// no further service until the tick ends.
	serviced map[int]bool
	advanced []trace.ProgressRecord
	cpuIdle  bool
	finished bool
}

// Option customizes a Simulator at construction.
type Option func(*Simulator)

// WithObserver routes reportable moments to o.
func WithObserver(o Observer) Option {
	return func(sim *Simulator) {
		if o != nil {
			sim.observer = o
		}
	}
}

// WithAdmissionPolicy overrides the policy named in Config.AdmissionPolicy.
func WithAdmissionPolicy(p AdmissionPolicy) Option {
	return func(sim *Simulator) {
		if p != nil {
			sim.admission = p
		}
	}
}

// NewSimulator validates cfg and the workload, assigns ids starting at
// cfg.FirstProcessID in workload order and places every process on the
// entry queue.
func NewSimulator(cfg Config, specs []ProcessSpec, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sim := &Simulator{
		Clock:     0,
		Config:    cfg,
		Metrics:   NewMetrics(),
		processes: make(map[int]*Process, len(specs)),
		order:     make([]int, 0, len(specs)),
		entry:     NewProcessQueue("entry"),
		ready:     NewProcessQueue("ready"),
		input:     NewProcessQueue("input"),
		output:    NewProcessQueue("output"),
		admission: NewAdmissionPolicy(cfg.AdmissionPolicy),
		observer:  NopObserver{},
		serviced:  make(map[int]bool),
		// no idle announcement until the Compute device has done some work
		cpuIdle: true,
	}
	sim.compute = newDevice(Compute, sim.ready)
	sim.inputIO = newDevice(InputIO, sim.input)
	sim.outputIO = newDevice(OutputIO, sim.output)
	if cfg.TraceLevel.Enabled() {
		sim.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.TraceLevel})
	}
	for _, opt := range opts {
		opt(sim)
	}

	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("workload record %d: %w", i+1, err)
		}
		id := cfg.FirstProcessID + i
		sim.processes[id] = newProcess(id, spec)
		sim.order = append(sim.order, id)
		sim.entry.Enqueue(id)
	}
	return sim, nil
}

// Run drives the tick loop until every process has terminated or the clock
// passes Config.MaxTime. The Result is always returned; err is
// ErrHorizonExceeded for a safety stop, or the fault that aborted the run.
func (sim *Simulator) Run() (*Result, error) {
	if sim.finished {
		return nil, errors.New("simulator has already run")
	}
	sim.finished = true

	logrus.Infof("[tick %07d] Starting simulation with %d processes, capacity=%d, max-time=%d",
		sim.Clock, len(sim.order), sim.Config.Capacity, sim.Config.MaxTime)
	sim.admit(sim.Clock)

	for sim.Clock <= sim.Config.MaxTime {
		done, err := sim.Step()
		if err != nil {
			logrus.Errorf("[tick %07d] Simulation aborted: %v", sim.Clock, err)
			return sim.result(false), err
		}
		if done {
			logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
			return sim.result(true), nil
		}
	}
	logrus.Warnf("[tick %07d] Simulation abandoned after max time %d", sim.Clock, sim.Config.MaxTime)
	return sim.result(false), ErrHorizonExceeded
}

// Step simulates one tick: status report, the Compute, InputIO and OutputIO
// dispatchers in that order, and the termination check. It returns true once
// the entry queue is empty and nothing is resident; the clock is then left on
// the final tick. Otherwise the clock advances by one.
func (sim *Simulator) Step() (done bool, err error) {
	now := sim.Clock
	if sim.Config.ReportInterval > 0 && now%sim.Config.ReportInterval == 0 {
		sim.observer.Status(sim.Snapshot())
	}

	sim.advanced = sim.advanced[:0]
	if err := sim.dispatchCompute(now); err != nil {
		return false, err
	}
	if err := sim.dispatchIO(sim.inputIO, now); err != nil {
		return false, err
	}
	if err := sim.dispatchIO(sim.outputIO, now); err != nil {
		return false, err
	}

	resident := sim.Resident()
	if resident > sim.Config.Capacity {
		panic(fmt.Sprintf("Step: resident count %d exceeds capacity %d at tick %d", resident, sim.Config.Capacity, now))
	}
	sim.Metrics.PeakResident = max(sim.Metrics.PeakResident, resident)
	sim.recordTick(now)

	done = sim.entry.Len() == 0 && resident == 0
	clear(sim.serviced)
	if done {
		return true, nil
	}
	sim.Clock++
	return false, nil
}

// Resident counts processes in the ready/input/output queues and the three
// slots. Processes still on the entry queue are not resident.
func (sim *Simulator) Resident() int {
	n := sim.ready.Len() + sim.input.Len() + sim.output.Len()
	for _, dev := range sim.devices() {
		if dev.Slot.Occupied() {
			n++
		}
	}
	return n
}

// Snapshot returns the current queue and slot contents.
func (sim *Simulator) Snapshot() Snapshot {
	return Snapshot{
		Clock:    sim.Clock,
		Compute:  sim.compute.Slot.ReportID(),
		InputIO:  sim.inputIO.Slot.ReportID(),
		OutputIO: sim.outputIO.Slot.ReportID(),
		Entry:    sim.entry.IDs(),
		Ready:    sim.ready.IDs(),
		Input:    sim.input.IDs(),
		Output:   sim.output.IDs(),
	}
}

// Process looks up a process record by id.
func (sim *Simulator) Process(id int) (*Process, bool) {
	p, ok := sim.processes[id]
	return p, ok
}

// Processes returns every process record in load order.
func (sim *Simulator) Processes() []*Process {
	out := make([]*Process, 0, len(sim.order))
	for _, id := range sim.order {
		out = append(out, sim.processes[id])
	}
	return out
}

func (sim *Simulator) devices() []*Device {
	return []*Device{sim.compute, sim.inputIO, sim.outputIO}
}

func (sim *Simulator) mustProcess(id int) *Process {
	p, ok := sim.processes[id]
	if !ok {
		panic(fmt.Sprintf("process %d is queued but missing from the process table", id))
	}
	return p
}

func (sim *Simulator) recordAdmission(rec trace.AdmissionRecord) {
	if sim.Trace != nil {
		sim.Trace.RecordAdmission(rec)
	}
}

func (sim *Simulator) recordTransition(rec trace.TransitionRecord) {
	if sim.Trace != nil {
		sim.Trace.RecordTransition(rec)
	}
}

func (sim *Simulator) recordTick(now int64) {
	if sim.Trace == nil || sim.Trace.Config.Level != trace.TraceLevelTicks {
		return
	}
	snap := sim.Snapshot()
	advanced := make([]trace.ProgressRecord, len(sim.advanced))
	copy(advanced, sim.advanced)
	sim.Trace.RecordTick(trace.TickRecord{
		Clock:    now,
		Compute:  snap.Compute,
		InputIO:  snap.InputIO,
		OutputIO: snap.OutputIO,
		Entry:    snap.Entry,
		Ready:    snap.Ready,
		Input:    snap.Input,
		Output:   snap.Output,
		Advanced: advanced,
	})
}
