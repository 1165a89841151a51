// Defines the Process struct that models one simulated program in the scheduler.
// Tracks identity, instruction history, per-device timers and timing statistics.

package sim

import (
	"fmt"
	"strings"
)

// Kind is the device an instruction targets.
type Kind byte

const (
	Compute  Kind = 'C'
	InputIO  Kind = 'I'
	OutputIO Kind = 'O'
)

// Kinds lists the valid instruction kinds in dispatch order.
var Kinds = []Kind{Compute, InputIO, OutputIO}

// ParseKind maps a workload token ("C", "I", "O") to its Kind.
func ParseKind(s string) (Kind, error) {
	if len(s) == 1 {
		if k := Kind(s[0]); k.Valid() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown instruction kind %q", s)
}

// Valid reports whether k is one of Compute, InputIO or OutputIO.
func (k Kind) Valid() bool {
	return k.index() >= 0
}

func (k Kind) index() int {
	switch k {
	case Compute:
		return 0
	case InputIO:
		return 1
	case OutputIO:
		return 2
	default:
		return -1
	}
}

func (k Kind) String() string {
	switch k {
	case Compute:
		return "compute"
	case InputIO:
		return "input"
	case OutputIO:
		return "output"
	default:
		return fmt.Sprintf("Kind(%q)", byte(k))
	}
}

// Instruction is a single burst request: Duration ticks of service on one device.
type Instruction struct {
	Kind     Kind
	Duration int64
}

// ProcessState represents where a process currently resides.
type ProcessState string

const (
	StateEntry      ProcessState = "entry"
	StateReady      ProcessState = "ready"
	StateComputing  ProcessState = "computing"
	StateInputWait  ProcessState = "input-wait"
	StateInput      ProcessState = "input"
	StateOutputWait ProcessState = "output-wait"
	StateOutput     ProcessState = "output"
	StateTerminated ProcessState = "terminated"
)

// DeviceStats holds one process's counters for a single device.
type DeviceStats struct {
	Remaining int64 // ticks left in the burst currently assigned to this device
	Total     int64 // ticks of service received on this device
	Bursts    int   // completed bursts on this device
}

// ProcessSpec is a process description as produced by a workload loader,
// before the simulator assigns it an id.
type ProcessSpec struct {
	Name        string
	ArrivalTime int64
	History     []Instruction
}

// Validate rejects records the engine cannot run.
// The first burst must be Compute because admission places processes on the ready queue.
func (ps ProcessSpec) Validate() error {
	if ps.ArrivalTime < 0 {
		return fmt.Errorf("process %q: arrival time must be non-negative, got %d", ps.Name, ps.ArrivalTime)
	}
	if len(ps.History) == 0 {
		return fmt.Errorf("process %q: history is empty", ps.Name)
	}
	for i, in := range ps.History {
		if !in.Kind.Valid() {
			return fmt.Errorf("process %q: instruction %d: unknown kind %q", ps.Name, i, byte(in.Kind))
		}
		if in.Duration <= 0 {
			return fmt.Errorf("process %q: instruction %d: duration must be positive, got %d", ps.Name, i, in.Duration)
		}
	}
	if ps.History[0].Kind != Compute {
		return fmt.Errorf("process %q: history must begin with a compute burst, got %s", ps.Name, ps.History[0].Kind)
	}
	return nil
}

// Process is the mutable record of one simulated program.
type Process struct {
	ID          int
	Name        string
	ArrivalTime int64 // earliest tick at which admission may move it to the ready queue

	History []Instruction
	Cursor  int // index of the current instruction; only moves forward

	State   ProcessState
	devices [3]DeviceStats

	StartTime int64 // tick admitted to the ready queue
	EndTime   int64 // tick after the final burst completed
	WaitTime  int64 // (EndTime - StartTime) minus all service ticks
}

func newProcess(id int, spec ProcessSpec) *Process {
	history := make([]Instruction, len(spec.History))
	copy(history, spec.History)
	return &Process{
		ID:          id,
		Name:        spec.Name,
		ArrivalTime: spec.ArrivalTime,
		History:     history,
		State:       StateEntry,
	}
}

// Current returns the instruction under the cursor.
func (p *Process) Current() Instruction {
	return p.History[p.Cursor]
}

// AtLastInstruction reports whether the cursor is on the final history entry.
func (p *Process) AtLastInstruction() bool {
	return p.Cursor == len(p.History)-1
}

// Stats returns a copy of the process's counters for device k.
func (p *Process) Stats(k Kind) DeviceStats {
	if s := p.stats(k); s != nil {
		return *s
	}
	return DeviceStats{}
}

// stats returns the live counters for k, or nil for an unrecognized kind.
func (p *Process) stats(k Kind) *DeviceStats {
	i := k.index()
	if i < 0 {
		return nil
	}
	return &p.devices[i]
}

// ServiceTime is the total number of ticks spent being serviced on any device.
func (p *Process) ServiceTime() int64 {
	var total int64
	for i := range p.devices {
		total += p.devices[i].Total
	}
	return total
}

// Terminated reports whether the process has finished its history.
func (p *Process) Terminated() bool {
	return p.State == StateTerminated
}

func (p *Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, Name: %s, State: %s, Cursor: %d/%d, ArrivalTime: %d)",
		p.ID, p.Name, p.State, p.Cursor, len(p.History), p.ArrivalTime)
}

// Describe renders the full record, one field per line, for debugging.
func (p *Process) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:          %s\n", p.Name)
	fmt.Fprintf(&sb, "ID:            %d\n", p.ID)
	fmt.Fprintf(&sb, "Arrival:       %d\n", p.ArrivalTime)
	sb.WriteString("History:       ")
	for _, in := range p.History {
		fmt.Fprintf(&sb, "(%c, %d) ", byte(in.Kind), in.Duration)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "History Idx:   %d\n", p.Cursor)
	for _, k := range Kinds {
		s := p.Stats(k)
		fmt.Fprintf(&sb, "%-14s remaining=%d total=%d bursts=%d\n", k.String()+":", s.Remaining, s.Total, s.Bursts)
	}
	fmt.Fprintf(&sb, "Start Time:    %d\n", p.StartTime)
	fmt.Fprintf(&sb, "End Time:      %d\n", p.EndTime)
	fmt.Fprintf(&sb, "Waiting Time:  %d\n", p.WaitTime)
	return sb.String()
}
