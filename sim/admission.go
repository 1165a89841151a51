package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cpusched/cpusched/sim/trace"
)

// AdmissionPolicy decides whether the process at the head of the entry queue
// may move to the ready queue at the given clock. The residency cap is
// enforced by the Simulator independently of the policy.
type AdmissionPolicy interface {
	Admit(p *Process, clock int64) (admitted bool, reason string)
}

// ArrivalGated admits a process only once its arrival time has been reached.
type ArrivalGated struct{}

func (a *ArrivalGated) Admit(p *Process, clock int64) (bool, string) {
	if p.ArrivalTime > clock {
		return false, fmt.Sprintf("arrives at %d", p.ArrivalTime)
	}
	return true, ""
}

// AlwaysAdmit admits processes regardless of arrival time.
type AlwaysAdmit struct{}

func (a *AlwaysAdmit) Admit(_ *Process, _ int64) (bool, string) {
	return true, ""
}

// NewAdmissionPolicy creates an admission policy by name.
// Valid names are defined in ValidAdmissionPolicies (bundle.go).
// An empty string defaults to ArrivalGated.
// Panics on unrecognized names.
func NewAdmissionPolicy(name string) AdmissionPolicy {
	if !IsValidAdmissionPolicy(name) {
		panic(fmt.Sprintf("unknown admission policy %q", name))
	}
	switch name {
	case "", "arrival":
		return &ArrivalGated{}
	case "always-admit":
		return &AlwaysAdmit{}
	default:
		panic(fmt.Sprintf("unhandled admission policy %q", name))
	}
}

// admit moves processes from the front of the entry queue to the back of the
// ready queue until the entry queue is empty, the residency cap is reached, or
// the head is not yet eligible. An ineligible head stalls admission; later
// entries are never admitted around it. Returns the number admitted.
func (sim *Simulator) admit(now int64) int {
	admitted := 0
	for sim.Resident() < sim.Config.Capacity {
		id, ok := sim.entry.Peek()
		if !ok {
			break
		}
		p := sim.mustProcess(id)
		if ok, reason := sim.admission.Admit(p, now); !ok {
			sim.recordAdmission(trace.AdmissionRecord{ProcessID: id, Clock: now, Admitted: false, Reason: reason})
			break
		}
		sim.entry.Dequeue()
		p.StartTime = now
		p.State = StateReady
		sim.ready.Enqueue(id)
		admitted++

		sim.recordAdmission(trace.AdmissionRecord{ProcessID: id, Clock: now, Admitted: true})
		logrus.Debugf("[tick %07d] process %d moved from entry to ready", now, id)
		sim.observer.Admitted(p, now)
	}
	if r := sim.Resident(); r > sim.Config.Capacity {
		panic(fmt.Sprintf("admit: resident count %d exceeds capacity %d", r, sim.Config.Capacity))
	}
	return admitted
}
