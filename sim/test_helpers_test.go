package sim

import (
	"testing"

	"github.com/cpusched/cpusched/sim/trace"
)

// proc builds a ProcessSpec from alternating kind/duration pairs,
// e.g. proc("A", 0, Compute, 2, InputIO, 3).
func proc(name string, arrival int64, pairs ...any) ProcessSpec {
	spec := ProcessSpec{Name: name, ArrivalTime: arrival}
	for i := 0; i+1 < len(pairs); i += 2 {
		spec.History = append(spec.History, Instruction{
			Kind:     pairs[i].(Kind),
			Duration: int64(pairs[i+1].(int)),
		})
	}
	return spec
}

// tickConfig is the default config with per-tick tracing and no status reports.
func tickConfig() Config {
	cfg := DefaultConfig()
	cfg.ReportInterval = 0
	cfg.TraceLevel = trace.TraceLevelTicks
	return cfg
}

func mustNewSimulator(t *testing.T, cfg Config, specs []ProcessSpec, opts ...Option) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, specs, opts...)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

// recordingObserver keeps everything the engine reports.
type recordingObserver struct {
	statuses   []Snapshot
	admitted   []int
	idle       []int64
	terminated []int
}

func (r *recordingObserver) Status(snap Snapshot)        { r.statuses = append(r.statuses, snap) }
func (r *recordingObserver) Admitted(p *Process, _ int64) { r.admitted = append(r.admitted, p.ID) }
func (r *recordingObserver) Idle(clock int64)            { r.idle = append(r.idle, clock) }
func (r *recordingObserver) Terminated(p *Process)       { r.terminated = append(r.terminated, p.ID) }
