package sim

import (
	"encoding/json"
	"fmt"
	"os"
)

// ProcessRecord is the per-process section of a Result.
type ProcessRecord struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	State          ProcessState `json:"state"`
	ArrivalTime    int64        `json:"arrival_time"`
	StartTime      int64        `json:"start_time"`
	EndTime        int64        `json:"end_time,omitempty"`
	WaitTime       int64        `json:"wait_time,omitempty"`
	ComputeTotal   int64        `json:"compute_total"`
	ComputeBursts  int          `json:"compute_bursts"`
	InputTotal     int64        `json:"input_total"`
	InputBursts    int          `json:"input_bursts"`
	OutputTotal    int64        `json:"output_total"`
	OutputBursts   int          `json:"output_bursts"`
	CompletedSteps int          `json:"completed_instructions"`
}

// Result is the outcome of a run.
type Result struct {
	// Completed is false when the run was abandoned at MaxTime or aborted.
	Completed bool `json:"completed"`

	FinalTick  int64 `json:"final_tick"`
	IdleTicks  int64 `json:"idle_ticks"`
	Terminated int   `json:"terminated"`
	// AverageWait is nil when no process terminated.
	AverageWait  *float64        `json:"average_wait"`
	PeakResident int             `json:"peak_resident"`
	Wait         WaitStats       `json:"wait_stats"`
	Turnaround   WaitStats       `json:"turnaround_stats"`
	Processes    []ProcessRecord `json:"processes"`
}

func (sim *Simulator) result(completed bool) *Result {
	r := &Result{
		Completed:    completed,
		FinalTick:    sim.Clock,
		IdleTicks:    sim.Metrics.IdleTicks,
		Terminated:   sim.Metrics.Terminated,
		PeakResident: sim.Metrics.PeakResident,
		Wait:         sim.Metrics.WaitDistribution(),
		Turnaround:   sim.Metrics.TurnaroundDistribution(),
		Processes:    make([]ProcessRecord, 0, len(sim.order)),
	}
	if avg, ok := sim.Metrics.AverageWait(); ok {
		r.AverageWait = &avg
	}
	for _, p := range sim.Processes() {
		r.Processes = append(r.Processes, newProcessRecord(p))
	}
	return r
}

func newProcessRecord(p *Process) ProcessRecord {
	c, i, o := p.Stats(Compute), p.Stats(InputIO), p.Stats(OutputIO)
	completed := c.Bursts + i.Bursts + o.Bursts
	return ProcessRecord{
		ID:             p.ID,
		Name:           p.Name,
		State:          p.State,
		ArrivalTime:    p.ArrivalTime,
		StartTime:      p.StartTime,
		EndTime:        p.EndTime,
		WaitTime:       p.WaitTime,
		ComputeTotal:   c.Total,
		ComputeBursts:  c.Bursts,
		InputTotal:     i.Total,
		InputBursts:    i.Bursts,
		OutputTotal:    o.Total,
		OutputBursts:   o.Bursts,
		CompletedSteps: completed,
	}
}

// SaveResults writes r as indented JSON to path.
func (r *Result) SaveResults(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
