package sim

import (
	"fmt"

	"github.com/cpusched/cpusched/sim/trace"
)

const (
	DefaultCapacity       = 5   // max resident processes
	DefaultMaxTime        = 500 // safety ceiling on the tick counter
	DefaultReportInterval = 25  // ticks between status reports
	DefaultFirstProcessID = 101 // id assigned to the first loaded process
)

// Config groups the simulator's tunables.
type Config struct {
	Capacity        int              // max processes across ready/input/output queues and slots (must be > 0)
	MaxTime         int64            // run is abandoned once the clock passes this tick (must be >= 0)
	ReportInterval  int64            // status report period in ticks (0 disables)
	FirstProcessID  int              // id of the first process; later ones count up (must be > 0)
	AdmissionPolicy string           // "arrival" (default) or "always-admit"
	TraceLevel      trace.TraceLevel // "none" (default), "events" or "ticks"
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Capacity:        DefaultCapacity,
		MaxTime:         DefaultMaxTime,
		ReportInterval:  DefaultReportInterval,
		FirstProcessID:  DefaultFirstProcessID,
		AdmissionPolicy: "arrival",
		TraceLevel:      trace.TraceLevelNone,
	}
}

// Validate checks parameter ranges and policy names.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.MaxTime < 0 {
		return fmt.Errorf("max time must be non-negative, got %d", c.MaxTime)
	}
	if c.ReportInterval < 0 {
		return fmt.Errorf("report interval must be non-negative, got %d", c.ReportInterval)
	}
	if c.FirstProcessID <= 0 {
		return fmt.Errorf("first process id must be positive, got %d", c.FirstProcessID)
	}
	if !IsValidAdmissionPolicy(c.AdmissionPolicy) {
		return fmt.Errorf("unknown admission policy %q", c.AdmissionPolicy)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	return nil
}
