// Package testutil provides shared test infrastructure for the cpusched
// simulator: golden summary fixtures and per-tick invariant checks used
// across the sim/ test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cpusched/cpusched/sim/trace"
)

// GoldenDataset represents the structure of testdata/golden.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one workload file and the summary it must produce.
type GoldenTestCase struct {
	Name      string        `json:"name"`
	Workload  string        `json:"workload"` // path relative to testdata/
	Capacity  int           `json:"capacity"`
	MaxTime   int64         `json:"max_time"`
	Admission string        `json:"admission"`
	Summary   GoldenSummary `json:"summary"`
}

// GoldenSummary is the expected final summary.
type GoldenSummary struct {
	Completed   bool     `json:"completed"`
	FinalTick   int64    `json:"final_tick"`
	IdleTicks   int64    `json:"idle_ticks"`
	Terminated  int      `json:"terminated"`
	AverageWait *float64 `json:"average_wait"`
}

// TestdataPath resolves name inside the repo-level testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// LoadGoldenDataset loads testdata/golden.json.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()
	data, err := os.ReadFile(TestdataPath(t, "golden.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}
	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	return &dataset
}

// AssertTickInvariants checks, for every recorded tick, that each process id
// appears in at most one queue or slot, that the resident count stays within
// capacity, and that no process received more than one unit of service.
func AssertTickInvariants(t *testing.T, ticks []trace.TickRecord, capacity int) {
	t.Helper()
	for _, tk := range ticks {
		seen := make(map[int]string)
		place := func(where string, ids ...int) {
			for _, id := range ids {
				if id == 0 {
					continue
				}
				if prev, dup := seen[id]; dup {
					t.Errorf("tick %d: process %d is in both %s and %s", tk.Clock, id, prev, where)
				}
				seen[id] = where
			}
		}
		place("compute slot", tk.Compute)
		place("input slot", tk.InputIO)
		place("output slot", tk.OutputIO)
		place("entry queue", tk.Entry...)
		place("ready queue", tk.Ready...)
		place("input queue", tk.Input...)
		place("output queue", tk.Output...)

		if r := tk.Resident(); r > capacity {
			t.Errorf("tick %d: %d resident processes exceed capacity %d", tk.Clock, r, capacity)
		}

		served := make(map[int]string)
		for _, adv := range tk.Advanced {
			if prev, dup := served[adv.ProcessID]; dup {
				t.Errorf("tick %d: process %d advanced on both %s and %s", tk.Clock, adv.ProcessID, prev, adv.Device)
			}
			served[adv.ProcessID] = adv.Device
		}
	}
}
