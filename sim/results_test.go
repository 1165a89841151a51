package sim

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_SaveResults(t *testing.T) {
	// GIVEN a finished run
	s := mustNewSimulator(t, tickConfig(), []ProcessSpec{
		proc("B", 0, Compute, 2, InputIO, 3, Compute, 1),
	})
	res := mustRun(t, s)

	// WHEN the result is written to disk
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, res.SaveResults(path))

	// THEN it decodes with per-process device totals
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["completed"])
	assert.Equal(t, 5.0, decoded["final_tick"])
	assert.Equal(t, 0.0, decoded["average_wait"])

	procs := decoded["processes"].([]any)
	require.Len(t, procs, 1)
	p := procs[0].(map[string]any)
	assert.Equal(t, "B", p["name"])
	assert.Equal(t, 3.0, p["compute_total"])
	assert.Equal(t, 2.0, p["compute_bursts"])
	assert.Equal(t, 3.0, p["input_total"])
	assert.Equal(t, 3.0, p["completed_instructions"])
}

func TestResult_AverageWaitNullWhenNothingTerminated(t *testing.T) {
	cfg := tickConfig()
	cfg.MaxTime = 0
	s := mustNewSimulator(t, cfg, []ProcessSpec{proc("long", 0, Compute, 5)})

	res, err := s.Run()
	require.ErrorIs(t, err, ErrHorizonExceeded)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"average_wait":null`)
	assert.Equal(t, StateComputing, res.Processes[0].State)
}
