package workload

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpusched/cpusched/sim"
)

// TestExampleWorkloads_RunToCompletion verifies that the shipped example
// workloads load and terminate every process under the default config.
func TestExampleWorkloads_RunToCompletion(t *testing.T) {
	for _, name := range []string{"workload.txt", "workload.yaml"} {
		t.Run(name, func(t *testing.T) {
			specs, err := Load(filepath.Join("..", "..", "examples", name))
			require.NoError(t, err)
			require.NotEmpty(t, specs)

			cfg := sim.DefaultConfig()
			cfg.ReportInterval = 0
			s, err := sim.NewSimulator(cfg, specs)
			require.NoError(t, err)
			res, err := s.Run()
			require.NoError(t, err)

			assert.True(t, res.Completed)
			assert.Equal(t, len(specs), res.Terminated)
		})
	}
}
