package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpusched/cpusched/sim"
	"github.com/cpusched/cpusched/sim/workload"
)

func TestWriteWorkload_Formats(t *testing.T) {
	specs := []sim.ProcessSpec{
		{Name: "a", ArrivalTime: 1, History: []sim.Instruction{{Kind: sim.Compute, Duration: 2}}},
	}

	var text bytes.Buffer
	require.NoError(t, writeWorkload(&text, specs, "text"))
	assert.Equal(t, "a 1\nC 2 N 0\nSTOPHERE  0\n", text.String())

	var yml bytes.Buffer
	require.NoError(t, writeWorkload(&yml, specs, "yaml"))
	spec, err := workload.ParseSpec(yml.Bytes())
	require.NoError(t, err)
	got, err := spec.ProcessSpecs()
	require.NoError(t, err)
	assert.Equal(t, specs, got)

	assert.Error(t, writeWorkload(&bytes.Buffer{}, specs, "csv"))
}
