package workload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpusched/cpusched/sim"
)

func TestParse_TwoRecords(t *testing.T) {
	// GIVEN a text workload with two records and a stop marker
	input := `editor 0
C 3 I 2 C 1 N 0
backup 4
C 2 O 6 N 0
STOPHERE  0
`
	// WHEN parsed
	specs, err := Parse(strings.NewReader(input))

	// THEN both records come back in file order
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, sim.ProcessSpec{
		Name:        "editor",
		ArrivalTime: 0,
		History: []sim.Instruction{
			{Kind: sim.Compute, Duration: 3},
			{Kind: sim.InputIO, Duration: 2},
			{Kind: sim.Compute, Duration: 1},
		},
	}, specs[0])
	assert.Equal(t, "backup", specs[1].Name)
	assert.Equal(t, int64(4), specs[1].ArrivalTime)
	assert.Equal(t, sim.OutputIO, specs[1].History[1].Kind)
}

// TestParse_StopMarkerOnHistoryLine verifies that a STOPHERE at the start of
// the first record's history line ends loading with no processes.
func TestParse_StopMarkerOnHistoryLine(t *testing.T) {
	input := "first 0\nSTOPHERE  0\nsecond 0\nC 1 N 0\n"

	specs, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestParse_StopMarkers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"stop header", "a 0\nC 1 N 0\nSTOPHERE 0\nb 0\nC 1 N 0\n", []string{"a"}},
		{"N header", "a 0\nC 1 N 0\nN 0\nb 0\nC 1 N 0\n", []string{"a"}},
		{"stop after first history", "a 0\nC 1 N 0\nb 0\nSTOPHERE 0\n", []string{"a"}},
		{"no stop marker", "a 0\nC 1 N 0\nb 3\nC 2\n", []string{"a", "b"}},
		{"blank lines", "\na 0\nC 1 N 0\n\n\nb 0\nC 1 N 0\n", []string{"a", "b"}},
		{"empty file", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			var names []string
			for _, s := range specs {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestParse_HistoryStopsAtSentinel(t *testing.T) {
	specs, err := Parse(strings.NewReader("a 0\nC 1 I 2 N 0 O 9\n"))

	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Len(t, specs[0].History, 2)
}

// TestParse_Errors verifies that malformed records are rejected with the
// 1-based line number of the offending line.
func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{"missing arrival", "a\nC 1 N 0\n", 1, "missing its arrival time"},
		{"bad arrival", "a x\nC 1 N 0\n", 1, "bad arrival time"},
		{"negative arrival", "a -2\nC 1 N 0\n", 1, "negative arrival time"},
		{"missing history", "a 0\nC 1 N 0\nb 0\n", 3, "has no history line"},
		{"unknown kind", "a 0\nC 1 X 2 N 0\n", 2, "unknown instruction kind"},
		{"missing duration", "a 0\nC 1 I\n", 2, "has no duration"},
		{"bad duration", "a 0\nC one N 0\n", 2, "bad duration"},
		{"zero duration", "a 0\nC 0 N 0\n", 1, "duration must be positive"},
		{"empty history", "a 0\nN 0\n", 1, "history is empty"},
		{"starts with io", "a 0\nI 2 C 1 N 0\n", 1, "must begin with a compute burst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %v", err)
			assert.Equal(t, tt.wantLine, pe.Line)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	// GIVEN a parsed workload
	orig := []sim.ProcessSpec{
		{Name: "a", ArrivalTime: 0, History: []sim.Instruction{{Kind: sim.Compute, Duration: 2}, {Kind: sim.OutputIO, Duration: 1}}},
		{Name: "b", ArrivalTime: 7, History: []sim.Instruction{{Kind: sim.Compute, Duration: 5}}},
	}

	// WHEN written and parsed back
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, orig))
	got, err := Parse(&buf)

	// THEN the records are unchanged
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestWrite_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []sim.ProcessSpec{
		{Name: "a", ArrivalTime: 3, History: []sim.Instruction{{Kind: sim.Compute, Duration: 2}, {Kind: sim.InputIO, Duration: 4}}},
	}))
	assert.Equal(t, "a 3\nC 2 I 4 N 0\nSTOPHERE  0\n", buf.String())
}

func TestLoad_TextAndYAML(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "w.txt")
	require.NoError(t, os.WriteFile(txt, []byte("a 1\nC 2 N 0\nSTOPHERE  0\n"), 0o644))
	yml := filepath.Join(dir, "w.yaml")
	require.NoError(t, os.WriteFile(yml, []byte(`processes:
  - name: a
    arrival: 1
    bursts:
      - {kind: C, duration: 2}
`), 0o644))

	fromText, err := Load(txt)
	require.NoError(t, err)
	fromYAML, err := Load(yml)
	require.NoError(t, err)

	assert.Equal(t, fromText, fromYAML)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLoad_ErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("a 0\nC 1 Q 1 N 0\n"), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt")
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}
