package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"C", Compute, false},
		{"I", InputIO, false},
		{"O", OutputIO, false},
		{"c", 0, true},
		{"X", 0, true},
		{"CI", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "ParseKind(%q)", tc.in)
			continue
		}
		assert.NoError(t, err, "ParseKind(%q)", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestProcessSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ProcessSpec
		wantErr string
	}{
		{"valid", proc("a", 0, Compute, 2, InputIO, 1, Compute, 1), ""},
		{"empty history", ProcessSpec{Name: "a"}, "history is empty"},
		{"negative arrival", proc("a", -1, Compute, 1), "arrival time must be non-negative"},
		{"zero duration", proc("a", 0, Compute, 0), "duration must be positive"},
		{"starts with io", proc("a", 0, InputIO, 2, Compute, 1), "must begin with a compute burst"},
		{"unknown kind", ProcessSpec{Name: "a", History: []Instruction{{Kind: 'C', Duration: 1}, {Kind: 'X', Duration: 1}}}, "unknown kind"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestProcess_CursorHelpers(t *testing.T) {
	p := newProcess(101, proc("a", 0, Compute, 2, OutputIO, 4))

	assert.Equal(t, StateEntry, p.State)
	assert.Equal(t, Instruction{Kind: Compute, Duration: 2}, p.Current())
	assert.False(t, p.AtLastInstruction())

	p.Cursor++
	assert.Equal(t, Instruction{Kind: OutputIO, Duration: 4}, p.Current())
	assert.True(t, p.AtLastInstruction())
}

func TestNewProcess_CopiesHistory(t *testing.T) {
	spec := proc("a", 0, Compute, 2)
	p := newProcess(101, spec)

	spec.History[0].Duration = 99

	assert.Equal(t, int64(2), p.History[0].Duration, "process must not alias the ProcessSpec history")
}

func TestProcess_ServiceTimeSumsDevices(t *testing.T) {
	p := newProcess(101, proc("a", 0, Compute, 1))
	p.stats(Compute).Total = 3
	p.stats(InputIO).Total = 4
	p.stats(OutputIO).Total = 5

	assert.Equal(t, int64(12), p.ServiceTime())
	assert.Nil(t, p.stats(Kind('X')))
	assert.Equal(t, DeviceStats{}, p.Stats(Kind('X')))
}

func TestProcess_Describe(t *testing.T) {
	p := newProcess(101, proc("editor", 3, Compute, 2, InputIO, 1))
	out := p.Describe()

	assert.True(t, strings.Contains(out, "Name:          editor"))
	assert.True(t, strings.Contains(out, "(C, 2) (I, 1)"))
	assert.Contains(t, p.String(), "ID: 101")
}
