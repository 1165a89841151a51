package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpusched/cpusched/sim/trace"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp yaml: %v", err)
	}
	return path
}

func TestLoadBundle_ValidYAML(t *testing.T) {
	path := writeTempYAML(t, `
capacity: 3
max_time: 1000
report_every: 10
first_id: 1
admission: always-admit
trace_level: events
`)
	bundle, err := LoadBundle(path)
	require.NoError(t, err)
	require.NoError(t, bundle.Validate())

	cfg := DefaultConfig()
	bundle.Apply(&cfg)

	assert.Equal(t, 3, cfg.Capacity)
	assert.Equal(t, int64(1000), cfg.MaxTime)
	assert.Equal(t, int64(10), cfg.ReportInterval)
	assert.Equal(t, 1, cfg.FirstProcessID)
	assert.Equal(t, "always-admit", cfg.AdmissionPolicy)
	assert.Equal(t, trace.TraceLevelEvents, cfg.TraceLevel)
}

// TestLoadBundle_ZeroValueIsDistinctFromUnset verifies that an explicit zero
// overrides the default while an absent key does not.
func TestLoadBundle_ZeroValueIsDistinctFromUnset(t *testing.T) {
	path := writeTempYAML(t, "report_every: 0\n")
	bundle, err := LoadBundle(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	bundle.Apply(&cfg)

	assert.Equal(t, int64(0), cfg.ReportInterval)
	assert.Equal(t, DefaultCapacity, cfg.Capacity)
	assert.Equal(t, int64(DefaultMaxTime), cfg.MaxTime)
	assert.Equal(t, "arrival", cfg.AdmissionPolicy)
}

func TestLoadBundle_UnknownKeyRejected(t *testing.T) {
	path := writeTempYAML(t, "capacty: 3\n")
	_, err := LoadBundle(path)
	assert.Error(t, err)
}

func TestLoadBundle_NonexistentFile(t *testing.T) {
	_, err := LoadBundle(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadBundle_MalformedYAML(t *testing.T) {
	path := writeTempYAML(t, "capacity: [unclosed\n")
	_, err := LoadBundle(path)
	assert.Error(t, err)
}

func TestBundle_Validate_Invalid(t *testing.T) {
	neg := -1
	negTime := int64(-1)
	tests := []struct {
		name   string
		bundle Bundle
	}{
		{"unknown admission", Bundle{Admission: "lottery"}},
		{"unknown trace level", Bundle{TraceLevel: "all"}},
		{"negative capacity", Bundle{Capacity: &neg}},
		{"negative max time", Bundle{MaxTime: &negTime}},
		{"negative report interval", Bundle{ReportInterval: &negTime}},
		{"negative first id", Bundle{FirstProcessID: &neg}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.bundle.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestBundle_Validate_EmptyIsValid(t *testing.T) {
	b := Bundle{}
	assert.NoError(t, b.Validate())
}
