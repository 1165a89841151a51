package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cpusched/cpusched/sim/trace"
)

// Bundle holds simulator configuration loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and do not override Config.
// String fields use empty string for "not set".
type Bundle struct {
	Capacity       *int   `yaml:"capacity"`
	MaxTime        *int64 `yaml:"max_time"`
	ReportInterval *int64 `yaml:"report_every"`
	FirstProcessID *int   `yaml:"first_id"`
	Admission      string `yaml:"admission"`
	TraceLevel     string `yaml:"trace_level"`
}

// LoadBundle reads and parses a YAML configuration file.
// Unknown keys are an error so typos do not silently fall back to defaults.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var bundle Bundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &bundle, nil
}

// ValidAdmissionPolicies is the set of recognized admission policy names.
// Shared by Validate() and NewAdmissionPolicy() to avoid duplication.
var ValidAdmissionPolicies = map[string]bool{"": true, "arrival": true, "always-admit": true}

// IsValidAdmissionPolicy returns true if name is a recognized admission policy.
func IsValidAdmissionPolicy(name string) bool {
	return ValidAdmissionPolicies[name]
}

// Validate checks that policy names and parameter ranges in the bundle are valid.
func (b *Bundle) Validate() error {
	if !IsValidAdmissionPolicy(b.Admission) {
		return fmt.Errorf("unknown admission policy %q", b.Admission)
	}
	if !trace.IsValidTraceLevel(b.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", b.TraceLevel)
	}
	if b.Capacity != nil && *b.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", *b.Capacity)
	}
	if b.MaxTime != nil && *b.MaxTime < 0 {
		return fmt.Errorf("max_time must be non-negative, got %d", *b.MaxTime)
	}
	if b.ReportInterval != nil && *b.ReportInterval < 0 {
		return fmt.Errorf("report_every must be non-negative, got %d", *b.ReportInterval)
	}
	if b.FirstProcessID != nil && *b.FirstProcessID <= 0 {
		return fmt.Errorf("first_id must be positive, got %d", *b.FirstProcessID)
	}
	return nil
}

// Apply overwrites the fields of cfg that are set in the bundle.
func (b *Bundle) Apply(cfg *Config) {
	if b.Capacity != nil {
		cfg.Capacity = *b.Capacity
	}
	if b.MaxTime != nil {
		cfg.MaxTime = *b.MaxTime
	}
	if b.ReportInterval != nil {
		cfg.ReportInterval = *b.ReportInterval
	}
	if b.FirstProcessID != nil {
		cfg.FirstProcessID = *b.FirstProcessID
	}
	if b.Admission != "" {
		cfg.AdmissionPolicy = b.Admission
	}
	if b.TraceLevel != "" {
		cfg.TraceLevel = trace.TraceLevel(b.TraceLevel)
	}
}
