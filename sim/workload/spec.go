package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cpusched/cpusched/sim"
)

// WorkloadSpec is the YAML form of a workload.
// Loaded from YAML via LoadSpec(path).
type WorkloadSpec struct {
	Processes []ProcessEntry `yaml:"processes"`
}

// ProcessEntry is one process in a WorkloadSpec.
type ProcessEntry struct {
	Name    string       `yaml:"name"`
	Arrival int64        `yaml:"arrival"`
	Bursts  []BurstEntry `yaml:"bursts"`
}

// BurstEntry is one instruction: kind is C, I or O.
type BurstEntry struct {
	Kind     string `yaml:"kind"`
	Duration int64  `yaml:"duration"`
}

// LoadSpec reads and parses a YAML workload file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	return ParseSpec(data)
}

// ParseSpec decodes a YAML workload document.
func ParseSpec(data []byte) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// ProcessSpecs converts the workload to engine records, validating each entry.
func (s *WorkloadSpec) ProcessSpecs() ([]sim.ProcessSpec, error) {
	out := make([]sim.ProcessSpec, 0, len(s.Processes))
	for i, p := range s.Processes {
		prefix := fmt.Sprintf("processes[%d]", i)
		if p.Name == "" {
			return nil, fmt.Errorf("%s: name is required", prefix)
		}
		ps := sim.ProcessSpec{Name: p.Name, ArrivalTime: p.Arrival}
		for j, b := range p.Bursts {
			kind, err := sim.ParseKind(b.Kind)
			if err != nil {
				return nil, fmt.Errorf("%s.bursts[%d]: %w", prefix, j, err)
			}
			ps.History = append(ps.History, sim.Instruction{Kind: kind, Duration: b.Duration})
		}
		if err := ps.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", prefix, err)
		}
		out = append(out, ps)
	}
	return out, nil
}

// FromProcessSpecs builds the YAML form of an engine workload.
func FromProcessSpecs(specs []sim.ProcessSpec) *WorkloadSpec {
	ws := &WorkloadSpec{Processes: make([]ProcessEntry, 0, len(specs))}
	for _, ps := range specs {
		entry := ProcessEntry{Name: ps.Name, Arrival: ps.ArrivalTime}
		for _, in := range ps.History {
			entry.Bursts = append(entry.Bursts, BurstEntry{Kind: string(rune(in.Kind)), Duration: in.Duration})
		}
		ws.Processes = append(ws.Processes, entry)
	}
	return ws
}

// Marshal encodes the workload as YAML.
func (s *WorkloadSpec) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding workload spec: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding workload spec: %w", err)
	}
	return buf.Bytes(), nil
}
