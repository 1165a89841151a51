package workload

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/cpusched/cpusched/sim"
)

// GeneratorConfig parameterizes synthetic workload generation.
// Two runs with the same config, seed included, produce identical workloads.
type GeneratorConfig struct {
	Seed        int64
	Count       int   // number of processes (must be > 0)
	MaxArrival  int64 // arrivals drawn uniformly from [0, MaxArrival]
	MinBursts   int   // compute bursts per process, inclusive range
	MaxBursts   int
	MinDuration int64 // burst duration, inclusive range (must be > 0)
	MaxDuration int64
	// IOFraction is the probability that the gap between two compute bursts
	// is an input burst rather than an output burst.
	IOFraction float64
}

// DefaultGeneratorConfig returns a small mixed workload.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:        42,
		Count:       10,
		MaxArrival:  50,
		MinBursts:   1,
		MaxBursts:   4,
		MinDuration: 1,
		MaxDuration: 10,
		IOFraction:  0.5,
	}
}

// Validate checks parameter ranges.
func (c GeneratorConfig) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", c.Count)
	}
	if c.MaxArrival < 0 {
		return fmt.Errorf("max arrival must be non-negative, got %d", c.MaxArrival)
	}
	if c.MinBursts <= 0 || c.MaxBursts < c.MinBursts {
		return fmt.Errorf("burst range [%d, %d] is invalid", c.MinBursts, c.MaxBursts)
	}
	if c.MinDuration <= 0 || c.MaxDuration < c.MinDuration {
		return fmt.Errorf("duration range [%d, %d] is invalid", c.MinDuration, c.MaxDuration)
	}
	if c.IOFraction < 0 || c.IOFraction > 1 {
		return fmt.Errorf("io fraction must be in [0, 1], got %f", c.IOFraction)
	}
	return nil
}

// Generate synthesizes a workload. Every history starts and ends with a
// compute burst and alternates compute with I/O. Processes are returned in
// non-decreasing arrival order so that admission never stalls behind a later
// arrival.
func Generate(cfg GeneratorConfig) ([]sim.ProcessSpec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	rngs := newPartitionedRNG(cfg.Seed)
	arrivalRNG := rngs.stream(streamArrival)
	shapeRNG := rngs.stream(streamShape)
	durationRNG := rngs.stream(streamDuration)

	arrivals := make([]int64, cfg.Count)
	for i := range arrivals {
		arrivals[i] = arrivalRNG.Int63n(cfg.MaxArrival + 1)
	}
	slices.Sort(arrivals)

	specs := make([]sim.ProcessSpec, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		bursts := cfg.MinBursts + shapeRNG.Intn(cfg.MaxBursts-cfg.MinBursts+1)
		history := make([]sim.Instruction, 0, 2*bursts-1)
		for b := 0; b < bursts; b++ {
			if b > 0 {
				kind := sim.OutputIO
				if shapeRNG.Float64() < cfg.IOFraction {
					kind = sim.InputIO
				}
				history = append(history, sim.Instruction{Kind: kind, Duration: drawDuration(durationRNG, cfg)})
			}
			history = append(history, sim.Instruction{Kind: sim.Compute, Duration: drawDuration(durationRNG, cfg)})
		}
		specs = append(specs, sim.ProcessSpec{
			Name:        fmt.Sprintf("P%03d", i+1),
			ArrivalTime: arrivals[i],
			History:     history,
		})
	}
	return specs, nil
}

func drawDuration(rng *rand.Rand, cfg GeneratorConfig) int64 {
	return cfg.MinDuration + rng.Int63n(cfg.MaxDuration-cfg.MinDuration+1)
}
