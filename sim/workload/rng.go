package workload

import (
	"hash/fnv"
	"math/rand"
)

// RNG streams used by Generate. Each draws from its own source so that
// changing, say, the burst count range does not shift every arrival time.
const (
	streamArrival  = "arrival"
	streamShape    = "shape"
	streamDuration = "duration"
)

// partitionedRNG hands out one deterministically seeded *rand.Rand per named
// stream, derived as seed XOR fnv1a64(name). Not safe for concurrent use.
type partitionedRNG struct {
	seed    int64
	streams map[string]*rand.Rand
}

func newPartitionedRNG(seed int64) *partitionedRNG {
	return &partitionedRNG{seed: seed, streams: make(map[string]*rand.Rand)}
}

// stream returns the cached RNG for name, creating it on first use.
func (p *partitionedRNG) stream(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.seed ^ fnv1a64(name)))
	p.streams[name] = rng
	return rng
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
