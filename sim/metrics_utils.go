// sim/metrics_utils.go
package sim

import (
	"sort"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Number is any integer or float sample type.
type Number interface {
	constraints.Integer | constraints.Float
}

// toFloat64s converts samples for use with gonum.
func toFloat64s[T Number](data []T) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}

// Distribution summarizes a sample list: mean, sample stddev,
// empirical p50/p90 and max. Returns the zero value for an empty list.
func Distribution[T Number](data []T) WaitStats {
	if len(data) == 0 {
		return WaitStats{}
	}
	xs := toFloat64s(data)
	sort.Float64s(xs)

	ws := WaitStats{
		Count: len(xs),
		Mean:  stat.Mean(xs, nil),
		P50:   stat.Quantile(0.5, stat.Empirical, xs, nil),
		P90:   stat.Quantile(0.9, stat.Empirical, xs, nil),
		Max:   floats.Max(xs),
	}
	if len(xs) > 1 {
		ws.StdDev = stat.StdDev(xs, nil)
	}
	return ws
}
