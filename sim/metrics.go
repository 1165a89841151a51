// Tracks simulation-wide scheduling statistics such as idle time,
// terminations and the wait time of terminated processes.

package sim

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	IdleTicks    int64 // ticks in which the Compute slot stayed empty
	Terminated   int   // number of processes that finished their history
	TotalWait    int64 // sum of WaitTime over terminated processes
	PeakResident int   // max resident count observed at the end of any tick

	WaitTimes   []int64 // per terminated process, in termination order
	Turnarounds []int64 // EndTime - StartTime, in termination order
	Bursts      map[Kind]int
	ServiceTime map[Kind]int64
}

// NewMetrics returns an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		WaitTimes:   make([]int64, 0),
		Turnarounds: make([]int64, 0),
		Bursts:      make(map[Kind]int),
		ServiceTime: make(map[Kind]int64),
	}
}

func (m *Metrics) recordTermination(p *Process) {
	m.Terminated++
	m.TotalWait += p.WaitTime
	m.WaitTimes = append(m.WaitTimes, p.WaitTime)
	m.Turnarounds = append(m.Turnarounds, p.EndTime-p.StartTime)
	for _, k := range Kinds {
		s := p.Stats(k)
		m.Bursts[k] += s.Bursts
		m.ServiceTime[k] += s.Total
	}
}

// AverageWait returns TotalWait / Terminated. ok is false when nothing has
// terminated, in which case the average is not applicable.
func (m *Metrics) AverageWait() (avg float64, ok bool) {
	if m.Terminated == 0 {
		return 0, false
	}
	return float64(m.TotalWait) / float64(m.Terminated), true
}

// WaitStats summarizes the wait-time distribution of terminated processes.
type WaitStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
}

// WaitDistribution computes WaitStats over WaitTimes. Zero-valued when empty.
func (m *Metrics) WaitDistribution() WaitStats {
	return Distribution(m.WaitTimes)
}

// TurnaroundDistribution computes the same statistics over Turnarounds.
func (m *Metrics) TurnaroundDistribution() WaitStats {
	return Distribution(m.Turnarounds)
}
