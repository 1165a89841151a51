package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	AdmittedCount      int
	StalledCount       int            // admission calls that stopped at an ineligible head
	DispatchesByDevice map[string]int // device name → number of slot loads
	Terminations       int
	Requeues           map[string]int // destination queue → number of transitions into it
	PeakResident       int            // from tick records; 0 when ticks were not traced
	TickCount          int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchesByDevice: make(map[string]int),
		Requeues:           make(map[string]int),
	}
	if st == nil {
		return summary
	}

	for _, a := range st.Admissions {
		if a.Admitted {
			summary.AdmittedCount++
		} else {
			summary.StalledCount++
		}
	}
	for _, d := range st.Dispatches {
		summary.DispatchesByDevice[d.Device]++
	}
	for _, tr := range st.Transitions {
		if tr.To == "terminated" {
			summary.Terminations++
			continue
		}
		summary.Requeues[tr.To]++
	}
	summary.TickCount = len(st.Ticks)
	for _, tk := range st.Ticks {
		summary.PeakResident = max(summary.PeakResident, tk.Resident())
	}
	return summary
}
