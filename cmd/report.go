package cmd

import (
	"fmt"
	"io"

	"github.com/cpusched/cpusched/sim"
)

// consoleReporter prints the run log: periodic status, admissions, idle
// edges, per-process termination blocks and the final summary.
type consoleReporter struct {
	out io.Writer
}

func newConsoleReporter(out io.Writer) *consoleReporter {
	return &consoleReporter{out: out}
}

func (r *consoleReporter) Status(snap sim.Snapshot) {
	fmt.Fprintf(r.out, "Status at time %d\n", snap.Clock)
	fmt.Fprintf(r.out, "Active is %d\n", snap.Compute)
	fmt.Fprintf(r.out, "IActive is %d\n", snap.InputIO)
	fmt.Fprintf(r.out, "OActive is %d\n", snap.OutputIO)
	r.dumpQueues(snap)
}

func (r *consoleReporter) Admitted(p *sim.Process, clock int64) {
	fmt.Fprintf(r.out, "Process %d has moved from the Entry Queue into the Ready Queue at time %d\n\n", p.ID, clock)
}

func (r *consoleReporter) Idle(clock int64) {
	fmt.Fprintf(r.out, "At time %d Active is 0, so we idle for a while\n\n", clock)
}

func (r *consoleReporter) Terminated(p *sim.Process) {
	c, i, o := p.Stats(sim.Compute), p.Stats(sim.InputIO), p.Stats(sim.OutputIO)
	fmt.Fprintf(r.out, "Process %d has ended.\n", p.ID)
	fmt.Fprintf(r.out, "Name              %s\n", p.Name)
	fmt.Fprintf(r.out, "Started at time   %d and ended at time %d\n", p.StartTime, p.EndTime)
	fmt.Fprintf(r.out, "Total CPU time    %d in %d bursts\n", c.Total, c.Bursts)
	fmt.Fprintf(r.out, "Total Input Time  %d in %d bursts\n", i.Total, i.Bursts)
	fmt.Fprintf(r.out, "Total Output Time %d in %d bursts\n", o.Total, o.Bursts)
	fmt.Fprintf(r.out, "Time waiting      %d\n\n", p.WaitTime)
}

// Summary prints the end-of-run report followed by the queue contents.
func (r *consoleReporter) Summary(res *sim.Result, snap sim.Snapshot) {
	if res.Completed {
		fmt.Fprintln(r.out, "The run has ended.")
	} else {
		fmt.Fprintln(r.out, "The run was abandoned before every process terminated.")
	}
	fmt.Fprintf(r.out, "The final value of the timer was: %d\n", res.FinalTick)
	fmt.Fprintf(r.out, "The amount of time spent idle was: %d\n", res.IdleTicks)
	fmt.Fprintf(r.out, "Number of terminated processes: %d\n", res.Terminated)
	if res.AverageWait != nil {
		fmt.Fprintf(r.out, "The average waiting time for all terminated processes was: %.2f\n", *res.AverageWait)
	} else {
		fmt.Fprintln(r.out, "The average waiting time for all terminated processes was: n/a")
	}
	r.dumpQueues(snap)
}

func (r *consoleReporter) dumpQueues(snap sim.Snapshot) {
	r.dumpQueue("Entry", snap.Entry)
	r.dumpQueue("Ready", snap.Ready)
	r.dumpQueue("Input", snap.Input)
	r.dumpQueue("Output", snap.Output)
	fmt.Fprintln(r.out)
}

func (r *consoleReporter) dumpQueue(name string, ids []int) {
	fmt.Fprintf(r.out, "%s Queue Contents: ", name)
	if len(ids) == 0 {
		fmt.Fprint(r.out, "(Empty)")
	}
	for _, id := range ids {
		fmt.Fprintf(r.out, "%d ", id)
	}
	fmt.Fprintln(r.out)
}
