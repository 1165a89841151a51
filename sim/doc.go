// Package sim provides the tick-driven scheduling engine for cpusched.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process record, instruction kinds, per-device counters
//   - device.go: the three device dispatchers (Compute, InputIO, OutputIO)
//   - transition.go: what happens to a process when a burst completes
//   - simulator.go: the tick loop, residency accounting and termination check
//
// # Model
//
// A fixed population of processes moves through four FIFO queues (entry,
// ready, input-wait, output-wait) and three single-capacity device slots.
// Queues and slots hold process ids; every Process record lives exactly once
// in the Simulator's process table.
//
// Each tick the Compute, InputIO and OutputIO dispatchers run in that fixed
// order. A process whose burst completes on one device is marked as serviced
// for the rest of the tick, so it can never progress on two devices within the
// same simulated time unit.
//
// # Key Interfaces
//   - AdmissionPolicy: decides whether the head of the entry queue may enter
//   - Observer: receives status snapshots, admissions, idle edges, terminations
//
// Decision traces are recorded by sim/trace; workload files are parsed by
// sim/workload.
package sim
