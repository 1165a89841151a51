package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cpusched/cpusched/sim"
	"github.com/cpusched/cpusched/sim/trace"
	"github.com/cpusched/cpusched/sim/workload"
)

// exitHorizonExceeded is the process exit status for a run abandoned at max time.
const exitHorizonExceeded = 2

var (
	capacity    int    // Max resident processes
	maxTime     int64  // Safety ceiling on the tick counter
	reportEvery int64  // Ticks between status reports
	admission   string // Admission policy name
	firstID     int    // Id of the first loaded process
	configPath  string // Optional YAML config bundle
	logLevel    string // Log verbosity level
	traceLevel  string // Decision trace verbosity
	resultsPath string // Optional JSON results file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cpusched <workload-file>",
	Short: "Tick-driven CPU scheduling simulator",
	Long: "Simulates one compute device and two I/O devices serving a workload of processes " +
		"through FIFO entry, ready, input and output queues under a residency cap.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		err = runSimulation(cmd.OutOrStdout(), args[0], cfg, resultsPath)
		if errors.Is(err, sim.ErrHorizonExceeded) {
			os.Exit(exitHorizonExceeded)
		}
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// resolveConfig layers the defaults, the --config bundle and any flags set
// on the command line, in that order.
func resolveConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		bundle, err := sim.LoadBundle(configPath)
		if err != nil {
			return cfg, err
		}
		if err := bundle.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", configPath, err)
		}
		bundle.Apply(&cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("capacity") {
		cfg.Capacity = capacity
	}
	if flags.Changed("max-time") {
		cfg.MaxTime = maxTime
	}
	if flags.Changed("report-every") {
		cfg.ReportInterval = reportEvery
	}
	if flags.Changed("admission") {
		cfg.AdmissionPolicy = admission
	}
	if flags.Changed("first-id") {
		cfg.FirstProcessID = firstID
	}
	if flags.Changed("trace-level") {
		cfg.TraceLevel = trace.TraceLevel(traceLevel)
	}
	return cfg, cfg.Validate()
}

// runSimulation loads the workload, runs it and writes the report to out.
// The returned error is sim.ErrHorizonExceeded after a safety stop; the
// summary has been printed by then.
func runSimulation(out io.Writer, workloadPath string, cfg sim.Config, resultsPath string) error {
	specs, err := workload.Load(workloadPath)
	if err != nil {
		return err
	}

	reporter := newConsoleReporter(out)
	s, err := sim.NewSimulator(cfg, specs, sim.WithObserver(reporter))
	if err != nil {
		return err
	}

	fmt.Fprint(out, "Simulation of CPU Scheduling\n\n")
	res, runErr := s.Run()
	if runErr != nil && !errors.Is(runErr, sim.ErrHorizonExceeded) {
		return runErr
	}
	reporter.Summary(res, s.Snapshot())

	if s.Trace != nil {
		ts := trace.Summarize(s.Trace)
		logrus.Infof("Trace: %d admitted, %d stalls, %d terminations, dispatches=%v requeues=%v",
			ts.AdmittedCount, ts.StalledCount, ts.Terminations, ts.DispatchesByDevice, ts.Requeues)
	}
	if resultsPath != "" {
		if err := res.SaveResults(resultsPath); err != nil {
			return err
		}
		logrus.Infof("Results written to %s", resultsPath)
	}
	return runErr
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.Flags().IntVar(&capacity, "capacity", sim.DefaultCapacity, "Maximum number of resident processes")
	rootCmd.Flags().Int64Var(&maxTime, "max-time", sim.DefaultMaxTime, "Abandon the run once the clock passes this tick")
	rootCmd.Flags().Int64Var(&reportEvery, "report-every", sim.DefaultReportInterval, "Ticks between status reports (0 disables)")
	rootCmd.Flags().StringVar(&admission, "admission", "arrival", "Admission policy (arrival, always-admit)")
	rootCmd.Flags().IntVar(&firstID, "first-id", sim.DefaultFirstProcessID, "Id assigned to the first process in the workload")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file; flags given on the command line override it")
	rootCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, events, ticks)")
	rootCmd.Flags().StringVar(&resultsPath, "results", "", "Write a JSON results file to this path")
}
