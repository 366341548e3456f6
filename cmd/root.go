package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/keepaway/sim"
	"github.com/inference-sim/keepaway/sim/notes"
)

var (
	inputPath    string // Path or URL of the worker definitions
	inputFormat  string // auto, yaml or notes
	logLevel     string // Log verbosity level
	selfRoute    string // immediate or deferred
	shortRounds  int    // Rounds of the FloorDivide run
	shortDivisor int64  // Divisor of the FloorDivide run
	longRounds   int    // Rounds of the ModuloNormalize run
	outputFormat string // json or text
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "keepaway",
	Short: "Round-based simulation of workers passing worry levels around",
}

// runCmd executes the default experiment (or the runs declared in a YAML input)
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation and print both scores",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if err := runExperiment(cmd.Context(), os.Stdout, cmd.Flags().Changed("self-route")); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// checkCmd validates the input without running any rounds
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate worker definitions and print a summary",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if err := checkInput(cmd.Context(), os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadWorkerSet reads and validates the input named by the flags.
func loadWorkerSet(ctx context.Context) (*notes.Input, *sim.WorkerSet, error) {
	if inputPath == "" {
		return nil, nil, fmt.Errorf("--input is required")
	}
	if !notes.IsValidFormat(inputFormat) {
		return nil, nil, fmt.Errorf("unknown --format %q; valid: auto, yaml, notes", inputFormat)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	in, err := notes.NewLoader().Load(ctx, inputPath, notes.Format(inputFormat))
	if err != nil {
		return nil, nil, err
	}
	ws, err := sim.NewWorkerSet(in.Workers)
	if err != nil {
		return nil, nil, err
	}
	return in, ws, nil
}

// runExperiment runs the configured experiment and writes the report to w.
// The --self-route flag wins over the input's self_route only when set explicitly.
func runExperiment(ctx context.Context, w io.Writer, selfRouteFlagSet bool) error {
	in, ws, err := loadWorkerSet(ctx)
	if err != nil {
		return err
	}

	runs := in.Runs
	if len(runs) == 0 {
		runs = sim.DefaultRuns()
		runs[0].Rounds = shortRounds
		runs[0].Suppressor.Divisor = shortDivisor
		runs[1].Rounds = longRounds
	}
	policy := sim.SelfRoutePolicy(selfRoute)
	if in.SelfRoute != "" && !selfRouteFlagSet {
		policy = in.SelfRoute
	}

	logrus.Infof("Starting %d run(s) over %d workers, self-route=%s", len(runs), ws.Len(), policy)
	startTime := time.Now()
	report, err := sim.Experiment(ws, runs, policy)
	if err != nil {
		return err
	}
	logrus.Infof("Simulation complete in %s", time.Since(startTime))

	switch outputFormat {
	case "text":
		report.Print(w)
		return nil
	case "json":
		return report.WriteJSON(w)
	default:
		return fmt.Errorf("unknown --output %q; valid: json, text", outputFormat)
	}
}

// checkInput validates the input and prints one line per worker.
func checkInput(ctx context.Context, w io.Writer) error {
	_, ws, err := loadWorkerSet(ctx)
	if err != nil {
		return err
	}
	m, err := ws.GlobalModulus()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "workers: %d\nglobal modulus: %d\n", ws.Len(), m)
	for i := 0; i < ws.Len(); i++ {
		wk := ws.Worker(i)
		fmt.Fprintf(w, "  %d: items=%s new = %s, %s\n", i, wk.Queue.String(), wk.Operation, wk.Test)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, checkCmd} {
		c.Flags().StringVar(&inputPath, "input", "", "Path or URL of the worker definitions")
		c.Flags().StringVar(&inputFormat, "format", "auto", "Input format (auto, yaml, notes)")
		c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	}

	runCmd.Flags().StringVar(&selfRoute, "self-route", string(sim.SelfRouteImmediate), "When items thrown to the draining worker are re-inspected (immediate, deferred)")
	runCmd.Flags().IntVar(&shortRounds, "short-rounds", sim.DefaultShortRounds, "Rounds of the floor-divide run")
	runCmd.Flags().Int64Var(&shortDivisor, "short-divisor", sim.DefaultShortDivisor, "Divisor of the floor-divide run")
	runCmd.Flags().IntVar(&longRounds, "long-rounds", sim.DefaultLongRounds, "Rounds of the modulo-normalize run")
	runCmd.Flags().StringVar(&outputFormat, "output", "json", "Report format (json, text)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
}
