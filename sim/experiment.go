// Runs independent experiments over one initial WorkerSet and collects their scores.

package sim

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultShortRounds and DefaultShortDivisor define the short FloorDivide run (Score A).
	DefaultShortRounds  = 20
	DefaultShortDivisor = 3
	// DefaultLongRounds defines the long ModuloNormalize run (Score B).
	DefaultLongRounds = 10000
)

// RunSpec names one run: how many rounds and which suppression policy.
type RunSpec struct {
	Name       string
	Rounds     int
	Suppressor SuppressorConfig
}

// DefaultRuns returns the short FloorDivide(3) run and the long
// ModuloNormalize run, in that order.
func DefaultRuns() []RunSpec {
	return []RunSpec{
		{Name: "short", Rounds: DefaultShortRounds, Suppressor: SuppressorConfig{Kind: SuppressFloor, Divisor: DefaultShortDivisor}},
		{Name: "long", Rounds: DefaultLongRounds, Suppressor: SuppressorConfig{Kind: SuppressModulo}},
	}
}

// RunResult is the outcome of one RunSpec.
type RunResult struct {
	Name       string   `json:"name"`
	Rounds     int      `json:"rounds"`
	Suppressor string   `json:"suppressor"`
	Score      int64    `json:"score"`
	Metrics    *Metrics `json:"metrics"`
}

// Report collects the results of every run, in RunSpec order.
type Report struct {
	Workers       int         `json:"workers"`
	GlobalModulus int64       `json:"global_modulus"`
	SelfRoute     string      `json:"self_route"`
	Runs          []RunResult `json:"runs"`
}

// Experiment runs each RunSpec on its own clone of ws; ws itself is never mutated.
// Every RunSpec is validated before the first round of any run executes.
func Experiment(ws *WorkerSet, specs []RunSpec, policy SelfRoutePolicy) (*Report, error) {
	if policy == "" {
		policy = SelfRouteImmediate
	}
	cerr := &ConfigError{}
	if !IsValidSelfRoutePolicy(string(policy)) {
		cerr.add(-1, "self_route", "unknown policy %q; valid: immediate, deferred", policy)
	} else {
		cerr.merge(ws.CheckSelfRoute(policy))
	}
	modulus, err := ws.GlobalModulus()
	cerr.merge(err)
	if len(specs) == 0 {
		cerr.add(-1, "runs", "at least one run is required")
	}
	suppressors := make([]WorrySuppressor, len(specs))
	for i, spec := range specs {
		if spec.Rounds < 0 {
			cerr.add(-1, fmt.Sprintf("runs[%d].rounds", i), "must be non-negative, got %d", spec.Rounds)
		}
		s, err := spec.Suppressor.Build(ws)
		if err != nil {
			cerr.add(-1, fmt.Sprintf("runs[%d].suppressor", i), "%v", err)
			continue
		}
		suppressors[i] = s
	}
	if err := cerr.errOrNil(); err != nil {
		return nil, err
	}

	report := &Report{Workers: ws.Len(), GlobalModulus: modulus, SelfRoute: string(policy)}
	for i, spec := range specs {
		sim := NewSimulator(spec.Name, ws.Clone(), suppressors[i], policy)
		if err := sim.Run(spec.Rounds); err != nil {
			return nil, err
		}
		report.Runs = append(report.Runs, RunResult{
			Name:       spec.Name,
			Rounds:     sim.Round,
			Suppressor: sim.Suppressor.Name(),
			Score:      sim.Score(),
			Metrics:    sim.Metrics,
		})
	}
	logrus.Infof("experiment complete: %d run(s) over %d workers", len(report.Runs), report.Workers)
	return report, nil
}

// Print writes a human-readable summary.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Keep Away Results ===")
	fmt.Fprintf(w, "Workers              : %d\n", r.Workers)
	fmt.Fprintf(w, "Global Modulus       : %d\n", r.GlobalModulus)
	fmt.Fprintf(w, "Self-route Policy    : %s\n", r.SelfRoute)
	for _, run := range r.Runs {
		fmt.Fprintf(w, "--- %s (%d rounds, %s) ---\n", run.Name, run.Rounds, run.Suppressor)
		fmt.Fprintf(w, "Score                : %d\n", run.Score)
		fmt.Fprintf(w, "Inspections          : %v\n", run.Metrics.Inspections)
		fmt.Fprintf(w, "Items Moved          : %d\n", run.Metrics.ItemsMoved)
		fmt.Fprintf(w, "Peak Worry           : %d\n", run.Metrics.PeakWorry)
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
