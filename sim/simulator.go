// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Simulator drives rounds over a WorkerSet. It holds exclusive access to the
// set for the duration of a run; nothing else may mutate it concurrently.
type Simulator struct {
	ID         string // unique per simulator, used to correlate log lines
	Name       string
	Workers    *WorkerSet
	Suppressor WorrySuppressor
	SelfRoute  SelfRoutePolicy
	// Round is the number of completed rounds.
	Round   int
	Metrics *Metrics
}

// NewSimulator takes ownership of ws. Callers running several independent
// experiments over the same configuration must pass a Clone to each.
// Panics if ws fails CheckSelfRoute for policy; Experiment reports that as
// a *ConfigError instead.
func NewSimulator(name string, ws *WorkerSet, s WorrySuppressor, policy SelfRoutePolicy) *Simulator {
	if ws == nil {
		panic("NewSimulator: ws must not be nil")
	}
	if s == nil {
		panic("NewSimulator: suppressor must not be nil")
	}
	if policy == "" {
		policy = SelfRouteImmediate
	}
	if !IsValidSelfRoutePolicy(string(policy)) {
		panic(fmt.Sprintf("NewSimulator: unknown self-route policy %q", policy))
	}
	if err := ws.CheckSelfRoute(policy); err != nil {
		panic(fmt.Sprintf("NewSimulator: %v", err))
	}
	return &Simulator{
		ID:         uuid.NewString(),
		Name:       name,
		Workers:    ws,
		Suppressor: s,
		SelfRoute:  policy,
		Metrics:    NewMetrics(ws.Len()),
	}
}

// RunRound drains every worker in ascending index order. Deliveries land in
// the target queue immediately: items thrown to a higher index are inspected
// later in this round, items thrown to a lower index wait for the next one.
func (sim *Simulator) RunRound() error {
	round := sim.Round + 1
	for i := 0; i < sim.Workers.Len(); i++ {
		w := sim.Workers.Worker(i)
		emit := sim.emitter(i)
		var (
			n   int
			err error
		)
		if sim.SelfRoute == SelfRouteDeferred {
			n, err = w.DrainSnapshot(sim.Suppressor, emit)
		} else {
			n, err = w.Drain(sim.Suppressor, emit)
		}
		sim.Metrics.Inspections[i] += int64(n)
		if err != nil {
			return &InvariantError{Run: sim.Name, Round: round, Worker: i, Err: err}
		}
	}
	sim.Round = round
	sim.Metrics.RoundsCompleted = round
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugf("[%s round %05d] inspections=%v items=%d", sim.Name, round, sim.Workers.InspectionCounts(), sim.Workers.TotalItems())
	}
	return nil
}

// emitter returns the delivery callback for the worker at index src.
func (sim *Simulator) emitter(src int) Emitter {
	return func(target int, value int64) error {
		if err := sim.Workers.Deliver(target, value); err != nil {
			return err
		}
		sim.Metrics.ItemsMoved++
		if target == src {
			sim.Metrics.SelfRoutes++
		}
		if value > sim.Metrics.PeakWorry {
			sim.Metrics.PeakWorry = value
		}
		if logrus.IsLevelEnabled(logrus.TraceLevel) {
			logrus.Tracef("[%s round %05d] worker %d -> %d value=%d", sim.Name, sim.Round+1, src, target, value)
		}
		return nil
	}
}

// Run executes rounds rounds, stopping at the first invariant violation.
func (sim *Simulator) Run(rounds int) error {
	logrus.Infof("[%s] starting %d rounds with %s, self-route=%s (id=%s)", sim.Name, rounds, sim.Suppressor.Name(), sim.SelfRoute, sim.ID)
	for r := 0; r < rounds; r++ {
		if err := sim.RunRound(); err != nil {
			logrus.Errorf("[%s] aborted: %v", sim.Name, err)
			return err
		}
	}
	logrus.Infof("[%s] finished %d rounds, score=%d", sim.Name, sim.Round, sim.Score())
	return nil
}

// Score returns the product of the two largest inspection counters.
func (sim *Simulator) Score() int64 {
	return sim.Workers.Score()
}
