// Defines the WorkerSet: the index-addressed collection of workers a simulation mutates.

package sim

import (
	"fmt"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
)

// WorkerSet is an ordered, fixed collection of workers. Index is identity.
// Workers are stored by value and always addressed by index, so delivering
// into any slot (including the worker currently draining) is a direct,
// immediately visible mutation of the same collection.
type WorkerSet struct {
	workers []Worker
}

// NewWorkerSet validates defs and builds the set. All problems are collected
// into a single *ConfigError; on error no WorkerSet is returned.
func NewWorkerSet(defs []WorkerDef) (*WorkerSet, error) {
	cerr := &ConfigError{}
	if len(defs) == 0 {
		cerr.add(-1, "workers", "at least one worker is required")
		return nil, cerr
	}
	n := len(defs)
	workers := make([]Worker, n)
	for i, d := range defs {
		op, err := ParseOperation(d.Operation)
		if err != nil {
			cerr.add(i, "operation", "%v", err)
		}
		if d.Test.DivisibleBy <= 0 {
			cerr.add(i, "test.divisible_by", "must be positive, got %d", d.Test.DivisibleBy)
		}
		if d.Test.IfTrue < 0 || d.Test.IfTrue >= n {
			cerr.add(i, "test.if_true", "target %d out of range [0, %d)", d.Test.IfTrue, n)
		}
		if d.Test.IfFalse < 0 || d.Test.IfFalse >= n {
			cerr.add(i, "test.if_false", "target %d out of range [0, %d)", d.Test.IfFalse, n)
		}
		if d.Test.IfTrue == i || d.Test.IfFalse == i {
			logrus.Warnf("worker %d routes to itself; self-route policy decides when those items are re-inspected", i)
		}
		workers[i] = Worker{
			Index:     i,
			Queue:     *NewItemQueue(d.Items),
			Operation: op,
			Test:      RoutingTest{Divisor: d.Test.DivisibleBy, TrueTarget: d.Test.IfTrue, FalseTarget: d.Test.IfFalse},
		}
	}
	if err := cerr.errOrNil(); err != nil {
		return nil, err
	}
	ws := &WorkerSet{workers: workers}
	if _, err := ws.GlobalModulus(); err != nil {
		return nil, err
	}
	return ws, nil
}

// Len returns the number of workers.
func (ws *WorkerSet) Len() int {
	return len(ws.workers)
}

// Worker returns the worker at index i. The pointer is into the set's own
// storage and stays valid for the lifetime of the set.
func (ws *WorkerSet) Worker(i int) *Worker {
	return &ws.workers[i]
}

// Deliver appends value to the queue of worker target.
func (ws *WorkerSet) Deliver(target int, value int64) error {
	if target < 0 || target >= len(ws.workers) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrTargetOutOfRange, target, len(ws.workers))
	}
	ws.workers[target].Queue.Enqueue(value)
	return nil
}

// Clone returns a deep copy. Runs must never share mutable state, so each
// run operates on its own clone of the initial set.
func (ws *WorkerSet) Clone() *WorkerSet {
	c := &WorkerSet{workers: make([]Worker, len(ws.workers))}
	for i := range ws.workers {
		w := ws.workers[i]
		w.Queue = *ws.workers[i].Queue.clone()
		c.workers[i] = w
	}
	return c
}

// GlobalModulus returns the product of every worker's routing divisor.
// Errors when the product does not fit in int64.
func (ws *WorkerSet) GlobalModulus() (int64, error) {
	m := int64(1)
	for i := range ws.workers {
		d := ws.workers[i].Test.Divisor
		if d > math.MaxInt64/m {
			return 0, &ConfigError{Problems: []ConfigProblem{{
				Worker:  i,
				Field:   "test.divisible_by",
				Message: fmt.Sprintf("product of divisors overflows int64 at divisor %d", d),
			}}}
		}
		m *= d
	}
	return m, nil
}

// InspectionCounts returns each worker's inspection counter, by index.
func (ws *WorkerSet) InspectionCounts() []int64 {
	counts := make([]int64, len(ws.workers))
	for i := range ws.workers {
		counts[i] = ws.workers[i].Inspections
	}
	return counts
}

// Queues returns a copy of every worker's queue contents, by index.
func (ws *WorkerSet) Queues() [][]int64 {
	qs := make([][]int64, len(ws.workers))
	for i := range ws.workers {
		qs[i] = ws.workers[i].Queue.Items()
	}
	return qs
}

// TotalItems returns the number of items held across all queues.
func (ws *WorkerSet) TotalItems() int {
	total := 0
	for i := range ws.workers {
		total += ws.workers[i].Queue.Len()
	}
	return total
}

// CheckSelfRoute reports workers whose two targets are both themselves.
// Under SelfRouteImmediate such a worker would never finish draining;
// SelfRouteDeferred leaves the items queued for the next round and accepts it.
func (ws *WorkerSet) CheckSelfRoute(policy SelfRoutePolicy) error {
	if policy == SelfRouteDeferred {
		return nil
	}
	cerr := &ConfigError{}
	for i := range ws.workers {
		t := ws.workers[i].Test
		if t.TrueTarget == i && t.FalseTarget == i {
			cerr.add(i, "test", "both targets are the worker itself; its items never leave under %s self-routing", SelfRouteImmediate)
		}
	}
	return cerr.errOrNil()
}

// Score returns the product of the two largest inspection counters.
// A single-worker set has no second factor and scores its own counter.
func (ws *WorkerSet) Score() int64 {
	counts := ws.InspectionCounts()
	slices.SortFunc(counts, func(a, b int64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	if len(counts) == 1 {
		return counts[0]
	}
	return counts[0] * counts[1]
}
