package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/keepaway/internal/testutil"
)

func TestSimulator_FirstRound_MatchesWorkedExample(t *testing.T) {
	// GIVEN the canonical configuration with FloorDivide(3)
	s := NewSimulator("short", newCanonical(t), NewFloorDivide(3), SelfRouteImmediate)

	// WHEN one round runs
	require.NoError(t, s.RunRound())

	// THEN items thrown to higher indices were processed in the same round
	assert.Equal(t, [][]int64{
		{20, 23, 27, 26},
		{2080, 25, 167, 207, 401, 1046},
		nil,
		nil,
	}, s.Workers.Queues())
	assert.Equal(t, []int64{2, 4, 3, 5}, s.Workers.InspectionCounts())
	assert.Equal(t, 1, s.Round)
}

func TestSimulator_ShortRun_CanonicalScore(t *testing.T) {
	s := NewSimulator("short", newCanonical(t), NewFloorDivide(3), SelfRouteImmediate)
	require.NoError(t, s.Run(20))

	assert.Equal(t, testutil.CanonicalShortInspections, s.Workers.InspectionCounts())
	assert.Equal(t, int64(testutil.CanonicalShortScore), s.Score())
	assert.Equal(t, testutil.CanonicalShortInspections, s.Metrics.Inspections)
	assert.Equal(t, s.Metrics.TotalInspections(), s.Metrics.ItemsMoved)
}

func TestSimulator_LongRun_CanonicalScore(t *testing.T) {
	ws := newCanonical(t)
	mod, err := NewModuloNormalize(ws)
	require.NoError(t, err)

	s := NewSimulator("long", ws, mod, SelfRouteImmediate)
	require.NoError(t, s.Run(10000))

	assert.Equal(t, testutil.CanonicalLongInspections, s.Workers.InspectionCounts())
	assert.Equal(t, int64(testutil.CanonicalLongScore), s.Score())
	// every stored value is bounded by the global modulus
	assert.Less(t, s.Metrics.PeakWorry, mod.M)
	for _, q := range s.Workers.Queues() {
		for _, v := range q {
			assert.GreaterOrEqual(t, v, int64(0))
			assert.Less(t, v, mod.M)
		}
	}
}

func TestSimulator_Conservation_EveryRound(t *testing.T) {
	// GIVEN the canonical set (10 items)
	s := NewSimulator("conservation", newCanonical(t), NewFloorDivide(3), "")

	// WHEN rounds run
	// THEN the total item count never changes
	for r := 0; r < 50; r++ {
		require.NoError(t, s.RunRound())
		assert.Equal(t, 10, s.Workers.TotalItems(), "round %d", r+1)
	}
}

func TestSimulator_Monotonicity_CountersNeverDecrease(t *testing.T) {
	ws := newCanonical(t)
	mod, err := NewModuloNormalize(ws)
	require.NoError(t, err)
	s := NewSimulator("monotone", ws, mod, SelfRouteImmediate)

	prev := s.Workers.InspectionCounts()
	for r := 0; r < 200; r++ {
		require.NoError(t, s.RunRound())
		cur := s.Workers.InspectionCounts()
		for i := range cur {
			assert.GreaterOrEqual(t, cur[i], prev[i], "worker %d round %d", i, r+1)
		}
		prev = cur
	}
}

func TestSimulator_Determinism_SameConfigIdenticalState(t *testing.T) {
	base := newCanonical(t)
	run := func() *Simulator {
		mod, err := NewModuloNormalize(base)
		require.NoError(t, err)
		s := NewSimulator("det", base.Clone(), mod, SelfRouteImmediate)
		require.NoError(t, s.Run(500))
		return s
	}
	a, b := run(), run()

	assert.Equal(t, a.Workers.InspectionCounts(), b.Workers.InspectionCounts())
	assert.Equal(t, a.Workers.Queues(), b.Workers.Queues())
	assert.Equal(t, *a.Metrics, *b.Metrics)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSimulator_EmptyWorker_ContributesNothing(t *testing.T) {
	// GIVEN worker 2 starts empty and nobody throws to it
	defs := []WorkerDef{
		{Items: []int64{1, 2}, Operation: "old + 1", Test: RoutingDef{DivisibleBy: 2, IfTrue: 1, IfFalse: 1}},
		{Operation: "old + 1", Test: RoutingDef{DivisibleBy: 2, IfTrue: 0, IfFalse: 0}},
		{Operation: "old * 2", Test: RoutingDef{DivisibleBy: 2, IfTrue: 0, IfFalse: 1}},
	}
	ws, err := NewWorkerSet(defs)
	require.NoError(t, err)
	s := NewSimulator("empty", ws, Identity{}, SelfRouteImmediate)

	require.NoError(t, s.Run(3))

	// THEN its counter stays 0 while the others cycle the two items
	assert.Equal(t, []int64{6, 6, 0}, s.Workers.InspectionCounts())
	assert.Equal(t, int64(36), s.Score())
}

// selfRoutingDefs: worker 0 keeps odd results, passes even ones to worker 1,
// which sends everything back.
func selfRoutingDefs() []WorkerDef {
	return []WorkerDef{
		{Items: []int64{4, 1}, Operation: "old + 1", Test: RoutingDef{DivisibleBy: 2, IfTrue: 1, IfFalse: 0}},
		{Operation: "old * 1", Test: RoutingDef{DivisibleBy: 2, IfTrue: 0, IfFalse: 0}},
	}
}

func TestSimulator_SelfRoutePolicies(t *testing.T) {
	tests := []struct {
		policy     SelfRoutePolicy
		wantCounts []int64
		wantQueues [][]int64
	}{
		// 4->5 (self) ->6 (w1); 1->2 (w1); w1 returns 2 and 6
		{SelfRouteImmediate, []int64{3, 2}, [][]int64{{2, 6}, nil}},
		// 4->5 stays queued; 1->2 (w1); w1 returns 2
		{SelfRouteDeferred, []int64{2, 1}, [][]int64{{5, 2}, nil}},
	}
	for _, tc := range tests {
		t.Run(string(tc.policy), func(t *testing.T) {
			ws, err := NewWorkerSet(selfRoutingDefs())
			require.NoError(t, err)
			s := NewSimulator("self", ws, Identity{}, tc.policy)

			require.NoError(t, s.RunRound())

			assert.Equal(t, tc.wantCounts, s.Workers.InspectionCounts())
			assert.Equal(t, tc.wantQueues, s.Workers.Queues())
			assert.Equal(t, 2, s.Workers.TotalItems())
		})
	}
}

func TestSimulator_PoliciesAgreeWithoutSelfRoutes(t *testing.T) {
	a := NewSimulator("a", newCanonical(t), NewFloorDivide(3), SelfRouteImmediate)
	b := NewSimulator("b", newCanonical(t), NewFloorDivide(3), SelfRouteDeferred)
	require.NoError(t, a.Run(20))
	require.NoError(t, b.Run(20))
	assert.Equal(t, a.Score(), b.Score())
	assert.Equal(t, int64(0), a.Metrics.SelfRoutes)
}

func TestSimulator_Overflow_FailsFastWithContext(t *testing.T) {
	// GIVEN squaring without any suppression
	s := NewSimulator("runaway", newCanonical(t), Identity{}, SelfRouteImmediate)

	// WHEN enough rounds run for worker 2 to overflow
	err := s.Run(100)

	// THEN the run stops with the round and worker of the violation
	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.True(t, errors.Is(err, ErrOverflow))
	assert.Equal(t, "runaway", inv.Run)
	// only the multiplying workers can overflow
	assert.Contains(t, []int{0, 2}, inv.Worker)
	assert.Equal(t, s.Round+1, inv.Round)
	assert.Equal(t, 10, s.Workers.TotalItems(), "no item lost on failure")
}

func TestNewSimulator_InvalidArguments_Panic(t *testing.T) {
	ws := newCanonical(t)
	assert.Panics(t, func() { NewSimulator("x", nil, Identity{}, "") })
	assert.Panics(t, func() { NewSimulator("x", ws, nil, "") })
	assert.Panics(t, func() { NewSimulator("x", ws, Identity{}, "later") })
}

func TestNewSimulator_BothTargetsSelf_PanicsOnlyWhenImmediate(t *testing.T) {
	defs := canonicalDefs()
	defs[2].Test.IfTrue, defs[2].Test.IfFalse = 2, 2
	ws, err := NewWorkerSet(defs)
	require.NoError(t, err)

	assert.Panics(t, func() { NewSimulator("x", ws.Clone(), Identity{}, SelfRouteImmediate) })
	assert.Panics(t, func() { NewSimulator("x", ws.Clone(), Identity{}, "") })
	assert.NotPanics(t, func() { NewSimulator("x", ws.Clone(), Identity{}, SelfRouteDeferred) })
}

// zeroingDefs: worker 0 turns every item into 0, which it routes to itself.
func zeroingDefs() []WorkerDef {
	return []WorkerDef{
		{Items: []int64{7}, Operation: "old * 0", Test: RoutingDef{DivisibleBy: 2, IfTrue: 0, IfFalse: 1}},
		{Operation: "old + 1", Test: RoutingDef{DivisibleBy: 2, IfTrue: 0, IfFalse: 0}},
	}
}

func TestSimulator_SelfRouteFixedPoint_Immediate_FailsWithContext(t *testing.T) {
	// GIVEN worker 0 maps 0 to 0 and keeps it
	ws, err := NewWorkerSet(zeroingDefs())
	require.NoError(t, err)
	s := NewSimulator("cycle", ws, NewFloorDivide(3), SelfRouteImmediate)

	// WHEN the run starts
	err = s.Run(20)

	// THEN it fails in round 1 at worker 0 instead of draining forever
	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.ErrorIs(t, err, ErrSelfRouteCycle)
	assert.Equal(t, "cycle", inv.Run)
	assert.Equal(t, 1, inv.Round)
	assert.Equal(t, 0, inv.Worker)
	assert.Equal(t, 0, s.Round)
	assert.Equal(t, 1, s.Workers.TotalItems(), "no item lost on failure")
}

func TestSimulator_SelfRouteFixedPoint_Deferred_Completes(t *testing.T) {
	ws, err := NewWorkerSet(zeroingDefs())
	require.NoError(t, err)
	s := NewSimulator("cycle", ws, NewFloorDivide(3), SelfRouteDeferred)

	require.NoError(t, s.Run(20))

	// one inspection per turn; worker 1 never sees an item
	assert.Equal(t, []int64{20, 0}, s.Workers.InspectionCounts())
	assert.Equal(t, [][]int64{{0}, nil}, s.Workers.Queues())
	assert.Equal(t, int64(0), s.Score())
}

func TestSimulator_Conservation_WithSelfRoutes(t *testing.T) {
	ws, err := NewWorkerSet(selfRoutingDefs())
	require.NoError(t, err)
	s := NewSimulator("self", ws, NewFloorDivide(1), SelfRouteDeferred)
	for r := 0; r < 25; r++ {
		require.NoError(t, s.RunRound())
		assert.Equal(t, 2, s.Workers.TotalItems(), "round %d", r+1)
	}
}
