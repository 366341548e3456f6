package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/keepaway/internal/testutil"
)

func canonicalDefs() []WorkerDef {
	src := testutil.CanonicalWorkers()
	defs := make([]WorkerDef, len(src))
	for i, w := range src {
		defs[i] = WorkerDef{
			Items:     w.Items,
			Operation: w.Operation,
			Test:      RoutingDef{DivisibleBy: w.DivisibleBy, IfTrue: w.IfTrue, IfFalse: w.IfFalse},
		}
	}
	return defs
}

func newCanonical(t *testing.T) *WorkerSet {
	t.Helper()
	ws, err := NewWorkerSet(canonicalDefs())
	require.NoError(t, err)
	return ws
}

func mustOp(t *testing.T, expr string) Operation {
	t.Helper()
	op, err := ParseOperation(expr)
	require.NoError(t, err)
	return op
}
