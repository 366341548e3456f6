package notes

import (
	"github.com/inference-sim/keepaway/internal/testutil"
	"github.com/inference-sim/keepaway/sim"
)

func canonicalDefs() []sim.WorkerDef {
	src := testutil.CanonicalWorkers()
	defs := make([]sim.WorkerDef, len(src))
	for i, w := range src {
		defs[i] = sim.WorkerDef{
			Items:     w.Items,
			Operation: w.Operation,
			Test:      sim.RoutingDef{DivisibleBy: w.DivisibleBy, IfTrue: w.IfTrue, IfFalse: w.IfFalse},
		}
	}
	return defs
}
