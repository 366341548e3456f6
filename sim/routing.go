// Defines the RoutingTest that decides which worker receives an inspected item.

package sim

import "fmt"

// RoutingTest sends an item to TrueTarget when its worry level is divisible
// by Divisor, otherwise to FalseTarget. Targets are indices into the WorkerSet.
type RoutingTest struct {
	Divisor     int64
	TrueTarget  int
	FalseTarget int
}

// Route returns the destination worker index for value. Pure and total for Divisor > 0.
func (rt RoutingTest) Route(value int64) int {
	if value%rt.Divisor == 0 {
		return rt.TrueTarget
	}
	return rt.FalseTarget
}

func (rt RoutingTest) String() string {
	return fmt.Sprintf("divisible by %d ? %d : %d", rt.Divisor, rt.TrueTarget, rt.FalseTarget)
}
