// Defines the worry suppression policies applied after every inspection.

package sim

import "fmt"

// WorrySuppressor normalizes a worry level after the Operation runs and
// before the RoutingTest sees it. It is shared policy for a whole run and
// is supplied by the Simulator, never owned by a Worker.
type WorrySuppressor interface {
	Suppress(value int64) int64
	Name() string
}

// FloorDivide divides the worry level by K, rounding toward negative infinity.
// Suitable for short runs where magnitudes stay small.
type FloorDivide struct {
	K int64
}

// NewFloorDivide panics if k <= 0.
func NewFloorDivide(k int64) FloorDivide {
	if k <= 0 {
		panic(fmt.Sprintf("NewFloorDivide: k must be positive, got %d", k))
	}
	return FloorDivide{K: k}
}

func (f FloorDivide) Suppress(value int64) int64 {
	q := value / f.K
	if value%f.K != 0 && value < 0 {
		q--
	}
	return q
}

func (f FloorDivide) Name() string { return fmt.Sprintf("floor-divide(%d)", f.K) }

// ModuloNormalize reduces the worry level into [0, M). When M is a common
// multiple of every routing divisor, (v mod M) mod d == v mod d for each
// divisor d, so no routing decision changes while magnitudes stay bounded.
type ModuloNormalize struct {
	M int64
}

// NewModuloNormalize builds the policy from the global modulus of ws.
func NewModuloNormalize(ws *WorkerSet) (ModuloNormalize, error) {
	m, err := ws.GlobalModulus()
	if err != nil {
		return ModuloNormalize{}, err
	}
	return ModuloNormalize{M: m}, nil
}

func (n ModuloNormalize) Suppress(value int64) int64 {
	r := value % n.M
	if r < 0 {
		r += n.M
	}
	return r
}

func (n ModuloNormalize) Name() string { return fmt.Sprintf("modulo-normalize(%d)", n.M) }

// Identity leaves worry levels unchanged. Only safe for very short runs;
// overflow is still detected and reported.
type Identity struct{}

func (Identity) Suppress(value int64) int64 { return value }

func (Identity) Name() string { return "identity" }
