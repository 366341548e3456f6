package sim

// WorkerDef is one worker definition as produced by an input parser.
type WorkerDef struct {
	Items     []int64 // starting worry levels, front first
	Operation string  // e.g. "old * 19"
	Test      RoutingDef
}

// RoutingDef describes a RoutingTest before validation.
type RoutingDef struct {
	DivisibleBy int64
	IfTrue      int
	IfFalse     int
}

// SelfRoutePolicy decides what happens to an item a worker throws to itself
// while it is draining.
type SelfRoutePolicy string

const (
	// SelfRouteImmediate re-inspects the item within the same drain call.
	SelfRouteImmediate SelfRoutePolicy = "immediate"
	// SelfRouteDeferred leaves the item queued until the worker's next turn.
	SelfRouteDeferred SelfRoutePolicy = "deferred"
)

// IsValidSelfRoutePolicy reports whether name is a known policy.
func IsValidSelfRoutePolicy(name string) bool {
	return name == string(SelfRouteImmediate) || name == string(SelfRouteDeferred)
}

// SuppressorKind selects a WorrySuppressor implementation.
type SuppressorKind string

const (
	SuppressFloor    SuppressorKind = "floor"
	SuppressModulo   SuppressorKind = "modulo"
	SuppressIdentity SuppressorKind = "identity"
)

// SuppressorConfig describes a WorrySuppressor independent of a WorkerSet.
// Divisor is only read for SuppressFloor; the modulo variant derives its
// modulus from the WorkerSet it is built against.
type SuppressorConfig struct {
	Kind    SuppressorKind
	Divisor int64
}

// Build resolves the config against ws.
func (c SuppressorConfig) Build(ws *WorkerSet) (WorrySuppressor, error) {
	switch c.Kind {
	case SuppressFloor:
		if c.Divisor <= 0 {
			return nil, &ConfigError{Problems: []ConfigProblem{{Worker: -1, Field: "suppressor.divisor", Message: "must be positive"}}}
		}
		return NewFloorDivide(c.Divisor), nil
	case SuppressModulo:
		return NewModuloNormalize(ws)
	case SuppressIdentity:
		return Identity{}, nil
	default:
		return nil, &ConfigError{Problems: []ConfigProblem{{Worker: -1, Field: "suppressor.kind", Message: "unknown kind " + string(c.Kind) + "; valid: floor, modulo, identity"}}}
	}
}
