package sim

import (
	"errors"
	"fmt"
	"strings"
)

// Runtime invariant violations. These are never recoverable: a round stops
// at the first one and the error is returned wrapped in an *InvariantError.
var (
	ErrTargetOutOfRange = errors.New("target worker index out of range")
	ErrOverflow         = errors.New("worry level overflows int64")
	ErrQueueUnderflow   = errors.New("item queue underflow")
	ErrSelfRouteCycle   = errors.New("item routed back to its worker unchanged")
)

// ConfigProblem is a single configuration defect.
// Worker is -1 when the problem concerns the set as a whole.
type ConfigProblem struct {
	Worker  int
	Field   string
	Message string
}

func (p ConfigProblem) String() string {
	if p.Worker < 0 {
		return fmt.Sprintf("%s: %s", p.Field, p.Message)
	}
	return fmt.Sprintf("worker[%d].%s: %s", p.Worker, p.Field, p.Message)
}

// ConfigError reports every problem found while validating worker definitions.
// It is returned before any round executes; nothing is partially applied.
type ConfigError struct {
	Problems []ConfigProblem
}

func (e *ConfigError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return fmt.Sprintf("invalid worker configuration (%d problem(s)): %s", len(e.Problems), strings.Join(parts, "; "))
}

func (e *ConfigError) add(worker int, field, format string, args ...any) {
	e.Problems = append(e.Problems, ConfigProblem{Worker: worker, Field: field, Message: fmt.Sprintf(format, args...)})
}

// merge folds err into e. A *ConfigError contributes its problems; any
// other error becomes a set-level problem.
func (e *ConfigError) merge(err error) {
	if err == nil {
		return
	}
	var other *ConfigError
	if errors.As(err, &other) {
		e.Problems = append(e.Problems, other.Problems...)
		return
	}
	e.add(-1, "workers", "%v", err)
}

// errOrNil returns e as an error only if it recorded at least one problem.
func (e *ConfigError) errOrNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// InvariantError locates a runtime invariant violation.
type InvariantError struct {
	Run    string // run name, empty outside of an experiment
	Round  int    // 1-based round number
	Worker int    // index of the worker being drained
	Err    error
}

func (e *InvariantError) Error() string {
	if e.Run != "" {
		return fmt.Sprintf("run %q round %d worker %d: %v", e.Run, e.Round, e.Worker, e.Err)
	}
	return fmt.Sprintf("round %d worker %d: %v", e.Round, e.Worker, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }
