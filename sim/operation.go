// Defines the Operation applied to an item's worry level during inspection.

package sim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Operator is the binary operator of an Operation.
type Operator string

const (
	OpAdd      Operator = "+"
	OpMultiply Operator = "*"
)

// Operand is either a literal integer or the item's current worry level ("old").
type Operand struct {
	Old   bool  // true = use the current worry level; Value is ignored
	Value int64 // literal value when Old is false
}

// OldOperand refers to the worry level being inspected.
func OldOperand() Operand { return Operand{Old: true} }

// Literal returns a constant operand.
func Literal(v int64) Operand { return Operand{Value: v} }

// resolve returns the concrete operand value for the given worry level.
func (o Operand) resolve(old int64) int64 {
	if o.Old {
		return old
	}
	return o.Value
}

func (o Operand) String() string {
	if o.Old {
		return "old"
	}
	return strconv.FormatInt(o.Value, 10)
}

// Operation is a pure transform old -> new of the form `a <op> b`.
type Operation struct {
	Left     Operand
	Operator Operator
	Right    Operand
}

// ParseOperation parses expressions such as "old * 19", "old + 6" or "old * old".
// The operands must be "old" or a base-10 signed integer; the operator must be + or *.
func ParseOperation(expr string) (Operation, error) {
	fields := strings.Fields(expr)
	if len(fields) != 3 {
		return Operation{}, fmt.Errorf("operation %q: want `operand operator operand`, got %d tokens", expr, len(fields))
	}
	left, err := parseOperand(fields[0])
	if err != nil {
		return Operation{}, fmt.Errorf("operation %q: %w", expr, err)
	}
	right, err := parseOperand(fields[2])
	if err != nil {
		return Operation{}, fmt.Errorf("operation %q: %w", expr, err)
	}
	op := Operator(fields[1])
	if !IsValidOperator(string(op)) {
		return Operation{}, fmt.Errorf("operation %q: unknown operator %q; valid: +, *", expr, fields[1])
	}
	return Operation{Left: left, Operator: op, Right: right}, nil
}

func parseOperand(s string) (Operand, error) {
	if s == "old" {
		return OldOperand(), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Operand{}, fmt.Errorf("operand %q is neither `old` nor an integer", s)
	}
	return Literal(v), nil
}

// IsValidOperator reports whether s names a supported operator.
func IsValidOperator(s string) bool {
	return s == string(OpAdd) || s == string(OpMultiply)
}

// Evaluate applies the operation to old. A result outside the int64 range
// is reported as ErrOverflow; the value never wraps.
func (op Operation) Evaluate(old int64) (int64, error) {
	a, b := op.Left.resolve(old), op.Right.resolve(old)
	var (
		v  int64
		ok bool
	)
	switch op.Operator {
	case OpMultiply:
		v, ok = mulChecked(a, b)
	default:
		v, ok = addChecked(a, b)
	}
	if !ok {
		return 0, fmt.Errorf("%w: %d %s %d", ErrOverflow, a, op.Operator, b)
	}
	return v, nil
}

func (op Operation) String() string {
	return fmt.Sprintf("%s %s %s", op.Left, op.Operator, op.Right)
}

func addChecked(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}
