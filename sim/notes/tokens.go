package notes

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes start at 1 to stay clear of parsly's reserved codes.
const (
	tMonkey = iota + 1
	tNumber
	tColon
	tComma
	tStartingItems
	tOperation
	tTestDivisible
	tIfTrue
	tIfFalse
)

var (
	tokWS = parsly.NewToken(0, "WS", matcher.NewWhiteSpace())

	tokMonkey = parsly.NewToken(tMonkey, "Monkey", matcher.NewFragment("Monkey"))
	tokNumber = parsly.NewToken(tNumber, "Number", &numberMatcher{})
	tokColon  = parsly.NewToken(tColon, ":", matcher.NewByte(':'))
	tokComma  = parsly.NewToken(tComma, ",", matcher.NewByte(','))

	tokStartingItems = parsly.NewToken(tStartingItems, "StartingItems", matcher.NewFragment("Starting items:"))
	tokOperation     = parsly.NewToken(tOperation, "Operation", matcher.NewFragment("Operation: new ="))
	tokTestDivisible = parsly.NewToken(tTestDivisible, "TestDivisible", matcher.NewFragment("Test: divisible by"))
	tokIfTrue        = parsly.NewToken(tIfTrue, "IfTrue", matcher.NewFragment("If true: throw to monkey"))
	tokIfFalse       = parsly.NewToken(tIfFalse, "IfFalse", matcher.NewFragment("If false: throw to monkey"))
)

// numberMatcher matches an optionally negative base-10 integer.
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size {
		return 0
	}
	matched := 0
	if input[pos] == '-' {
		matched++
	}
	digits := 0
	for i := pos + matched; i < size && isDigit(input[i]); i++ {
		digits++
	}
	if digits == 0 {
		return 0
	}
	return matched + digits
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
