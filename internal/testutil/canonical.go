// Package testutil provides shared fixtures for the sim test packages.
package testutil

// Canonical scores for the four-worker example.
const (
	CanonicalShortScore = 10605      // 20 rounds, FloorDivide(3)
	CanonicalLongScore  = 2713310158 // 10000 rounds, ModuloNormalize(23*19*13*17)
)

// CanonicalShortInspections are the per-worker counters after the short run.
var CanonicalShortInspections = []int64{101, 95, 7, 105}

// CanonicalLongInspections are the per-worker counters after the long run.
var CanonicalLongInspections = []int64{52166, 47830, 1938, 52013}

// Worker is one worker definition, kept free of sim types so that
// in-package sim tests can share the fixture without an import cycle.
type Worker struct {
	Items       []int64
	Operation   string
	DivisibleBy int64
	IfTrue      int
	IfFalse     int
}

// CanonicalWorkers returns a fresh copy of the four-worker example configuration.
func CanonicalWorkers() []Worker {
	return []Worker{
		{Items: []int64{79, 98}, Operation: "old * 19", DivisibleBy: 23, IfTrue: 2, IfFalse: 3},
		{Items: []int64{54, 65, 75, 74}, Operation: "old + 6", DivisibleBy: 19, IfTrue: 2, IfFalse: 0},
		{Items: []int64{79, 60, 97}, Operation: "old * old", DivisibleBy: 13, IfTrue: 1, IfFalse: 3},
		{Items: []int64{74}, Operation: "old + 3", DivisibleBy: 17, IfTrue: 0, IfFalse: 1},
	}
}

// CanonicalNotes is the same configuration in the notes text format.
const CanonicalNotes = `Monkey 0:
  Starting items: 79, 98
  Operation: new = old * 19
  Test: divisible by 23
    If true: throw to monkey 2
    If false: throw to monkey 3

Monkey 1:
  Starting items: 54, 65, 75, 74
  Operation: new = old + 6
  Test: divisible by 19
    If true: throw to monkey 2
    If false: throw to monkey 0

Monkey 2:
  Starting items: 79, 60, 97
  Operation: new = old * old
  Test: divisible by 13
    If true: throw to monkey 1
    If false: throw to monkey 3

Monkey 3:
  Starting items: 74
  Operation: new = old + 3
  Test: divisible by 17
    If true: throw to monkey 0
    If false: throw to monkey 1
`

// CanonicalYAML is the same configuration in the YAML format.
const CanonicalYAML = `workers:
  - items: [79, 98]
    operation: old * 19
    test: {divisible_by: 23, if_true: 2, if_false: 3}
  - items: [54, 65, 75, 74]
    operation: old + 6
    test: {divisible_by: 19, if_true: 2, if_false: 0}
  - items: [79, 60, 97]
    operation: old * old
    test: {divisible_by: 13, if_true: 1, if_false: 3}
  - items: [74]
    operation: old + 3
    test: {divisible_by: 17, if_true: 0, if_false: 1}
`
