package notes

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/parsly"

	"github.com/inference-sim/keepaway/sim"
)

// ParseNotes parses the line-oriented notes format:
//
//	Monkey 0:
//	  Starting items: 79, 98
//	  Operation: new = old * 19
//	  Test: divisible by 23
//	    If true: throw to monkey 2
//	    If false: throw to monkey 3
//
// Blocks are separated by blank lines and must be numbered 0, 1, 2, ... in order.
// Range checks on targets and divisors are left to sim.NewWorkerSet.
func ParseNotes(data []byte) (*Input, error) {
	p := &parser{cursor: parsly.NewCursor("notes", data, 0)}
	defs, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Input{Workers: defs}, nil
}

type parser struct {
	cursor *parsly.Cursor
}

func (p *parser) parse() ([]sim.WorkerDef, error) {
	cur := p.cursor
	var defs []sim.WorkerDef
	for {
		p.skipWhitespace()
		if !cur.HasMore() {
			return defs, nil
		}
		if cur.MatchOne(tokMonkey).Code != tMonkey {
			return nil, p.wrap(len(defs), cur.NewError(tokMonkey))
		}
		def, err := p.parseWorker(len(defs))
		if err != nil {
			return nil, p.wrap(len(defs), err)
		}
		defs = append(defs, def)
	}
}

func (p *parser) parseWorker(idx int) (sim.WorkerDef, error) {
	var def sim.WorkerDef
	cur := p.cursor

	header, err := p.number()
	if err != nil {
		return def, err
	}
	if header != int64(idx) {
		return def, fmt.Errorf("block numbered %d, expected %d", header, idx)
	}
	if cur.MatchOne(tokColon).Code != tColon {
		return def, cur.NewError(tokColon)
	}

	if cur.MatchAfterOptional(tokWS, tokStartingItems).Code != tStartingItems {
		return def, cur.NewError(tokStartingItems)
	}
	if def.Items, err = p.items(); err != nil {
		return def, err
	}

	if cur.MatchAfterOptional(tokWS, tokOperation).Code != tOperation {
		return def, cur.NewError(tokOperation)
	}
	def.Operation = strings.TrimSpace(p.consumeLine())

	if cur.MatchAfterOptional(tokWS, tokTestDivisible).Code != tTestDivisible {
		return def, cur.NewError(tokTestDivisible)
	}
	if def.Test.DivisibleBy, err = p.number(); err != nil {
		return def, err
	}

	if cur.MatchAfterOptional(tokWS, tokIfTrue).Code != tIfTrue {
		return def, cur.NewError(tokIfTrue)
	}
	if def.Test.IfTrue, err = p.index(); err != nil {
		return def, err
	}

	if cur.MatchAfterOptional(tokWS, tokIfFalse).Code != tIfFalse {
		return def, cur.NewError(tokIfFalse)
	}
	if def.Test.IfFalse, err = p.index(); err != nil {
		return def, err
	}
	return def, nil
}

// items reads a comma separated list; an empty list is allowed.
func (p *parser) items() ([]int64, error) {
	cur := p.cursor
	var items []int64
	for {
		start := cur.Pos
		match := cur.MatchAfterOptional(tokWS, tokNumber)
		if match.Code != tNumber {
			if len(items) > 0 {
				return nil, cur.NewError(tokNumber)
			}
			cur.Pos = start
			return items, nil
		}
		v, err := strconv.ParseInt(match.Text(cur), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("starting item: %w", err)
		}
		items = append(items, v)

		start = cur.Pos
		if cur.MatchOne(tokComma).Code != tComma {
			cur.Pos = start
			return items, nil
		}
	}
}

func (p *parser) number() (int64, error) {
	cur := p.cursor
	match := cur.MatchAfterOptional(tokWS, tokNumber)
	if match.Code != tNumber {
		return 0, cur.NewError(tokNumber)
	}
	v, err := strconv.ParseInt(match.Text(cur), 10, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func (p *parser) index() (int, error) {
	v, err := p.number()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// wrap attaches the block index and line number to err.
func (p *parser) wrap(block int, err error) error {
	line := bytes.Count(p.cursor.Input[:p.cursor.Pos], []byte{'\n'}) + 1
	return fmt.Errorf("notes: block %d, line %d: %w", block, line, err)
}

// consumeLine consumes bytes through the next newline (or EOF) and returns
// the text before it.
func (p *parser) consumeLine() string {
	cur := p.cursor
	start := cur.Pos
	for cur.Pos < cur.InputSize {
		if cur.Input[cur.Pos] == '\n' {
			txt := string(cur.Input[start:cur.Pos])
			cur.Pos++
			return txt
		}
		cur.Pos++
	}
	return string(cur.Input[start:])
}

func (p *parser) skipWhitespace() {
	cur := p.cursor
	for cur.Pos < cur.InputSize {
		switch cur.Input[cur.Pos] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			cur.Pos++
		default:
			return
		}
	}
}
