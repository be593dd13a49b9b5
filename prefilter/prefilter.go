// Package prefilter accelerates unanchored searches by skipping start
// positions that cannot begin a match.
//
// Two analyses run over the parsed pattern at compile time:
//
//   - AlternationLiterals detects patterns that are a pure alternation of
//     literal strings; an Aho-Corasick automaton finds the leftmost
//     literal occurrence, where the engine's scan then begins.
//   - FirstBytes computes the set of bytes any match must begin with; the
//     engine's scan begins at the first occurrence of that set. Positions
//     after that first candidate are still probed one by one by the engine.
//
// Prefilters are behavior-transparent: the engines still decide the final
// span, so results are identical with and without them. Patterns anchored
// with ^ are never prefiltered; they can only match at position 0.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/rex/internal/scan"
	"github.com/coregx/rex/syntax"
)

// AlternationLiterals returns the literal strings of a pattern that is a
// pure alternation of literals (for example ab|cd|ef), in branch order.
// It returns nil when the pattern has any non-literal structure.
func AlternationLiterals(node *syntax.Node) [][]byte {
	var lits [][]byte
	if !collectAltLiterals(node, &lits) {
		return nil
	}
	return lits
}

func collectAltLiterals(node *syntax.Node, lits *[][]byte) bool {
	switch node.Op {
	case syntax.OpAlt:
		return collectAltLiterals(node.X, lits) && collectAltLiterals(node.Y, lits)
	case syntax.OpGroup:
		return collectAltLiterals(node.X, lits)
	default:
		lit, ok := literalBytes(node)
		if !ok {
			return false
		}
		*lits = append(*lits, lit)
		return true
	}
}

// literalBytes flattens a concatenation of single-byte predicates.
func literalBytes(node *syntax.Node) ([]byte, bool) {
	switch node.Op {
	case syntax.OpChar:
		b, ok := node.Pred.Single()
		if !ok {
			return nil, false
		}
		return []byte{b}, true
	case syntax.OpConcat:
		x, ok := literalBytes(node.X)
		if !ok {
			return nil, false
		}
		y, ok := literalBytes(node.Y)
		if !ok {
			return nil, false
		}
		return append(x, y...), true
	case syntax.OpGroup:
		return literalBytes(node.X)
	default:
		return nil, false
	}
}

// FirstBytes returns the set of bytes a match can start with.
//
// The second return is false when the analysis cannot restrict start
// positions, in particular when the pattern can match the empty string
// (an empty match begins at any position, in front of any byte).
func FirstBytes(node *syntax.Node) (syntax.Predicate, bool) {
	pred, emptiable := firstBytes(node)
	if emptiable || pred.IsEmpty() {
		return syntax.Predicate{}, false
	}
	return pred, true
}

// firstBytes returns the possible first bytes of node and whether node can
// match without consuming any byte.
func firstBytes(node *syntax.Node) (syntax.Predicate, bool) {
	switch node.Op {
	case syntax.OpChar:
		return node.Pred, false
	case syntax.OpConcat:
		fx, ex := firstBytes(node.X)
		if !ex {
			return fx, false
		}
		fy, ey := firstBytes(node.Y)
		return fx.Union(fy), ey
	case syntax.OpAlt:
		fx, ex := firstBytes(node.X)
		fy, ey := firstBytes(node.Y)
		return fx.Union(fy), ex || ey
	case syntax.OpStar, syntax.OpQuest:
		fx, _ := firstBytes(node.X)
		return fx, true
	case syntax.OpPlus:
		return firstBytes(node.X)
	case syntax.OpGroup:
		return firstBytes(node.X)
	default:
		// OpEmpty and the zero-width anchors consume nothing.
		return syntax.Predicate{}, true
	}
}

// ByteSkipper jumps between candidate start positions using the first-byte
// set of the pattern.
type ByteSkipper struct {
	single byte
	isByte bool
	table  scan.Table
}

// NewByteSkipper builds a skipper from a non-empty first-byte set.
func NewByteSkipper(pred syntax.Predicate) *ByteSkipper {
	s := &ByteSkipper{}
	if b, ok := pred.Single(); ok {
		s.single = b
		s.isByte = true
		return s
	}
	for c := 0; c < 256; c++ {
		s.table[c] = pred.Matches(byte(c))
	}
	return s
}

// Next returns the first position at or after at where a match could begin,
// or -1 if no byte from the set occurs there.
func (s *ByteSkipper) Next(haystack []byte, at int) int {
	if s.isByte {
		return scan.IndexByte(haystack, at, s.single)
	}
	return scan.IndexTable(haystack, at, &s.table)
}

// AhoCorasick finds candidate starts for alternation-of-literals patterns.
type AhoCorasick struct {
	auto *ahocorasick.Automaton
}

// BuildAhoCorasick builds the automaton over the literal set.
func BuildAhoCorasick(lits [][]byte) (*AhoCorasick, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &AhoCorasick{auto: auto}, nil
}

// Find returns the start of the leftmost literal occurrence at or after
// position at, or -1 when none of the literals occur there.
func (a *AhoCorasick) Find(haystack []byte, at int) int {
	m := a.auto.Find(haystack, at)
	if m == nil {
		return -1
	}
	return m.Start
}
