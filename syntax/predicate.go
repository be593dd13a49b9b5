package syntax

import (
	"fmt"
	"math/bits"
	"strings"
)

// Predicate decides whether a single input byte matches a pattern symbol.
//
// A Predicate is a 256-bit bitmap over the byte alphabet, so membership
// testing is a constant-time bit probe and equality is plain value equality.
// Predicates are comparable and can be used directly as map keys.
//
// The zero value matches no bytes.
type Predicate struct {
	bits [4]uint64
}

// Literal returns a predicate matching exactly the byte c.
func Literal(c byte) Predicate {
	var p Predicate
	p.bits[c>>6] |= 1 << (c & 63)
	return p
}

// Dot returns a predicate matching any byte except newline (0x0A).
func Dot() Predicate {
	p := Predicate{bits: [4]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}}
	p.bits['\n'>>6] &^= 1 << ('\n' & 63)
	return p
}

// Matches reports whether the byte b satisfies the predicate.
func (p Predicate) Matches(b byte) bool {
	return p.bits[b>>6]&(1<<(b&63)) != 0
}

// Union returns a predicate matching every byte that p or q matches.
func (p Predicate) Union(q Predicate) Predicate {
	var out Predicate
	for i := range out.bits {
		out.bits[i] = p.bits[i] | q.bits[i]
	}
	return out
}

// IsEmpty reports whether the predicate matches no byte at all.
func (p Predicate) IsEmpty() bool {
	return p.bits == [4]uint64{}
}

// Count returns the number of bytes the predicate matches.
func (p Predicate) Count() int {
	n := 0
	for _, w := range p.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Single returns the only byte the predicate matches.
// The second return is false unless the predicate matches exactly one byte.
func (p Predicate) Single() (byte, bool) {
	if p.Count() != 1 {
		return 0, false
	}
	for b := 0; b < 256; b++ {
		if p.Matches(byte(b)) {
			return byte(b), true
		}
	}
	return 0, false
}

// String returns a human-readable form of the predicate, mainly for debugging.
// Single bytes print Go-quoted, the full non-newline set prints as ".",
// and everything else prints as a character class with ranges.
func (p Predicate) String() string {
	if p == Dot() {
		return "."
	}
	if b, ok := p.Single(); ok {
		return fmt.Sprintf("%q", string(b))
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for lo := 0; lo < 256; {
		if !p.Matches(byte(lo)) {
			lo++
			continue
		}
		hi := lo
		for hi+1 < 256 && p.Matches(byte(hi+1)) {
			hi++
		}
		if lo == hi {
			fmt.Fprintf(&sb, "%#x", lo)
		} else {
			fmt.Fprintf(&sb, "%#x-%#x", lo, hi)
		}
		lo = hi + 1
	}
	sb.WriteByte(']')
	return sb.String()
}

// ClassBuilder accumulates the byte set of a character class.
// The parser feeds it single bytes and inclusive ranges, then calls Build
// with the negation flag taken from a leading '^'.
type ClassBuilder struct {
	bits [4]uint64
}

// AddByte adds a single byte to the class.
func (cb *ClassBuilder) AddByte(c byte) {
	cb.bits[c>>6] |= 1 << (c & 63)
}

// AddRange adds the inclusive byte range [lo, hi] to the class.
// The caller must ensure lo <= hi.
func (cb *ClassBuilder) AddRange(lo, hi byte) {
	for c := int(lo); c <= int(hi); c++ {
		cb.bits[c>>6] |= 1 << (uint(c) & 63)
	}
}

// Build finalizes the class into a Predicate.
// A negated class matches every byte not in the accumulated set, including
// newline; negation is pure set complement.
func (cb *ClassBuilder) Build(negated bool) Predicate {
	p := Predicate{bits: cb.bits}
	if negated {
		for i := range p.bits {
			p.bits[i] = ^p.bits[i]
		}
	}
	return p
}
