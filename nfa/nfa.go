// Package nfa builds and simulates Thompson NFAs for the rex engine.
//
// The NFA is compiled from a syntax.Node tree. States live in a dense table
// indexed by StateID; transitions reference targets by ID, so the automaton
// has no pointer cycles even though Star introduces back-edges. Simulation
// tracks a frontier of active states and never backtracks: one start position
// costs O(n·k) for input length n and NFA size k, and an unanchored search,
// which simulates each start position in turn, costs O(n²·k) in the worst case.
package nfa

import (
	"fmt"

	"github.com/coregx/rex/syntax"
)

// StateID uniquely identifies an NFA state.
type StateID uint32

// InvalidState represents an invalid/unset state ID.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of NFA state and determines which
// transitions are valid.
type StateKind uint8

const (
	// StateMatch is the accepting state. It has no outgoing transitions.
	StateMatch StateKind = iota

	// StateByte consumes one input byte satisfying the state's predicate.
	StateByte

	// StateSplit has epsilon transitions to two states.
	StateSplit

	// StateEpsilon has a single epsilon transition.
	StateEpsilon

	// StateLook is a zero-width assertion gated on the input position.
	StateLook
)

// String returns a human-readable name for the state kind.
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByte:
		return "Byte"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateLook:
		return "Look"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Look identifies a zero-width assertion.
type Look uint8

const (
	// LookBeginText asserts the current position is the start of the input.
	LookBeginText Look = iota

	// LookEndText asserts the current position is the end of the input.
	LookEndText
)

// Satisfied reports whether the assertion holds at position pos of an input
// of length n.
func (l Look) Satisfied(pos, n int) bool {
	switch l {
	case LookBeginText:
		return pos == 0
	case LookEndText:
		return pos == n
	default:
		return false
	}
}

// String returns a human-readable name for the assertion.
func (l Look) String() string {
	switch l {
	case LookBeginText:
		return "BeginText"
	case LookEndText:
		return "EndText"
	default:
		return fmt.Sprintf("Unknown(%d)", l)
	}
}

// State is a single NFA state. The kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// next is the target for Byte, Epsilon and Look states.
	next StateID

	// pred is the byte predicate for Byte states.
	pred syntax.Predicate

	// left, right are the epsilon targets of Split states.
	left, right StateID

	// look is the assertion for Look states.
	look Look
}

// ID returns the state's unique identifier.
func (s *State) ID() StateID { return s.id }

// Kind returns the state's type.
func (s *State) Kind() StateKind { return s.kind }

// IsMatch reports whether this is the accepting state.
func (s *State) IsMatch() bool { return s.kind == StateMatch }

// Byte returns the predicate and target for Byte states.
// Returns a zero predicate and InvalidState otherwise.
func (s *State) Byte() (syntax.Predicate, StateID) {
	if s.kind == StateByte {
		return s.pred, s.next
	}
	return syntax.Predicate{}, InvalidState
}

// Split returns the two targets of Split states, or InvalidState pairs.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Epsilon returns the target of Epsilon states, or InvalidState.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// Assertion returns the look kind and target for Look states.
func (s *State) Assertion() (Look, StateID) {
	if s.kind == StateLook {
		return s.look, s.next
	}
	return 0, InvalidState
}

// String returns a human-readable representation of the state.
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return fmt.Sprintf("State(%d, Match)", s.id)
	case StateByte:
		return fmt.Sprintf("State(%d, Byte %s -> %d)", s.id, s.pred, s.next)
	case StateSplit:
		return fmt.Sprintf("State(%d, Split -> [%d, %d])", s.id, s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("State(%d, Epsilon -> %d)", s.id, s.next)
	case StateLook:
		return fmt.Sprintf("State(%d, Look %s -> %d)", s.id, s.look, s.next)
	default:
		return fmt.Sprintf("State(%d, Unknown)", s.id)
	}
}

// NFA is a compiled Thompson NFA.
//
// It has exactly one start and one accepting state, every state is reachable
// from the start, and all transition targets are in bounds; Builder.Validate
// enforces the last of these, the construction the rest. An NFA is immutable
// after Build and safe for concurrent use.
type NFA struct {
	states []State
	start  StateID
	accept StateID

	// anchored is set when the pattern can only match at position 0,
	// because every path from the start crosses a LookBeginText gate.
	anchored bool
}

// Start returns the start state ID.
func (n *NFA) Start() StateID { return n.start }

// Accept returns the accepting state ID.
func (n *NFA) Accept() StateID { return n.accept }

// States returns the total number of states.
func (n *NFA) States() int { return len(n.states) }

// State returns the state with the given ID, or nil if out of range.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsAnchored reports whether the pattern can only match at input position 0.
func (n *NFA) IsAnchored() bool { return n.anchored }

// String returns a human-readable summary of the NFA.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, accept: %d, anchored: %v}",
		len(n.states), n.start, n.accept, n.anchored)
}
