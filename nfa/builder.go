package nfa

import (
	"fmt"

	"github.com/coregx/rex/syntax"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by Compile.
type Builder struct {
	states []State
	start  StateID
	accept StateID
}

// NewBuilder creates a new NFA builder with default capacity.
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with the given initial
// state capacity.
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
		accept: InvalidState,
	}
}

// AddMatch adds the match (accepting) state and returns its ID.
func (b *Builder) AddMatch() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateMatch})
	return id
}

// AddByte adds a state that consumes one byte satisfying pred.
func (b *Builder) AddByte(pred syntax.Predicate, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateByte, pred: pred, next: next})
	return id
}

// AddSplit adds a state with epsilon transitions to two states.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right})
	return id
}

// AddEpsilon adds a state with a single epsilon transition.
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// AddLook adds a zero-width assertion state.
func (b *Builder) AddLook(look Look, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateLook, look: look, next: next})
	return id
}

// Patch updates a state's target. This handles forward references during
// compilation (fragment exits are created before their continuation exists).
// Only states with a single next target can be patched.
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}
	s := &b.states[stateID]
	switch s.kind {
	case StateByte, StateEpsilon, StateLook:
		s.next = target
		return nil
	default:
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	}
}

// SetStart sets the start state of the NFA.
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// SetAccept sets the accepting state of the NFA.
func (b *Builder) SetAccept(accept StateID) {
	b.accept = accept
}

// States returns the current number of states.
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed: start and accept are set and
// every transition target points to a valid state.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	if b.accept == InvalidState {
		return &BuildError{Message: "accept state not set", StateID: InvalidState}
	}
	if int(b.accept) >= len(b.states) {
		return &BuildError{Message: "accept state out of bounds", StateID: b.accept}
	}

	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case StateByte, StateEpsilon, StateLook:
			if int(s.next) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid next state %d", s.next),
					StateID: id,
				}
			}
		case StateSplit:
			if int(s.left) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid left state %d", s.left),
					StateID: id,
				}
			}
			if int(s.right) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid right state %d", s.right),
					StateID: id,
				}
			}
		}
	}
	return nil
}

// Build finalizes and returns the constructed NFA.
func (b *Builder) Build(opts ...BuildOption) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	n := &NFA{
		states: b.states,
		start:  b.start,
		accept: b.accept,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// BuildOption is a functional option for configuring the built NFA.
type BuildOption func(*NFA)

// WithAnchored marks the NFA as matching only at input position 0.
func WithAnchored(anchored bool) BuildOption {
	return func(n *NFA) {
		n.anchored = anchored
	}
}
