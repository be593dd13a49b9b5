package nfa

import (
	"github.com/coregx/rex/internal/sparse"
)

// Simulator executes an NFA over an input without backtracking.
//
// It maintains two frontier sets of active states sized to the NFA, so a
// search allocates nothing after construction. Work per input byte is bounded
// by the number of NFA states, so one start position costs O(n·k); Search
// simulates each start position in turn, O(n²·k) in the worst case.
//
// A Simulator is not safe for concurrent use; the NFA it wraps is. Create one
// Simulator per goroutine (they are cheap).
//
// Example:
//
//	sim := nfa.NewSimulator(n)
//	start, end, ok := sim.Search([]byte("abbcd"))
type Simulator struct {
	n     *NFA
	cur   *sparse.Set
	next  *sparse.Set
	stack []StateID
}

// NewSimulator creates a simulator for the given NFA.
func NewSimulator(n *NFA) *Simulator {
	size := uint32(n.States())
	return &Simulator{
		n:     n,
		cur:   sparse.NewSet(size),
		next:  sparse.NewSet(size),
		stack: make([]StateID, 0, size),
	}
}

// Search returns the leftmost-longest match span in input as a half-open
// interval, or (-1, -1, false) when there is no match.
func (s *Simulator) Search(input []byte) (start, end int, ok bool) {
	return s.SearchAt(input, 0)
}

// SearchAt behaves like Search but only considers matches starting at or
// after position at. Anchors still refer to the boundaries of the full input:
// ^ holds only at position 0 and $ only at len(input).
func (s *Simulator) SearchAt(input []byte, at int) (start, end int, ok bool) {
	if at < 0 || at > len(input) {
		return -1, -1, false
	}
	if s.n.anchored && at > 0 {
		// Every path crosses a ^ gate; only position 0 can match.
		return -1, -1, false
	}
	for pos := at; pos <= len(input); pos++ {
		if end, ok := s.runFrom(input, pos); ok {
			return pos, end, true
		}
		if s.n.anchored {
			break
		}
	}
	return -1, -1, false
}

// IsMatch reports whether the pattern matches anywhere in input.
func (s *Simulator) IsMatch(input []byte) bool {
	_, _, ok := s.Search(input)
	return ok
}

// runFrom simulates the NFA with the match start pinned at start.
// It returns the furthest position at which the accept state was active,
// which is the longest match at this start.
func (s *Simulator) runFrom(input []byte, start int) (int, bool) {
	n := len(input)
	accept := uint32(s.n.accept)

	s.cur.Clear()
	s.addClosure(s.cur, s.n.start, start, n)

	last := -1
	if s.cur.Contains(accept) {
		last = start
	}

	for i := start; i < n; i++ {
		if s.cur.Len() == 0 {
			break
		}
		b := input[i]
		s.next.Clear()
		for _, id := range s.cur.Dense() {
			st := &s.n.states[id]
			if st.kind == StateByte && st.pred.Matches(b) {
				s.addClosure(s.next, st.next, i+1, n)
			}
		}
		s.cur, s.next = s.next, s.cur
		if s.cur.Contains(accept) {
			last = i + 1
		}
	}

	if last < 0 {
		return 0, false
	}
	return last, true
}

// addClosure inserts id and its epsilon closure at input position pos into
// set. Look transitions are admitted only when their assertion holds at pos.
func (s *Simulator) addClosure(set *sparse.Set, id StateID, pos, n int) {
	s.stack = append(s.stack[:0], id)
	for len(s.stack) > 0 {
		id := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if set.Contains(uint32(id)) {
			continue
		}
		set.Insert(uint32(id))

		st := &s.n.states[id]
		switch st.kind {
		case StateSplit:
			// Push right first so the left branch is explored first;
			// frontier order is otherwise irrelevant to the result.
			s.stack = append(s.stack, st.right, st.left)
		case StateEpsilon:
			s.stack = append(s.stack, st.next)
		case StateLook:
			if st.look.Satisfied(pos, n) {
				s.stack = append(s.stack, st.next)
			}
		}
	}
}
