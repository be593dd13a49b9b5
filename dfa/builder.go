package dfa

import (
	"encoding/binary"
	"sort"

	"github.com/coregx/rex/internal/sparse"
	"github.com/coregx/rex/nfa"
	"github.com/coregx/rex/syntax"
)

// Build runs subset construction over the NFA.
//
// The canonical key of a DFA state is the sorted tuple of its NFA state IDs,
// so every subset is created at most once and cycles in the NFA cannot make
// construction diverge. Construction fails with ErrStateLimit when more than
// config.MaxStates subsets are needed.
//
// Example:
//
//	d, err := dfa.Build(n, dfa.DefaultConfig())
//	if errors.Is(err, dfa.ErrStateLimit) {
//	    // fall back to the NFA engine
//	}
func Build(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		n:       n,
		cfg:     config,
		ids:     make(map[string]StateID),
		scratch: sparse.NewSet(uint32(n.States())),
	}

	seed := []uint32{uint32(n.Start())}
	q0begin := b.closure(seed, admitBegin)
	q0mid := b.closure(seed, 0)
	matchesEmpty := containsID(b.closure(seed, admitBegin|admitEnd), uint32(n.Accept()))

	start0, err := b.intern(q0begin)
	if err != nil {
		return nil, err
	}
	startMid, err := b.intern(q0mid)
	if err != nil {
		return nil, err
	}

	for len(b.queue) > 0 {
		id := b.queue[0]
		b.queue = b.queue[1:]
		if err := b.fillRow(id); err != nil {
			return nil, err
		}
	}

	// A ^-anchored pattern leaves the mid-input start state inert: no
	// acceptance and every transition dead. Marking it Dead lets the
	// search skip all start positions past 0.
	if b.flags[startMid] == 0 && deadRow(b.rows[startMid]) {
		startMid = Dead
	}

	table := make([]StateID, 0, len(b.rows)*256)
	for _, row := range b.rows {
		table = append(table, row...)
	}

	return &DFA{
		table:        table,
		flags:        b.flags,
		start0:       start0,
		startMid:     startMid,
		matchesEmpty: matchesEmpty,
	}, nil
}

// Closure admission flags. Epsilon and split edges are always followed;
// these gate the zero-width assertions.
const (
	admitBegin uint8 = 1 << 0
	admitEnd   uint8 = 1 << 1
)

type builder struct {
	n   *nfa.NFA
	cfg Config

	// ids maps the canonical byte key of an NFA-state set to its DFA state.
	ids   map[string]StateID
	sets  [][]uint32
	flags []uint8
	rows  [][]StateID
	queue []StateID

	scratch *sparse.Set
	stack   []nfa.StateID
}

// closure returns the sorted epsilon closure of seed, admitting assertion
// edges per the admit flags. The seed itself is always included.
func (b *builder) closure(seed []uint32, admit uint8) []uint32 {
	b.scratch.Clear()
	b.stack = b.stack[:0]
	for _, id := range seed {
		b.stack = append(b.stack, nfa.StateID(id))
	}

	for len(b.stack) > 0 {
		id := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		if b.scratch.Contains(uint32(id)) {
			continue
		}
		b.scratch.Insert(uint32(id))

		st := b.n.State(id)
		switch st.Kind() {
		case nfa.StateSplit:
			left, right := st.Split()
			b.stack = append(b.stack, left, right)
		case nfa.StateEpsilon:
			b.stack = append(b.stack, st.Epsilon())
		case nfa.StateLook:
			look, next := st.Assertion()
			switch {
			case look == nfa.LookBeginText && admit&admitBegin != 0:
				b.stack = append(b.stack, next)
			case look == nfa.LookEndText && admit&admitEnd != 0:
				b.stack = append(b.stack, next)
			}
		}
	}

	out := make([]uint32, b.scratch.Len())
	copy(out, b.scratch.Dense())
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// intern returns the DFA state for the given sorted NFA-state set, creating
// and enqueueing it if unseen.
func (b *builder) intern(set []uint32) (StateID, error) {
	key := setKey(set)
	if id, ok := b.ids[key]; ok {
		return id, nil
	}
	if uint32(len(b.sets)) >= b.cfg.MaxStates {
		return Dead, ErrStateLimit
	}

	id := StateID(len(b.sets))
	b.ids[key] = id
	b.sets = append(b.sets, set)
	b.flags = append(b.flags, b.acceptFlags(set))
	b.rows = append(b.rows, nil)
	b.queue = append(b.queue, id)
	return id, nil
}

// acceptFlags computes the acceptance flags for an NFA-state set.
func (b *builder) acceptFlags(set []uint32) uint8 {
	var f uint8
	accept := uint32(b.n.Accept())
	if containsID(set, accept) {
		f |= flagAccept
	}
	// $-gated acceptance: reachable through epsilon and end assertions only.
	if f&flagAccept == 0 && containsID(b.closure(set, admitEnd), accept) {
		f |= flagAcceptAtEnd
	}
	return f
}

// fillRow computes the 256 byte transitions out of DFA state id.
func (b *builder) fillRow(id StateID) error {
	set := b.sets[id]
	row := make([]StateID, 256)

	// Gather the byte-consuming states once; the other members of the set
	// only matter for closures and acceptance.
	type edge struct {
		pred syntax.Predicate
		next uint32
	}
	var edges []edge
	for _, sid := range set {
		st := b.n.State(nfa.StateID(sid))
		if st.Kind() == nfa.StateByte {
			p, next := st.Byte()
			edges = append(edges, edge{pred: p, next: uint32(next)})
		}
	}

	var move []uint32
	for c := 0; c < 256; c++ {
		move = move[:0]
		for _, e := range edges {
			if e.pred.Matches(byte(c)) {
				move = append(move, e.next)
			}
		}
		if len(move) == 0 {
			row[c] = Dead
			continue
		}
		target, err := b.intern(b.closure(move, 0))
		if err != nil {
			return err
		}
		row[c] = target
	}

	b.rows[id] = row
	return nil
}

// setKey encodes a sorted NFA-state set as the map key for interning.
func setKey(set []uint32) string {
	buf := make([]byte, 4*len(set))
	for i, id := range set {
		binary.LittleEndian.PutUint32(buf[4*i:], id)
	}
	return string(buf)
}

func containsID(set []uint32, id uint32) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

func deadRow(row []StateID) bool {
	for _, t := range row {
		if t != Dead {
			return false
		}
	}
	return true
}
