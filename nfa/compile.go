package nfa

import (
	"fmt"

	"github.com/coregx/rex/syntax"
)

// Compile builds a Thompson NFA from a parsed pattern tree.
//
// Each AST node compiles to a fragment with a single entry and a single
// dangling exit; fragments are stitched together by patching exits. The top
// fragment's exit is patched to the match state. State count is linear in
// the size of the tree.
//
// Example:
//
//	node, _ := syntax.Parse("a(b|c)*d")
//	n, err := nfa.Compile(node)
func Compile(node *syntax.Node) (*NFA, error) {
	c := &compiler{b: NewBuilderWithCapacity(16)}
	frag, err := c.compile(node)
	if err != nil {
		return nil, err
	}
	match := c.b.AddMatch()
	if err := c.b.Patch(frag.exit, match); err != nil {
		return nil, err
	}
	c.b.SetStart(frag.entry)
	c.b.SetAccept(match)
	return c.b.Build(WithAnchored(startsAnchored(node)))
}

type compiler struct {
	b *Builder
}

// frag is a partially built automaton piece. entry is its first state; exit
// is an epsilon state whose target is patched when the continuation is known.
type frag struct {
	entry StateID
	exit  StateID
}

func (c *compiler) compile(node *syntax.Node) (frag, error) {
	switch node.Op {
	case syntax.OpEmpty:
		s := c.b.AddEpsilon(InvalidState)
		return frag{entry: s, exit: s}, nil

	case syntax.OpChar:
		exit := c.b.AddEpsilon(InvalidState)
		entry := c.b.AddByte(node.Pred, exit)
		return frag{entry: entry, exit: exit}, nil

	case syntax.OpConcat:
		x, err := c.compile(node.X)
		if err != nil {
			return frag{}, err
		}
		y, err := c.compile(node.Y)
		if err != nil {
			return frag{}, err
		}
		if err := c.b.Patch(x.exit, y.entry); err != nil {
			return frag{}, err
		}
		return frag{entry: x.entry, exit: y.exit}, nil

	case syntax.OpAlt:
		x, err := c.compile(node.X)
		if err != nil {
			return frag{}, err
		}
		y, err := c.compile(node.Y)
		if err != nil {
			return frag{}, err
		}
		exit := c.b.AddEpsilon(InvalidState)
		entry := c.b.AddSplit(x.entry, y.entry)
		if err := c.b.Patch(x.exit, exit); err != nil {
			return frag{}, err
		}
		if err := c.b.Patch(y.exit, exit); err != nil {
			return frag{}, err
		}
		return frag{entry: entry, exit: exit}, nil

	case syntax.OpStar:
		x, err := c.compile(node.X)
		if err != nil {
			return frag{}, err
		}
		exit := c.b.AddEpsilon(InvalidState)
		loop := c.b.AddSplit(x.entry, exit)
		// The sub-fragment exits back into the split, giving both the
		// repeat edge and the way out.
		if err := c.b.Patch(x.exit, loop); err != nil {
			return frag{}, err
		}
		return frag{entry: loop, exit: exit}, nil

	case syntax.OpPlus:
		x, err := c.compile(node.X)
		if err != nil {
			return frag{}, err
		}
		exit := c.b.AddEpsilon(InvalidState)
		loop := c.b.AddSplit(x.entry, exit)
		if err := c.b.Patch(x.exit, loop); err != nil {
			return frag{}, err
		}
		// Unlike Star, entry is the sub-fragment: one iteration is required.
		return frag{entry: x.entry, exit: exit}, nil

	case syntax.OpQuest:
		x, err := c.compile(node.X)
		if err != nil {
			return frag{}, err
		}
		exit := c.b.AddEpsilon(InvalidState)
		entry := c.b.AddSplit(x.entry, exit)
		if err := c.b.Patch(x.exit, exit); err != nil {
			return frag{}, err
		}
		return frag{entry: entry, exit: exit}, nil

	case syntax.OpGroup:
		// Groups are semantically transparent.
		return c.compile(node.X)

	case syntax.OpBeginText:
		exit := c.b.AddEpsilon(InvalidState)
		entry := c.b.AddLook(LookBeginText, exit)
		return frag{entry: entry, exit: exit}, nil

	case syntax.OpEndText:
		exit := c.b.AddEpsilon(InvalidState)
		entry := c.b.AddLook(LookEndText, exit)
		return frag{entry: entry, exit: exit}, nil

	default:
		return frag{}, &BuildError{
			Message: fmt.Sprintf("unknown AST op %s", node.Op),
			StateID: InvalidState,
		}
	}
}

// startsAnchored reports whether every match of the pattern necessarily
// begins with the ^ assertion, i.e. the pattern can only match at position 0.
func startsAnchored(node *syntax.Node) bool {
	switch node.Op {
	case syntax.OpBeginText:
		return true
	case syntax.OpConcat:
		return startsAnchored(node.X)
	case syntax.OpGroup, syntax.OpPlus:
		return startsAnchored(node.X)
	case syntax.OpAlt:
		return startsAnchored(node.X) && startsAnchored(node.Y)
	default:
		return false
	}
}
