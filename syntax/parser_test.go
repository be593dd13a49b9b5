package syntax

import (
	"errors"
	"testing"
)

// TestParse_Shapes checks the tree structure produced for representative
// patterns.
func TestParse_Shapes(t *testing.T) {
	tests := []struct {
		pattern string
		check   func(t *testing.T, n *Node)
	}{
		{"", func(t *testing.T, n *Node) {
			if n.Op != OpEmpty {
				t.Errorf("Op = %s, want Empty", n.Op)
			}
		}},
		{"a", func(t *testing.T, n *Node) {
			if n.Op != OpChar || !n.Pred.Matches('a') || n.Pred.Count() != 1 {
				t.Errorf("want single-byte Char('a'), got %s %s", n.Op, n.Pred)
			}
		}},
		{"ab", func(t *testing.T, n *Node) {
			if n.Op != OpConcat || n.X.Op != OpChar || n.Y.Op != OpChar {
				t.Errorf("want Concat(Char, Char), got %s", n.Op)
			}
		}},
		{"a|b", func(t *testing.T, n *Node) {
			if n.Op != OpAlt {
				t.Errorf("Op = %s, want Alt", n.Op)
			}
		}},
		{"a|", func(t *testing.T, n *Node) {
			if n.Op != OpAlt || n.Y.Op != OpEmpty {
				t.Errorf("want Alt(_, Empty), got Alt(_, %s)", n.Y.Op)
			}
		}},
		{"|a", func(t *testing.T, n *Node) {
			if n.Op != OpAlt || n.X.Op != OpEmpty {
				t.Errorf("want Alt(Empty, _), got Alt(%s, _)", n.X.Op)
			}
		}},
		{"()", func(t *testing.T, n *Node) {
			if n.Op != OpGroup || n.X.Op != OpEmpty {
				t.Errorf("want Group(Empty), got %s", n.Op)
			}
		}},
		{"a*", func(t *testing.T, n *Node) {
			if n.Op != OpStar || n.X.Op != OpChar {
				t.Errorf("want Star(Char), got %s", n.Op)
			}
		}},
		{"a+", func(t *testing.T, n *Node) {
			if n.Op != OpPlus {
				t.Errorf("Op = %s, want Plus", n.Op)
			}
		}},
		{"a?", func(t *testing.T, n *Node) {
			if n.Op != OpQuest {
				t.Errorf("Op = %s, want Quest", n.Op)
			}
		}},
		{"^a$", func(t *testing.T, n *Node) {
			// Concat is left-associative: ((^ a) $).
			if n.Op != OpConcat || n.Y.Op != OpEndText {
				t.Fatalf("want Concat(_, EndText), got %s(_, %s)", n.Op, n.Y.Op)
			}
			if n.X.Op != OpConcat || n.X.X.Op != OpBeginText || n.X.Y.Op != OpChar {
				t.Errorf("want Concat(BeginText, Char) on the left")
			}
		}},
		{".", func(t *testing.T, n *Node) {
			if n.Op != OpChar || n.Pred != Dot() {
				t.Errorf("want Char(Dot)")
			}
		}},
		{`\.`, func(t *testing.T, n *Node) {
			if n.Op != OpChar || n.Pred != Literal('.') {
				t.Errorf(`want Char('.') for \.`)
			}
		}},
		{"[abc]", func(t *testing.T, n *Node) {
			if n.Op != OpChar || n.Pred.Count() != 3 || !n.Pred.Matches('b') {
				t.Errorf("want 3-byte class, got %s", n.Pred)
			}
		}},
		{"[^abc]", func(t *testing.T, n *Node) {
			if n.Op != OpChar || n.Pred.Count() != 253 || n.Pred.Matches('b') {
				t.Errorf("want negated 3-byte class, got count %d", n.Pred.Count())
			}
		}},
		{"[a-c]", func(t *testing.T, n *Node) {
			if n.Op != OpChar || n.Pred.Count() != 3 {
				t.Errorf("want range class a-c, got %s", n.Pred)
			}
		}},
		{"[-a]", func(t *testing.T, n *Node) {
			if !n.Pred.Matches('-') || !n.Pred.Matches('a') || n.Pred.Count() != 2 {
				t.Errorf("leading '-' should be literal, got %s", n.Pred)
			}
		}},
		{"[a-]", func(t *testing.T, n *Node) {
			if !n.Pred.Matches('-') || !n.Pred.Matches('a') || n.Pred.Count() != 2 {
				t.Errorf("trailing '-' should be literal, got %s", n.Pred)
			}
		}},
		{"[a^]", func(t *testing.T, n *Node) {
			// '^' is only special immediately after '['.
			if !n.Pred.Matches('^') || !n.Pred.Matches('a') {
				t.Errorf("'^' past position 0 should be literal, got %s", n.Pred)
			}
		}},
		{"a(b|c)*d", func(t *testing.T, n *Node) {
			// ((a Group*) d)
			if n.Op != OpConcat || n.X.Op != OpConcat {
				t.Fatalf("unexpected shape %s", n.Op)
			}
			star := n.X.Y
			if star.Op != OpStar || star.X.Op != OpGroup || star.X.X.Op != OpAlt {
				t.Errorf("want Star(Group(Alt)), got %s", star.Op)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.pattern, err)
			}
			tt.check(t, n)
		})
	}
}

// TestParse_Errors checks error kinds and positions.
func TestParse_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		kind    ErrorKind
		pos     int
	}{
		{"[a-z", ErrUnclosedClass, 0},
		{"x[a-z", ErrUnclosedClass, 1},
		{"(ab", ErrUnclosedGroup, 0},
		{"a(b(c)", ErrUnclosedGroup, 1},
		{"*abc", ErrNothingToRepeat, 0},
		{"+a", ErrNothingToRepeat, 0},
		{"?a", ErrNothingToRepeat, 0},
		{"a**", ErrNothingToRepeat, 2},
		{"ab|*c", ErrNothingToRepeat, 3},
		{"(*a)", ErrNothingToRepeat, 1},
		{"[z-a]", ErrInvalidRange, 1},
		{"a[9-0]", ErrInvalidRange, 2},
		{")", ErrUnexpectedChar, 0},
		{"a)b", ErrUnexpectedChar, 1},
		{"[]", ErrUnexpectedChar, 1},
		{"[^]", ErrUnexpectedChar, 2},
		{`\`, ErrUnexpectedEnd, 0},
		{`ab\`, ErrUnexpectedEnd, 2},
		{`[a\`, ErrUnexpectedEnd, 2},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.pattern)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if perr.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", perr.Kind, tt.kind)
			}
			if perr.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", perr.Pos, tt.pos)
			}
			if perr.Pos < 0 || perr.Pos > len(tt.pattern) {
				t.Errorf("Pos = %d outside [0, %d]", perr.Pos, len(tt.pattern))
			}
		})
	}
}

// TestParse_Escapes checks that a backslash makes any following byte literal.
func TestParse_Escapes(t *testing.T) {
	for _, m := range []byte(`()[].*+?|^$\`) {
		pattern := `\` + string(m)
		t.Run(pattern, func(t *testing.T) {
			n, err := Parse(pattern)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", pattern, err)
			}
			if n.Op != OpChar || n.Pred != Literal(m) {
				t.Errorf("Parse(%q) = %s, want Char(%q)", pattern, n.Op, m)
			}
		})
	}
}

// TestNode_String checks that printing re-parses to the same tree.
func TestNode_String(t *testing.T) {
	patterns := []string{
		"",
		"abc",
		"a|b|c",
		"a(b|c)*d",
		"^[0-9]+$",
		`a\.b`,
		"x?y+z*",
		"(ab)+",
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			n, err := Parse(pattern)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", pattern, err)
			}
			printed := n.String()
			n2, err := Parse(printed)
			if err != nil {
				t.Fatalf("Parse(String() = %q) failed: %v", printed, err)
			}
			if n2.String() != printed {
				t.Errorf("printing is not stable: %q -> %q", printed, n2.String())
			}
		})
	}
}
