package prefilter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/rex/syntax"
)

func parse(t *testing.T, pattern string) *syntax.Node {
	t.Helper()
	node, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", pattern, err)
	}
	return node
}

func TestAlternationLiterals(t *testing.T) {
	tests := []struct {
		pattern string
		want    [][]byte
	}{
		{"foo|bar|baz", [][]byte{[]byte("foo"), []byte("bar"), []byte("baz")}},
		{"a|b", [][]byte{[]byte("a"), []byte("b")}},
		{"(foo|bar)", [][]byte{[]byte("foo"), []byte("bar")}},
		{`a\.b|c`, [][]byte{[]byte("a.b"), []byte("c")}},
		{"abc", [][]byte{[]byte("abc")}},

		// Any non-literal structure disables extraction.
		{"foo|b*", nil},
		{"foo|[ab]", nil},
		{"fo.|bar", nil},
		{"^foo|bar", nil},
		{"foo|", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := AlternationLiterals(parse(t, tt.pattern))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AlternationLiterals(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestFirstBytes(t *testing.T) {
	tests := []struct {
		pattern string
		ok      bool
		in      []byte // bytes that must be in the set
		out     []byte // bytes that must not be
	}{
		{"abc", true, []byte{'a'}, []byte{'b', 'c'}},
		{"a|b", true, []byte{'a', 'b'}, []byte{'c'}},
		{"[0-9]x", true, []byte{'0', '5', '9'}, []byte{'x', 'a'}},
		{"a*b", true, []byte{'a', 'b'}, []byte{'c'}},
		{"a+b", true, []byte{'a'}, []byte{'b'}},
		{"(ab|cd)e", true, []byte{'a', 'c'}, []byte{'b', 'd', 'e'}},
		{"^ab", true, []byte{'a'}, []byte{'b'}}, // the anchor is zero-width

		// Emptiable patterns cannot restrict start positions.
		{"a*", false, nil, nil},
		{"a?", false, nil, nil},
		{"", false, nil, nil},
		{"a|", false, nil, nil},
		{"^", false, nil, nil},
		{"$", false, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			pred, ok := FirstBytes(parse(t, tt.pattern))
			if ok != tt.ok {
				t.Fatalf("FirstBytes(%q) ok = %v, want %v", tt.pattern, ok, tt.ok)
			}
			for _, b := range tt.in {
				if !pred.Matches(b) {
					t.Errorf("first-byte set should contain %q", b)
				}
			}
			for _, b := range tt.out {
				if pred.Matches(b) {
					t.Errorf("first-byte set should not contain %q", b)
				}
			}
		})
	}
}

func TestByteSkipper(t *testing.T) {
	t.Run("single byte", func(t *testing.T) {
		s := NewByteSkipper(syntax.Literal('x'))
		haystack := []byte("aaxbbxcc")

		if got := s.Next(haystack, 0); got != 2 {
			t.Errorf("Next(0) = %d, want 2", got)
		}
		if got := s.Next(haystack, 3); got != 5 {
			t.Errorf("Next(3) = %d, want 5", got)
		}
		if got := s.Next(haystack, 6); got != -1 {
			t.Errorf("Next(6) = %d, want -1", got)
		}
		if got := s.Next(haystack, len(haystack)); got != -1 {
			t.Errorf("Next(len) = %d, want -1", got)
		}
	})

	t.Run("byte set", func(t *testing.T) {
		var cb syntax.ClassBuilder
		cb.AddRange('0', '9')
		s := NewByteSkipper(cb.Build(false))
		haystack := []byte("abc5def9")

		if got := s.Next(haystack, 0); got != 3 {
			t.Errorf("Next(0) = %d, want 3", got)
		}
		if got := s.Next(haystack, 4); got != 7 {
			t.Errorf("Next(4) = %d, want 7", got)
		}
		if got := s.Next([]byte("no digits"), 0); got != -1 {
			t.Errorf("Next on digit-free input = %d, want -1", got)
		}
	})
}

func TestBuildAhoCorasick(t *testing.T) {
	lits := [][]byte{[]byte("foo"), []byte("bar")}
	ac, err := BuildAhoCorasick(lits)
	if err != nil {
		t.Fatalf("BuildAhoCorasick failed: %v", err)
	}

	tests := []struct {
		haystack string
		at       int
		want     int
	}{
		{"xxfoo", 0, 2},
		{"barfoo", 0, 0},
		{"barfoo", 1, 3},
		{"none here", 0, -1},
		{"", 0, -1},
	}
	for _, tt := range tests {
		if got := ac.Find([]byte(tt.haystack), tt.at); got != tt.want {
			t.Errorf("Find(%q, %d) = %d, want %d", tt.haystack, tt.at, got, tt.want)
		}
	}
}
