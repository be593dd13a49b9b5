// Package rex is a byte-oriented regular expression library with two
// interchangeable matching engines.
//
// A pattern compiles through a fixed pipeline: the text is parsed into an
// AST, the AST is translated into a Thompson NFA, and, for the DFA engine,
// the NFA is determinized by subset construction. Matching either simulates
// the NFA frontier-by-frontier or walks the DFA transition table; both
// report the same leftmost-longest span for every input.
//
// The alphabet is raw 8-bit bytes. '.' matches any byte except newline
// (0x0A) and no UTF-8 decoding occurs anywhere; callers that need Unicode
// semantics must preprocess their input.
//
// Basic usage:
//
//	re, err := rex.Compile("a(b|c)*d", rex.EngineDFA)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := re.Match([]byte("xxabbcd"))
//	if m.IsMatched() {
//	    fmt.Println(m.Start(), m.End()) // 2 7
//	}
//
// Matching is ReDoS-safe by construction: neither engine backtracks, so
// worst-case work is O(len(input)² · NFA states) for an unanchored NFA scan
// and O(len(input)²) table lookups for an unanchored DFA scan.
package rex

import (
	"errors"

	"github.com/coregx/rex/dfa"
	"github.com/coregx/rex/nfa"
	"github.com/coregx/rex/prefilter"
	"github.com/coregx/rex/syntax"
)

// Engine selects the matcher runtime at compile time. It cannot change
// after compilation.
type Engine uint8

const (
	// EngineNFA simulates the Thompson NFA directly. Compilation is
	// linear in the pattern; matching tracks a frontier of states.
	EngineNFA Engine = iota

	// EngineDFA determinizes the NFA up front. Matching is a table walk,
	// but construction can hit the state ceiling on pathological
	// patterns, failing with an InternalLimit error.
	EngineDFA
)

// String returns the engine name.
func (e Engine) String() string {
	switch e {
	case EngineNFA:
		return "NFA"
	case EngineDFA:
		return "DFA"
	default:
		return "Unknown"
	}
}

// Config controls compilation.
type Config struct {
	// MaxDFAStates caps subset construction for EngineDFA.
	// Default: 10,000.
	MaxDFAStates uint32

	// EnablePrefilter enables literal-based start-position skipping.
	// Prefilters never change match results. Default: true.
	EnablePrefilter bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDFAStates:    10_000,
		EnablePrefilter: true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxDFAStates == 0 {
		return errors.New("rex: MaxDFAStates must be > 0")
	}
	return nil
}

// WithMaxDFAStates returns a new config with the specified DFA state ceiling.
func (c Config) WithMaxDFAStates(maxStates uint32) Config {
	c.MaxDFAStates = maxStates
	return c
}

// WithPrefilter returns a new config with prefiltering enabled or disabled.
func (c Config) WithPrefilter(enabled bool) Config {
	c.EnablePrefilter = enabled
	return c
}

// Regex is a compiled regular expression.
//
// A Regex is immutable and safe for concurrent use: Match keeps no state
// between calls and simulator scratch space is created per call.
type Regex struct {
	pattern string
	engine  Engine
	ast     *syntax.Node
	nfa     *nfa.NFA
	dfa     *dfa.DFA

	// At most one prefilter is active.
	ac      *prefilter.AhoCorasick
	skipper *prefilter.ByteSkipper
}

// Compile compiles a pattern for the given engine with default
// configuration.
//
// On failure the returned error is a *CompileError carrying the error kind
// and the byte position in the pattern.
func Compile(pattern string, engine Engine) (*Regex, error) {
	return CompileWithConfig(pattern, engine, DefaultConfig())
}

// MustCompile is like Compile but panics on error.
// Use for patterns known to be valid at program start.
func MustCompile(pattern string, engine Engine) *Regex {
	re, err := Compile(pattern, engine)
	if err != nil {
		panic("rex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := rex.DefaultConfig().WithMaxDFAStates(50_000)
//	re, err := rex.CompileWithConfig("(a|b)*c", rex.EngineDFA, config)
func CompileWithConfig(pattern string, engine Engine, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ast, err := syntax.Parse(pattern)
	if err != nil {
		var perr *syntax.ParseError
		if errors.As(err, &perr) {
			return nil, &CompileError{
				kind: parseErrorKind(perr.Kind),
				pos:  perr.Pos,
				msg:  perr.Kind.String(),
			}
		}
		return nil, err
	}

	n, err := nfa.Compile(ast)
	if err != nil {
		return nil, err
	}

	re := &Regex{
		pattern: pattern,
		engine:  engine,
		ast:     ast,
		nfa:     n,
	}

	if engine == EngineDFA {
		d, err := dfa.Build(n, dfa.DefaultConfig().WithMaxStates(config.MaxDFAStates))
		if err != nil {
			if errors.Is(err, dfa.ErrStateLimit) {
				return nil, &CompileError{
					kind: InternalLimit,
					pos:  0,
					msg:  "DFA state limit exceeded",
				}
			}
			return nil, err
		}
		re.dfa = d
	}

	if config.EnablePrefilter && !n.IsAnchored() {
		// A prefilter for a ^-anchored pattern would find candidates past
		// position 0 that the anchor forbids, so those are excluded above.
		if lits := prefilter.AlternationLiterals(ast); len(lits) >= 2 {
			if ac, err := prefilter.BuildAhoCorasick(lits); err == nil {
				re.ac = ac
			}
		} else if first, ok := prefilter.FirstBytes(ast); ok {
			re.skipper = prefilter.NewByteSkipper(first)
		}
	}

	return re, nil
}

// Pattern returns the source pattern text.
func (r *Regex) Pattern() string { return r.pattern }

// Engine returns the engine the regex was compiled for.
func (r *Regex) Engine() Engine { return r.engine }

// String returns the source pattern text.
func (r *Regex) String() string { return r.pattern }

// Match reports whether and where the pattern matches input.
//
// The reported span is leftmost-longest: the earliest possible start, and
// the longest match at that start. Anchors refer to the boundaries of the
// input passed here; callers wanting per-line anchoring must call Match per
// line. Match never fails.
func (r *Regex) Match(input []byte) Result {
	at := 0
	switch {
	case r.ac != nil:
		// Pure literal alternation: the automaton finds the leftmost
		// candidate start; no match can begin before it.
		pos := r.ac.Find(input, 0)
		if pos < 0 {
			return Result{}
		}
		at = pos
	case r.skipper != nil:
		pos := r.skipper.Next(input, 0)
		if pos < 0 {
			return Result{}
		}
		at = pos
	}

	var start, end int
	var ok bool
	if r.engine == EngineDFA {
		start, end, ok = r.dfa.SearchAt(input, at)
	} else {
		start, end, ok = nfa.NewSimulator(r.nfa).SearchAt(input, at)
	}
	if !ok {
		return Result{}
	}
	return Result{matched: true, start: start, end: end}
}

// MatchString is like Match but takes a string.
func (r *Regex) MatchString(s string) Result {
	return r.Match([]byte(s))
}

// FindIndex returns a two-element slice holding the match span, or nil when
// the pattern does not match.
func (r *Regex) FindIndex(input []byte) []int {
	m := r.Match(input)
	if !m.IsMatched() {
		return nil
	}
	return []int{m.start, m.end}
}

// Result is the outcome of a single Match call.
//
// The span is half-open: input[Start():End()] is the matched text.
type Result struct {
	matched    bool
	start, end int
}

// IsMatched reports whether the pattern matched.
func (m Result) IsMatched() bool { return m.matched }

// Start returns the byte offset where the match begins, or -1 when there
// was no match.
func (m Result) Start() int {
	if !m.matched {
		return -1
	}
	return m.start
}

// End returns the byte offset just past the match, or -1 when there was no
// match.
func (m Result) End() int {
	if !m.matched {
		return -1
	}
	return m.end
}
