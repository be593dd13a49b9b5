// Package codegen emits a standalone Go matcher for a single pattern.
//
// The pattern is compiled down to a DFA and the generated file embeds its
// transition table together with a search function implementing the same
// leftmost-longest semantics as the library engines. The output has no
// dependencies, not even on rex itself, so it can be vendored into programs
// that match one fixed pattern on a hot path.
package codegen

import (
	"errors"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/rex/dfa"
	"github.com/coregx/rex/nfa"
	"github.com/coregx/rex/syntax"
)

// Config holds the configuration for code generation.
type Config struct {
	// Pattern is the regular expression to compile.
	Pattern string

	// Name is the exported identifier prefix for the generated API.
	// The matcher entry point is <Name>Match.
	Name string

	// Package is the package name of the generated file.
	Package string

	// MaxStates caps DFA construction. Zero means the default ceiling.
	MaxStates uint32
}

// Generate compiles the pattern and renders the generated source file.
func Generate(cfg Config) ([]byte, error) {
	if cfg.Name == "" {
		return nil, errors.New("codegen: Name must not be empty")
	}
	if cfg.Package == "" {
		return nil, errors.New("codegen: Package must not be empty")
	}

	node, err := syntax.Parse(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	n, err := nfa.Compile(node)
	if err != nil {
		return nil, err
	}
	dcfg := dfa.DefaultConfig()
	if cfg.MaxStates > 0 {
		dcfg = dcfg.WithMaxStates(cfg.MaxStates)
	}
	d, err := dfa.Build(n, dcfg)
	if err != nil {
		return nil, err
	}

	f := jen.NewFile(cfg.Package)
	f.HeaderComment("Code generated by rexgen. DO NOT EDIT.")
	f.Comment(fmt.Sprintf("Pattern: %q", cfg.Pattern))
	f.Line()

	emitTables(f, cfg.Name, d)
	emitMatch(f, cfg.Name, cfg.Pattern)

	var buf []byte
	w := &appendWriter{buf: &buf}
	if err := f.Render(w); err != nil {
		return nil, err
	}
	return buf, nil
}

type appendWriter struct {
	buf *[]byte
}

func (w *appendWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

// Acceptance flag bits in the generated accept array. These mirror the
// library DFA: bit 0 accepts anywhere, bit 1 accepts at end of input only.
const (
	genAccept      = 1
	genAcceptAtEnd = 2
)

func emitTables(f *jen.File, name string, d *dfa.DFA) {
	states := d.States()

	table := make([]jen.Code, 0, states*256)
	for s := 0; s < states; s++ {
		for b := 0; b < 256; b++ {
			table = append(table, jen.Lit(uint32(d.Next(dfa.StateID(s), byte(b)))))
		}
	}

	accept := make([]jen.Code, 0, states)
	for s := 0; s < states; s++ {
		var flags uint8
		if d.Accepting(dfa.StateID(s)) {
			flags |= genAccept
		}
		if d.AcceptingAtEnd(dfa.StateID(s)) {
			flags |= genAcceptAtEnd
		}
		accept = append(accept, jen.Lit(flags))
	}

	f.Const().Defs(
		jen.Id(name+"Dead").Uint32().Op("=").Lit(uint32(dfa.Dead)),
		jen.Id(name+"Start").Uint32().Op("=").Lit(uint32(d.StartState())),
		jen.Id(name+"StartMid").Uint32().Op("=").Lit(uint32(d.MidStartState())),
		jen.Id(name+"MatchesEmpty").Bool().Op("=").Lit(d.MatchesEmpty()),
	)
	f.Line()
	f.Var().Id(name + "Table").Op("=").Index(jen.Lit(states * 256)).Uint32().Values(table...)
	f.Line()
	f.Var().Id(name + "Accept").Op("=").Index(jen.Lit(states)).Uint8().Values(accept...)
	f.Line()
}

// emitMatch renders the search loop. The control flow matches
// dfa.DFA.SearchAt with at fixed to 0.
func emitMatch(f *jen.File, name, pattern string) {
	// pos is a constructor so every call site gets a fresh statement tree;
	// jennifer statements must not be reused.
	accepts := func(pos func() *jen.Statement) *jen.Statement {
		return jen.Id(name+"Accept").Index(jen.Id("s")).Op("&").Lit(genAccept).Op("!=").Lit(0).
			Op("||").Parens(
			jen.Id(name+"Accept").Index(jen.Id("s")).Op("&").Lit(genAcceptAtEnd).Op("!=").Lit(0).
				Op("&&").Add(pos()).Op("==").Id("n"),
		)
	}

	f.Comment(fmt.Sprintf("%sMatch reports the leftmost-longest match of %q in input.", name, pattern))
	f.Comment("It returns the half-open span and whether a match was found.")
	f.Func().Id(name+"Match").Params(jen.Id("input").Index().Byte()).Params(jen.Int(), jen.Int(), jen.Bool()).Block(
		jen.Id("n").Op(":=").Len(jen.Id("input")),
		jen.For(jen.Id("pos").Op(":=").Lit(0), jen.Id("pos").Op("<=").Id("n"), jen.Id("pos").Op("++")).Block(
			jen.Var().Id("s").Uint32(),
			jen.If(jen.Id("pos").Op("==").Lit(0)).Block(
				jen.If(jen.Id("n").Op("==").Lit(0)).Block(
					jen.If(jen.Id(name+"MatchesEmpty")).Block(
						jen.Return(jen.Lit(0), jen.Lit(0), jen.True()),
					),
					jen.Break(),
				),
				jen.Id("s").Op("=").Id(name+"Start"),
			).Else().Block(
				jen.Id("s").Op("=").Id(name+"StartMid"),
				jen.If(jen.Id("s").Op("==").Id(name+"Dead")).Block(
					jen.Break(),
				),
			),
			jen.Id("last").Op(":=").Lit(-1),
			jen.If(accepts(func() *jen.Statement { return jen.Id("pos") })).Block(
				jen.Id("last").Op("=").Id("pos"),
			),
			jen.For(jen.Id("i").Op(":=").Id("pos"), jen.Id("i").Op("<").Id("n"), jen.Id("i").Op("++")).Block(
				jen.Id("s").Op("=").Id(name+"Table").Index(
					jen.Int().Parens(jen.Id("s")).Op("*").Lit(256).Op("+").Int().Parens(jen.Id("input").Index(jen.Id("i"))),
				),
				jen.If(jen.Id("s").Op("==").Id(name+"Dead")).Block(
					jen.Break(),
				),
				jen.If(accepts(func() *jen.Statement { return jen.Id("i").Op("+").Lit(1) })).Block(
					jen.Id("last").Op("=").Id("i").Op("+").Lit(1),
				),
			),
			jen.If(jen.Id("last").Op(">=").Lit(0)).Block(
				jen.Return(jen.Id("pos"), jen.Id("last"), jen.True()),
			),
		),
		jen.Return(jen.Lit(-1), jen.Lit(-1), jen.False()),
	)
}
