// Command rexgen compiles a pattern into a standalone Go source file.
//
// The generated file embeds the pattern's DFA and a zero-dependency Match
// function with the same leftmost-longest semantics as the library.
//
// Usage:
//
//	rexgen -pattern 'a(b|c)*d' -name Route -pkg routes -o route_match.go
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/coregx/rex/codegen"
)

var (
	pattern   = flag.String("pattern", "", "pattern to compile (required)")
	name      = flag.String("name", "Pattern", "identifier prefix for the generated API")
	pkg       = flag.String("pkg", "main", "package name of the generated file")
	output    = flag.String("o", "", "output file (default stdout)")
	maxStates = flag.Uint("max-states", 0, "DFA state ceiling (0 = default)")
)

func main() {
	flag.Parse()

	if *pattern == "" {
		fmt.Fprintln(os.Stderr, "rexgen: -pattern is required")
		flag.Usage()
		os.Exit(2)
	}

	src, err := codegen.Generate(codegen.Config{
		Pattern:   *pattern,
		Name:      *name,
		Package:   *pkg,
		MaxStates: uint32(*maxStates),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "rexgen: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(*output, src, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "rexgen: %v\n", err)
		os.Exit(1)
	}
}
