// Command rex is a grep-style line matcher built on the rex library.
//
// Usage:
//
//	rex [flags] PATTERN [FILE...]
//
// With no files, rex reads standard input. Exit status is 0 when any line
// matched, 1 when none did, and 2 on usage or I/O errors.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/coregx/rex"
)

var (
	engineName = flag.String("engine", "dfa", "matcher engine: nfa or dfa")
	lineNums   = flag.Bool("n", false, "prefix matching lines with line numbers")
	countOnly  = flag.Bool("c", false, "print only a count of matching lines")
	invert     = flag.Bool("v", false, "select non-matching lines")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rex [flags] PATTERN [FILE...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	var engine rex.Engine
	switch *engineName {
	case "nfa":
		engine = rex.EngineNFA
	case "dfa":
		engine = rex.EngineDFA
	default:
		fmt.Fprintf(os.Stderr, "rex: unknown engine %q\n", *engineName)
		os.Exit(2)
	}

	re, err := rex.Compile(flag.Arg(0), engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rex: %v\n", err)
		os.Exit(2)
	}

	files := flag.Args()[1:]
	matched := false

	if len(files) == 0 {
		n, err := grep(re, os.Stdin, "", false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rex: stdin: %v\n", err)
			os.Exit(2)
		}
		matched = n > 0
	} else {
		multi := len(files) > 1
		for _, name := range files {
			f, err := os.Open(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "rex: %v\n", err)
				os.Exit(2)
			}
			n, err := grep(re, f, name, multi)
			f.Close()
			if err != nil {
				fmt.Fprintf(os.Stderr, "rex: %s: %v\n", name, err)
				os.Exit(2)
			}
			if n > 0 {
				matched = true
			}
		}
	}

	if !matched {
		os.Exit(1)
	}
}

// grep scans r line by line and prints matching lines (or their count).
// It returns the number of selected lines.
func grep(re *rex.Regex, r io.Reader, name string, showName bool) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if re.Match(line).IsMatched() == *invert {
			continue
		}
		count++
		if *countOnly {
			continue
		}
		printLine(name, showName, lineNo, line)
	}
	if err := scanner.Err(); err != nil {
		return count, err
	}
	if *countOnly {
		if showName {
			fmt.Printf("%s:%d\n", name, count)
		} else {
			fmt.Printf("%d\n", count)
		}
	}
	return count, nil
}

func printLine(name string, showName bool, lineNo int, line []byte) {
	switch {
	case showName && *lineNums:
		fmt.Printf("%s:%d:%s\n", name, lineNo, line)
	case showName:
		fmt.Printf("%s:%s\n", name, line)
	case *lineNums:
		fmt.Printf("%d:%s\n", lineNo, line)
	default:
		fmt.Printf("%s\n", line)
	}
}
