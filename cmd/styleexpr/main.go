// Command styleexpr parses, classifies, and evaluates map-style expressions
// and legacy stop-functions from the command line: a thin dispatch layer
// over internal/parser, internal/propvalue, and internal/legacy, grounded
// on the teacher's flag-parsing + stdin/file-reading cmd/funxy pattern.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	runID := uuid.New().String()
	var err error
	switch os.Args[1] {
	case "eval":
		err = runEval(os.Args[2:], runID)
	case "check":
		err = runCheck(os.Args[2:], runID)
	case "bench":
		err = runBench(os.Args[2:], runID)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "styleexpr: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "styleexpr[%s]: %v\n", runID, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: styleexpr <subcommand> [flags]

subcommands:
  eval    parse an expression or stop-function and evaluate it once
  check   parse an expression and report diagnostics without evaluating
  bench   parse an expression once, evaluate it N times and report timing`)
}

// readInput reads path, or stdin when path is "-" or empty.
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// colorize wraps s in an ANSI color code only when stdout is a real
// terminal, grounded on the teacher's isatty-gated diagnostic buffering.
func colorize(code, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}
