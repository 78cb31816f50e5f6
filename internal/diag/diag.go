// Package diag implements the shared, append-only error sink that the
// parser writes to, mirroring the teacher's internal/parser usage of its
// (unretrieved) diagnostics package: `ctx.Errors = append(ctx.Errors,
// diagnostics.NewError(code, token, msg))`. This core has no token stream
// to anchor errors to, so an Error carries a Path (child-index breadcrumb,
// spec §3/§6) instead of a source position.
package diag

import "fmt"

// Path is the sequence of child indices from the root of a parsed tree to
// the node that raised an error (spec §6).
type Path []int

// Child returns a new Path with i appended; Path is value-like and cheap
// to copy, matching the parsing-context discipline in spec §4.2.
func (p Path) Child(i int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = i
	return out
}

func (p Path) String() string {
	if len(p) == 0 {
		return "root"
	}
	s := ""
	for _, i := range p {
		s += fmt.Sprintf("[%d]", i)
	}
	return s
}

// Error is one accumulated parse error.
type Error struct {
	Path    Path
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Sink is the shared mutable error accumulator for a single parse call
// (spec §5: "errors from different concurrent parses must live in
// separate sinks"). Not safe for concurrent writes — a parse call is
// single-threaded cooperative per spec §5.
type Sink struct {
	errors []Error
}

// NewSink returns an empty sink.
func NewSink() *Sink { return &Sink{} }

// Add appends a formatted error at path.
func (s *Sink) Add(path Path, format string, args ...interface{}) {
	s.errors = append(s.errors, Error{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Errors returns the accumulated errors in order.
func (s *Sink) Errors() []Error { return s.errors }

// Empty reports whether no errors have been recorded.
func (s *Sink) Empty() bool { return len(s.errors) == 0 }
