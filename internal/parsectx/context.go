// Package parsectx implements the parsing context described in spec §3/§4.2:
// a cheaply clonable, value-like carrier for the expected output type, the
// child-index breadcrumb, a shared error sink, and a tree-depth counter.
package parsectx

import (
	"github.com/martykuc/styleexpr/internal/config"
	"github.com/martykuc/styleexpr/internal/diag"
	"github.com/martykuc/styleexpr/internal/value"
)

// Context carries per-descent parsing state. It is a plain value: creating
// a child context copies the parent and appends an index, matching the
// teacher's convention of passing small value-like context structs through
// recursive-descent parse routines (internal/parser/types.go in the pack).
type Context struct {
	Expected *value.Type
	Path     diag.Path
	Sink     *diag.Sink
	Depth    int
}

// New returns a root context with no expected type.
func New(sink *diag.Sink) Context {
	return Context{Sink: sink}
}

// WithExpected returns a copy of c with the expected output type set.
func (c Context) WithExpected(t value.Type) Context {
	c.Expected = &t
	return c
}

// WithoutExpected returns a copy of c with no expected output type.
func (c Context) WithoutExpected() Context {
	c.Expected = nil
	return c
}

// Child returns the context for the i-th child of the current node.
func (c Context) Child(i int) Context {
	c.Path = c.Path.Child(i)
	c.Depth++
	return c
}

// Error appends a formatted error at the context's current path.
func (c Context) Error(format string, args ...interface{}) {
	c.Sink.Add(c.Path, format, args...)
}

// TooDeep reports whether the context's depth already exceeds the
// recommended tree-depth bound (spec §5: "recommended limit: 255").
func (c Context) TooDeep() bool {
	return c.Depth > config.MaxExpressionDepth
}

// CheckSubtype runs value.CheckSubtype against c's expected type (if any)
// and, on mismatch, appends the standard error message at c's path. It
// returns false on mismatch so callers can abort the enclosing parse.
func (c Context) CheckSubtype(actual value.Type) bool {
	if c.Expected == nil {
		return true
	}
	if err := value.CheckSubtype(*c.Expected, actual); err != nil {
		c.Error("%s", err.Error())
		return false
	}
	return true
}
