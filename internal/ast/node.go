// Package ast implements the expression tree (spec §3): a tagged-union
// Node with one Go type per variant (Literal, Compound, Coalesce, Case,
// Match, Curve, ArrayAssertion, plus the supplemented Error leaf), rather
// than an inheritance hierarchy — dispatch goes through the Node
// interface's methods, matching
// the teacher's Object interface + concrete-struct-per-kind idiom
// (internal/evaluator/object*.go) rather than its visitor-based
// internal/ast package, which models full-language statements this core
// has no use for.
package ast

import (
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

// Node is the common interface every expression tree variant satisfies.
// Nodes are immutable after construction (spec §3 Lifecycle) and safe to
// evaluate concurrently from multiple goroutines (spec §5).
type Node interface {
	// Type returns the node's declared output type.
	Type() value.Type
	// IsFeatureConstant reports whether evaluation is independent of the
	// feature in the evaluation context.
	IsFeatureConstant() bool
	// IsZoomConstant reports whether evaluation is independent of zoom.
	IsZoomConstant() bool
	// Evaluate produces a typed result or an evaluation error.
	Evaluate(ctx evalctx.Context) (value.Value, error)
}

// constancy is embedded by every variant to cache the flags derived from
// children at construction time (spec §3 invariant vi).
type constancy struct {
	featureConst bool
	zoomConst    bool
}

func (c constancy) IsFeatureConstant() bool { return c.featureConst }
func (c constancy) IsZoomConstant() bool    { return c.zoomConst }

// andConstancy folds the AND of children's constancy flags (spec §3 table).
func andConstancy(children ...Node) constancy {
	c := constancy{featureConst: true, zoomConst: true}
	for _, ch := range children {
		if ch == nil {
			continue
		}
		c.featureConst = c.featureConst && ch.IsFeatureConstant()
		c.zoomConst = c.zoomConst && ch.IsZoomConstant()
	}
	return c
}
