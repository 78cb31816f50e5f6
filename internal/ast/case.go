package ast

import (
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

// CaseBranch pairs a boolean test with the body evaluated when it is true.
type CaseBranch struct {
	Test Node
	Body Node
}

// Case evaluates tests in order, returning the first matching branch's
// body, or the otherwise clause if none match (spec §3/§4.5). Requires at
// least one branch and an otherwise clause (spec §3 invariant v).
type Case struct {
	constancy
	OutType   value.Type
	Branches  []CaseBranch
	Otherwise Node
}

func NewCase(outType value.Type, branches []CaseBranch, otherwise Node) *Case {
	all := make([]Node, 0, len(branches)*2+1)
	for _, b := range branches {
		all = append(all, b.Test, b.Body)
	}
	all = append(all, otherwise)
	return &Case{constancy: andConstancy(all...), OutType: outType, Branches: branches, Otherwise: otherwise}
}

func (c *Case) Type() value.Type { return c.OutType }

func (c *Case) Evaluate(ctx evalctx.Context) (value.Value, error) {
	for _, b := range c.Branches {
		tv, err := b.Test.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		bv, ok := tv.(value.Bool)
		if ok && bool(bv) {
			return b.Body.Evaluate(ctx)
		}
	}
	return c.Otherwise.Evaluate(ctx)
}
