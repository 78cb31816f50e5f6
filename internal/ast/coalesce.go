package ast

import (
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

// Coalesce evaluates children in order, recovering from a non-final
// child's evaluation error by trying the next one (spec §4.5,
// "coalesce-catch"). Requires at least one child (spec §3 invariant iv).
type Coalesce struct {
	constancy
	OutType  value.Type
	Children []Node
}

func NewCoalesce(outType value.Type, children []Node) *Coalesce {
	return &Coalesce{constancy: andConstancy(children...), OutType: outType, Children: children}
}

func (c *Coalesce) Type() value.Type { return c.OutType }

func (c *Coalesce) Evaluate(ctx evalctx.Context) (value.Value, error) {
	last := len(c.Children) - 1
	for i, child := range c.Children {
		v, err := child.Evaluate(ctx)
		if err != nil {
			if i == last {
				return nil, err
			}
			continue
		}
		if _, isNull := v.(value.Null); isNull && i < last {
			continue
		}
		return v, nil
	}
	return value.Null{}, nil
}
