package ast

import (
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

// Literal is the Value leaf: feature-constant and zoom-constant always
// (spec §3 table).
type Literal struct {
	constancy
	Val value.Value
}

// NewLiteral wraps v, typed by its dynamic type (spec §4.3 step 2).
func NewLiteral(v value.Value) *Literal {
	return &Literal{constancy: constancy{featureConst: true, zoomConst: true}, Val: v}
}

func (l *Literal) Type() value.Type { return l.Val.Type() }

func (l *Literal) Evaluate(evalctx.Context) (value.Value, error) {
	return l.Val, nil
}
