package ast

import (
	"errors"

	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

// ErrorExpr is the supplemented `["error", "message"]` leaf (SPEC_FULL.md
// §C, grounded on original_source's Error::parse): it always fails
// evaluation with the given message, letting style authors mark branches
// of `case`/`match` as unreachable.
type ErrorExpr struct {
	constancy
	Message Node
}

// NewErrorExpr wraps a message-producing subexpression. The declared type
// is Value (top) since evaluation never actually returns a value.
func NewErrorExpr(message Node) *ErrorExpr {
	return &ErrorExpr{constancy: andConstancy(message), Message: message}
}

func (e *ErrorExpr) Type() value.Type { return value.Top }

func (e *ErrorExpr) Evaluate(ctx evalctx.Context) (value.Value, error) {
	msg, err := e.Message.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if s, ok := msg.(value.Str); ok {
		return nil, errors.New(string(s))
	}
	return nil, errors.New(msg.Inspect())
}
