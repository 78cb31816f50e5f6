package ast

import (
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

// Match dispatches on an input expression's runtime value against a table
// of integer or string labels (spec §3/§4.4/§4.5). Per the design note in
// spec §9 ("store bodies in a secondary owning vector and have the
// label-to-body table hold indices into it"), branch bodies live in
// Bodies and Table maps each label to an index, so co-labelled entries
// share one body without reference counting.
type Match struct {
	constancy
	OutType   value.Type
	Input     Node
	Bodies    []Node
	Table     map[interface{}]int
	Otherwise Node
	IsInt     bool // true: int64 labels, false: string labels
}

// NewMatch builds a Match node. table maps each label value (int64 or
// string, matching IsInt) to the index of its body within bodies.
func NewMatch(outType value.Type, input Node, bodies []Node, table map[interface{}]int, otherwise Node, isInt bool) *Match {
	all := make([]Node, 0, len(bodies)+2)
	all = append(all, input)
	all = append(all, bodies...)
	all = append(all, otherwise)
	return &Match{
		constancy: andConstancy(all...),
		OutType:   outType,
		Input:     input,
		Bodies:    bodies,
		Table:     table,
		Otherwise: otherwise,
		IsInt:     isInt,
	}
}

func (m *Match) Type() value.Type { return m.OutType }

func (m *Match) Evaluate(ctx evalctx.Context) (value.Value, error) {
	in, err := m.Input.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	var key interface{}
	matched := false
	if m.IsInt {
		if n, ok := in.(value.Num); ok && n.IsSafeInteger() {
			key = int64(n)
			matched = true
		}
	} else {
		if s, ok := in.(value.Str); ok {
			key = string(s)
			matched = true
		}
	}
	if matched {
		if idx, ok := m.Table[key]; ok {
			return m.Bodies[idx].Evaluate(ctx)
		}
	}
	return m.Otherwise.Evaluate(ctx)
}
