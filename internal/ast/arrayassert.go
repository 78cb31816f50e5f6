package ast

import (
	"fmt"

	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

// ArrayAssertion narrows a Value-typed child to Array(itemType[, length])
// at evaluation time, failing if the runtime value disagrees (spec
// §3/§4.5). Constancy is inherited from the child (spec §3 table).
type ArrayAssertion struct {
	constancy
	ItemType value.Type
	Length   *int
	Child    Node
}

func NewArrayAssertion(itemType value.Type, length *int, child Node) *ArrayAssertion {
	return &ArrayAssertion{constancy: andConstancy(child), ItemType: itemType, Length: length, Child: child}
}

func (a *ArrayAssertion) Type() value.Type { return value.ArrayOf(a.ItemType, a.Length) }

func (a *ArrayAssertion) Evaluate(ctx evalctx.Context) (value.Value, error) {
	v, err := a.Child.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(value.Arr)
	if !ok {
		return nil, fmt.Errorf("expected array, found %s", v.Type())
	}
	if a.Length != nil && len(arr.Items) != *a.Length {
		return nil, fmt.Errorf("expected array of length %d, found length %d", *a.Length, len(arr.Items))
	}
	for i, item := range arr.Items {
		if item.Type().Kind != a.ItemType.Kind {
			return nil, fmt.Errorf("expected array<%s>, found %s at index %d", a.ItemType, item.Type(), i)
		}
	}
	return value.Arr{Items: arr.Items, Item: a.ItemType}, nil
}
