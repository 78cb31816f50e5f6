package ast

import (
	"fmt"

	"github.com/martykuc/styleexpr/internal/config"
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

// Compound is the built-in call node (spec §3 table). Constancy is the AND
// of children's flags except for the documented leaf overrides: `get`,
// `has`, `properties`, `geometry-type`, and `id` are never
// feature-constant; `zoom` is never zoom-constant.
type Compound struct {
	constancy
	Op       string
	Children []Node
	OutType  value.Type
}

// NewCompound builds a Compound node for Op over children, applying the
// leaf-rule overrides from spec §3's Compound row.
func NewCompound(op string, children []Node, outType value.Type) *Compound {
	c := andConstancy(children...)
	switch op {
	case config.OpGet, config.OpProperties, config.OpGeometryType, config.OpID, config.OpHas:
		c.featureConst = false
	case config.OpZoom:
		c.zoomConst = false
	}
	return &Compound{constancy: c, Op: op, Children: children, OutType: outType}
}

func (c *Compound) Type() value.Type { return c.OutType }

func (c *Compound) Evaluate(ctx evalctx.Context) (value.Value, error) {
	switch c.Op {
	case config.OpZoom:
		return value.Num(ctx.Zoom()), nil
	case config.OpGet:
		return c.evalGet(ctx)
	case config.OpHas:
		return c.evalHas(ctx)
	case config.OpProperties:
		return c.evalProperties(ctx)
	case config.OpGeometryType:
		return c.evalGeometryType(ctx)
	case config.OpID:
		return c.evalID(ctx)
	case config.OpNumber:
		return c.evalAssert(ctx, value.Number)
	case config.OpString:
		return c.evalAssert(ctx, value.String)
	case config.OpBoolean:
		return c.evalAssert(ctx, value.Boolean)
	case config.OpEQ, config.OpNE, config.OpLT, config.OpLE, config.OpGT, config.OpGE:
		return c.evalCompare(ctx)
	case config.OpAll:
		return c.evalAll(ctx)
	case config.OpAny:
		return c.evalAny(ctx)
	case config.OpNot:
		return c.evalNot(ctx)
	case config.OpAt:
		return c.evalAt(ctx)
	default:
		return nil, fmt.Errorf("unimplemented operator %q", c.Op)
	}
}

func (c *Compound) propertyName(ctx evalctx.Context) (string, error) {
	nv, err := c.Children[0].Evaluate(ctx)
	if err != nil {
		return "", err
	}
	s, ok := nv.(value.Str)
	if !ok {
		return "", fmt.Errorf("property name must be a string, got %s", nv.Type())
	}
	return string(s), nil
}

func (c *Compound) feature(ctx evalctx.Context) (evalctx.Feature, error) {
	f, ok := ctx.Feature()
	if !ok {
		return nil, fmt.Errorf("%s: no feature in this context", c.Op)
	}
	return f, nil
}

func (c *Compound) evalGet(ctx evalctx.Context) (value.Value, error) {
	name, err := c.propertyName(ctx)
	if err != nil {
		return nil, err
	}
	f, err := c.feature(ctx)
	if err != nil {
		return nil, err
	}
	raw, ok := f.Property(name)
	if !ok {
		return value.Null{}, nil
	}
	return FromGoValue(raw), nil
}

func (c *Compound) evalHas(ctx evalctx.Context) (value.Value, error) {
	name, err := c.propertyName(ctx)
	if err != nil {
		return nil, err
	}
	f, err := c.feature(ctx)
	if err != nil {
		return nil, err
	}
	_, ok := f.Property(name)
	return value.Bool(ok), nil
}

func (c *Compound) evalProperties(ctx evalctx.Context) (value.Value, error) {
	f, err := c.feature(ctx)
	if err != nil {
		return nil, err
	}
	out := value.Obj{}
	for k, v := range f.Properties() {
		out[k] = FromGoValue(v)
	}
	return out, nil
}

func (c *Compound) evalGeometryType(ctx evalctx.Context) (value.Value, error) {
	f, err := c.feature(ctx)
	if err != nil {
		return nil, err
	}
	return value.Str(f.GeometryType()), nil
}

func (c *Compound) evalID(ctx evalctx.Context) (value.Value, error) {
	f, err := c.feature(ctx)
	if err != nil {
		return nil, err
	}
	id, ok := f.ID()
	if !ok {
		return value.Null{}, nil
	}
	return FromGoValue(id), nil
}

func (c *Compound) evalAssert(ctx evalctx.Context, want value.Type) (value.Value, error) {
	v, err := c.Children[0].Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if v.Type().Kind != want.Kind {
		return nil, fmt.Errorf("expected value to be of type %s, but found %s", want, v.Type())
	}
	return v, nil
}

func (c *Compound) evalCompare(ctx evalctx.Context) (value.Value, error) {
	av, err := c.Children[0].Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	bv, err := c.Children[1].Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	cmp, err := compareValues(av, bv)
	if err != nil {
		return nil, err
	}
	switch c.Op {
	case config.OpEQ:
		return value.Bool(cmp == 0), nil
	case config.OpNE:
		return value.Bool(cmp != 0), nil
	case config.OpLT:
		return value.Bool(cmp < 0), nil
	case config.OpLE:
		return value.Bool(cmp <= 0), nil
	case config.OpGT:
		return value.Bool(cmp > 0), nil
	case config.OpGE:
		return value.Bool(cmp >= 0), nil
	}
	return nil, fmt.Errorf("unreachable comparison operator %q", c.Op)
}

func compareValues(a, b value.Value) (int, error) {
	switch av := a.(type) {
	case value.Num:
		bv, ok := b.(value.Num)
		if !ok {
			return 0, fmt.Errorf("cannot compare %s with %s", a.Type(), b.Type())
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case value.Str:
		bv, ok := b.(value.Str)
		if !ok {
			return 0, fmt.Errorf("cannot compare %s with %s", a.Type(), b.Type())
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case value.Bool:
		bv, ok := b.(value.Bool)
		if !ok {
			return 0, fmt.Errorf("cannot compare %s with %s", a.Type(), b.Type())
		}
		if av == bv {
			return 0, nil
		}
		if !bool(av) && bool(bv) {
			return -1, nil
		}
		return 1, nil
	default:
		return 0, fmt.Errorf("values of type %s are not comparable", a.Type())
	}
}

func (c *Compound) evalAll(ctx evalctx.Context) (value.Value, error) {
	for _, child := range c.Children {
		v, err := child.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		b, ok := v.(value.Bool)
		if !ok {
			return nil, fmt.Errorf("all: expected boolean, found %s", v.Type())
		}
		if !bool(b) {
			return value.Bool(false), nil
		}
	}
	return value.Bool(true), nil
}

func (c *Compound) evalAny(ctx evalctx.Context) (value.Value, error) {
	for _, child := range c.Children {
		v, err := child.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		b, ok := v.(value.Bool)
		if !ok {
			return nil, fmt.Errorf("any: expected boolean, found %s", v.Type())
		}
		if bool(b) {
			return value.Bool(true), nil
		}
	}
	return value.Bool(false), nil
}

func (c *Compound) evalNot(ctx evalctx.Context) (value.Value, error) {
	v, err := c.Children[0].Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	b, ok := v.(value.Bool)
	if !ok {
		return nil, fmt.Errorf("!: expected boolean, found %s", v.Type())
	}
	return value.Bool(!bool(b)), nil
}

func (c *Compound) evalAt(ctx evalctx.Context) (value.Value, error) {
	iv, err := c.Children[0].Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	av, err := c.Children[1].Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	idxNum, ok := iv.(value.Num)
	if !ok {
		return nil, fmt.Errorf("at: index must be a number, got %s", iv.Type())
	}
	arr, ok := av.(value.Arr)
	if !ok {
		return nil, fmt.Errorf("at: expected array, got %s", av.Type())
	}
	idx := int(idxNum)
	if idx < 0 || idx >= len(arr.Items) {
		return nil, fmt.Errorf("at: index %d out of range [0, %d)", idx, len(arr.Items))
	}
	return arr.Items[idx], nil
}

// FromGoValue converts a plain Go value (as produced by JSON/YAML decoding
// or a Feature's attribute map) into the typed Value domain.
func FromGoValue(v interface{}) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Null{}
	case bool:
		return value.Bool(x)
	case float64:
		return value.Num(x)
	case float32:
		return value.Num(float64(x))
	case int:
		return value.Num(float64(x))
	case int64:
		return value.Num(float64(x))
	case string:
		return value.Str(x)
	case map[string]interface{}:
		out := value.Obj{}
		for k, v := range x {
			out[k] = FromGoValue(v)
		}
		return out
	case []interface{}:
		items := make([]value.Value, len(x))
		for i, e := range x {
			items[i] = FromGoValue(e)
		}
		return value.Arr{Items: items, Item: value.Top}
	default:
		return value.Null{}
	}
}
