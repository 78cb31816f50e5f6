// Package legacy converts stop-based style functions into expression
// trees built from the same nodes the parser produces (spec §4.6),
// grounded directly on the teacher-adjacent original C++
// (_examples/original_source/include/mbgl/style/function/convert.hpp,
// struct Convert) rather than on anything in funvibe/funxy — the
// teacher's language has no equivalent "legacy function" concept, so this
// package transcribes convert.hpp's four toExpression overloads into Go
// using the ast package's constructors.
package legacy

import (
	"github.com/martykuc/styleexpr/internal/ast"
	"github.com/martykuc/styleexpr/internal/config"
	"github.com/martykuc/styleexpr/internal/value"
)

// Stop is one (key, value) pair of a legacy stops function.
type Stop struct {
	Key   float64
	Value value.Value
}

// ExponentialStops lowers to Curve<Exponential> (spec §4.6).
type ExponentialStops struct {
	Property     string // empty means zoom-keyed
	Base         float64
	Stops        []Stop
	Default      value.Value // nil means no default
	OutputType   value.Type
}

// IntervalStops lowers to Curve<Step>.
type IntervalStops struct {
	Property   string
	Stops      []Stop
	Default    value.Value
	OutputType value.Type
}

// CategoricalStops lowers to Case (boolean labels) or Match (int/string).
type CategoricalStops struct {
	Property   string
	Stops      []Stop // only Stop.Value is used; the label of Stops[i] is Labels[i]
	Labels     []interface{} // bool, int64, or string, parallel to Stops
	Default    value.Value
	OutputType value.Type
}

// IdentityStops lowers to a typed get(), or an ArrayAssertion around
// get("value", property) when OutputType is an array type.
type IdentityStops struct {
	Property   string
	Default    value.Value
	OutputType value.Type
}

func makeGet(typeName, property string) ast.Node {
	name := ast.NewLiteral(value.Str(property))
	get := ast.NewCompound(config.OpGet, []ast.Node{name}, value.Top)
	switch typeName {
	case "number":
		return ast.NewCompound(config.OpNumber, []ast.Node{get}, value.Number)
	case "string":
		return ast.NewCompound(config.OpString, []ast.Node{get}, value.String)
	case "boolean":
		return ast.NewCompound(config.OpBoolean, []ast.Node{get}, value.Boolean)
	default:
		return get
	}
}

func makeZoom() ast.Node {
	return ast.NewCompound(config.OpZoom, nil, value.Number)
}

func makeCoalesceToDefault(main ast.Node, outType value.Type, def value.Value) ast.Node {
	if def == nil {
		return main
	}
	return ast.NewCoalesce(outType, []ast.Node{main, ast.NewLiteral(def)})
}

func curveStopsFromValues(stops []Stop) []ast.CurveStop {
	out := make([]ast.CurveStop, len(stops))
	for i, s := range stops {
		out[i] = ast.CurveStop{Key: s.Key, Body: ast.NewLiteral(s.Value)}
	}
	return out
}

func inputTypeName(t value.Type) string {
	switch t.Kind {
	case value.KindString:
		return "string"
	case value.KindBoolean:
		return "boolean"
	default:
		return "number"
	}
}

// Lower builds Curve<Exponential>(input, stops, base), with input =
// get(property) when Property is set, else zoom(). A non-nil Default
// wraps the curve in coalesce(curve, default) (spec §4.6).
func (s ExponentialStops) Lower() ast.Node {
	var input ast.Node
	if s.Property == "" {
		input = makeZoom()
	} else {
		input = makeGet(inputTypeName(s.OutputType), s.Property)
	}
	curve := ast.NewCurve(s.OutputType, input, config.InterpExponential, s.Base, curveStopsFromValues(s.Stops))
	return makeCoalesceToDefault(curve, s.OutputType, s.Default)
}

// Lower builds Curve<Step>(input, stops) with the same input/default
// treatment as ExponentialStops.
func (s IntervalStops) Lower() ast.Node {
	var input ast.Node
	if s.Property == "" {
		input = makeZoom()
	} else {
		input = makeGet(inputTypeName(s.OutputType), s.Property)
	}
	curve := ast.NewCurve(s.OutputType, input, config.InterpStep, 1, curveStopsFromValues(s.Stops))
	return makeCoalesceToDefault(curve, s.OutputType, s.Default)
}

// Lower dispatches on the first label's dynamic type: boolean labels lower
// to a Case on get("boolean", property) whose branch returns the true body
// and whose otherwise is the false body (a null literal for an absent
// label); integer labels to Match<int64> and string labels to
// Match<string>, each with a null otherwise. The result is wrapped in
// coalesce(..., default) if a default is present (spec §4.6).
func (s CategoricalStops) Lower() ast.Node {
	if len(s.Labels) == 0 {
		return ast.NewLiteral(value.Null{})
	}
	var expr ast.Node
	switch s.Labels[0].(type) {
	case bool:
		input := makeGet("boolean", s.Property)
		var trueBody, falseBody ast.Node = ast.NewLiteral(value.Null{}), ast.NewLiteral(value.Null{})
		for i, lbl := range s.Labels {
			if b, ok := lbl.(bool); ok {
				if b {
					trueBody = ast.NewLiteral(s.Stops[i].Value)
				} else {
					falseBody = ast.NewLiteral(s.Stops[i].Value)
				}
			}
		}
		expr = ast.NewCase(s.OutputType, []ast.CaseBranch{{Test: input, Body: trueBody}}, falseBody)
	case int64:
		input := makeGet("number", s.Property)
		bodies := make([]ast.Node, len(s.Labels))
		table := map[interface{}]int{}
		for i, lbl := range s.Labels {
			bodies[i] = ast.NewLiteral(s.Stops[i].Value)
			table[lbl] = i
		}
		expr = ast.NewMatch(s.OutputType, input, bodies, table, ast.NewLiteral(value.Null{}), true)
	default: // string
		input := makeGet("string", s.Property)
		bodies := make([]ast.Node, len(s.Labels))
		table := map[interface{}]int{}
		for i, lbl := range s.Labels {
			bodies[i] = ast.NewLiteral(s.Stops[i].Value)
			table[lbl] = i
		}
		expr = ast.NewMatch(s.OutputType, input, bodies, table, ast.NewLiteral(value.Null{}), false)
	}
	return makeCoalesceToDefault(expr, s.OutputType, s.Default)
}

// Lower builds a typed get(property), or an ArrayAssertion around
// get("value", property) when OutputType is an array (spec §4.6).
func (s IdentityStops) Lower() ast.Node {
	var input ast.Node
	switch s.OutputType.Kind {
	case value.KindString:
		input = makeGet("string", s.Property)
	case value.KindNumber:
		input = makeGet("number", s.Property)
	case value.KindBoolean:
		input = makeGet("boolean", s.Property)
	case value.KindArray:
		raw := makeGet("value", s.Property)
		input = ast.NewArrayAssertion(*s.OutputType.ItemType, s.OutputType.N, raw)
	default:
		input = ast.NewLiteral(value.Null{})
	}
	return makeCoalesceToDefault(input, s.OutputType, s.Default)
}
