// Package propvalue implements property-value dispatch (spec §4.7) and the
// external JSON-like interface (spec §6): given a parsed expression,
// classify it as a constant, camera, source, or composite function, and
// given a raw style-layer fragment, decide which of those to build.
//
// Grounded on _examples/original_source's
// include/mbgl/style/conversion/data_driven_property_value.hpp (the
// Converter<DataDrivenPropertyValue<T>> specialization), transcribed from
// its isUndefined/isObject/objectMember dispatch chain into Go.
package propvalue

import (
	"github.com/martykuc/styleexpr/internal/ast"
	"github.com/martykuc/styleexpr/internal/diag"
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/parsectx"
	"github.com/martykuc/styleexpr/internal/parser"
	"github.com/martykuc/styleexpr/internal/value"
)

// Kind classifies a parsed expression by its constancy flags (spec §4.7,
// GLOSSARY).
type Kind int

const (
	KindConstant Kind = iota
	KindCamera
	KindSource
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindCamera:
		return "camera"
	case KindSource:
		return "source"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Classify implements spec §4.7's classification table.
func Classify(n ast.Node) Kind {
	switch {
	case n.IsFeatureConstant() && n.IsZoomConstant():
		return KindConstant
	case n.IsFeatureConstant():
		return KindCamera
	case n.IsZoomConstant():
		return KindSource
	default:
		return KindComposite
	}
}

// ConstantValue extracts the value of a fully-constant expression by
// evaluating it against a dummy context that performs no zoom or feature
// access (spec §4.7).
func ConstantValue(n ast.Node) (value.Value, error) {
	return n.Evaluate(evalctx.StaticContext{})
}

// DataDrivenPropertyValue is the outcome of converting one raw style-layer
// property fragment (spec §6): exactly one of Undefined/Constant/Node is
// meaningful. Undefined is set on its own (Kind is then left at its zero
// value); otherwise Kind selects Constant (KindConstant) or Node.
type DataDrivenPropertyValue struct {
	Undefined bool
	Kind      Kind
	Constant  value.Value
	Node      ast.Node
}

// ScalarConverter converts a bare scalar property value (no function, no
// expression) into a typed constant, per spec §6.
type ScalarConverter func(raw interface{}) (value.Value, error)

// Convert implements the external-interface dispatch of spec §6:
//
//	undefined                    -> undefined property value
//	scalar                       -> constant via scalarConv
//	{"expression": ...}          -> parse_expression, then classify
//	object without "property"    -> legacy camera (zoom-only) stops function
//	object with "property"       -> try composite, then source
func Convert(raw interface{}, outType value.Type, scalarConv ScalarConverter) (DataDrivenPropertyValue, []diag.Error) {
	if raw == nil {
		return DataDrivenPropertyValue{Undefined: true}, nil
	}

	obj, isObject := raw.(map[string]interface{})
	if !isObject {
		v, err := scalarConv(raw)
		if err != nil {
			return DataDrivenPropertyValue{}, []diag.Error{{Message: err.Error()}}
		}
		return DataDrivenPropertyValue{Kind: KindConstant, Constant: v}, nil
	}

	if exprRaw, ok := obj["expression"]; ok {
		sink := diag.NewSink()
		ctx := parsectx.New(sink).WithExpected(outType)
		node, ok := parser.Parse(exprRaw, ctx)
		if !ok {
			return DataDrivenPropertyValue{}, sink.Errors()
		}
		kind := Classify(node)
		if kind == KindConstant {
			v, err := ConstantValue(node)
			if err != nil {
				return DataDrivenPropertyValue{}, []diag.Error{{Message: err.Error()}}
			}
			return DataDrivenPropertyValue{Kind: KindConstant, Constant: v}, nil
		}
		return DataDrivenPropertyValue{Kind: kind, Node: node}, nil
	}

	if _, hasProperty := obj["property"]; !hasProperty {
		node, errs := legacyCameraFunction(obj, outType)
		if errs != nil {
			return DataDrivenPropertyValue{}, errs
		}
		return DataDrivenPropertyValue{Kind: KindCamera, Node: node}, nil
	}

	node, errs := legacyCompositeFunction(obj, outType)
	if errs == nil {
		return DataDrivenPropertyValue{Kind: KindComposite, Node: node}, nil
	}
	node, srcErrs := legacySourceFunction(obj, outType)
	if srcErrs != nil {
		return DataDrivenPropertyValue{}, append(errs, srcErrs...)
	}
	return DataDrivenPropertyValue{Kind: KindSource, Node: node}, nil
}

// legacyCameraFunction, legacyCompositeFunction, and legacySourceFunction
// (implemented in legacydecode.go) are thin seams over internal/legacy's
// lowering, kept here rather than in internal/legacy because they
// interpret the raw stops-document shape that only the style-layer
// boundary understands; internal/legacy knows only the already-decoded
// Stop records.
