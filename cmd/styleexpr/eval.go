package main

import (
	"flag"
	"fmt"

	"github.com/martykuc/styleexpr/internal/ast"
	"github.com/martykuc/styleexpr/internal/diag"
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/propvalue"
	"github.com/martykuc/styleexpr/internal/value"
)

// scalarConverter builds a propvalue.ScalarConverter that coerces a bare
// JSON/YAML scalar to outType, matching the style-layer boundary's scalar
// property values (spec §6).
func scalarConverter(outType value.Type) propvalue.ScalarConverter {
	return func(raw interface{}) (value.Value, error) {
		if outType.Kind == value.KindColor {
			if s, ok := raw.(string); ok {
				c, err := value.ParseColor(s)
				if err != nil {
					return nil, err
				}
				return value.Clr(c), nil
			}
		}
		v := ast.FromGoValue(raw)
		if err := value.CheckSubtype(outType, v.Type()); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// loadPropertyValue reads path, decodes it as JSON or YAML, and runs it
// through the full style-layer property-value dispatch (spec §6): bare
// scalar, `{"expression": ...}`, or a legacy stops document.
func loadPropertyValue(path string, outType value.Type) (propvalue.DataDrivenPropertyValue, []diag.Error, error) {
	raw, err := readInput(path)
	if err != nil {
		return propvalue.DataDrivenPropertyValue{}, nil, err
	}
	doc, err := decodeDocument(raw)
	if err != nil {
		return propvalue.DataDrivenPropertyValue{}, nil, err
	}
	dpv, errs := propvalue.Convert(doc, outType, scalarConverter(outType))
	return dpv, errs, nil
}

func printConvertErrors(errs []diag.Error) {
	for _, e := range errs {
		fmt.Println(colorize("31", e.Error()))
	}
}

func runCheck(args []string, runID string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	file := fs.String("f", "-", "input file (- for stdin)")
	outType := fs.String("type", "*", "expected output type: number, string, boolean, color, *")
	fs.Parse(args)

	et, err := parseOutType(*outType)
	if err != nil {
		return err
	}
	dpv, errs, err := loadPropertyValue(*file, et)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		printConvertErrors(errs)
		return fmt.Errorf("%d parse error(s)", len(errs))
	}
	switch {
	case dpv.Undefined:
		fmt.Println("ok: undefined")
	case dpv.Kind == propvalue.KindConstant:
		fmt.Printf("ok: constant %s\n", dpv.Constant.Inspect())
	default:
		fmt.Printf("ok: kind=%s type=%s feature-constant=%v zoom-constant=%v\n",
			dpv.Kind, dpv.Node.Type().String(), dpv.Node.IsFeatureConstant(), dpv.Node.IsZoomConstant())
	}
	return nil
}

func runEval(args []string, runID string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	file := fs.String("f", "-", "input file (- for stdin)")
	outType := fs.String("type", "*", "expected output type: number, string, boolean, color, *")
	zoom := fs.Float64("zoom", 0, "current zoom level")
	props := fs.String("props", "", "feature properties as a JSON/YAML object file (- for stdin, empty for no feature)")
	fs.Parse(args)

	et, err := parseOutType(*outType)
	if err != nil {
		return err
	}
	dpv, errs, err := loadPropertyValue(*file, et)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		printConvertErrors(errs)
		return fmt.Errorf("%d parse error(s)", len(errs))
	}
	if dpv.Undefined {
		fmt.Println("null")
		return nil
	}
	if dpv.Kind == propvalue.KindConstant {
		fmt.Println(dpv.Constant.Inspect())
		return nil
	}

	ctx, err := buildEvalContext(*zoom, *props)
	if err != nil {
		return err
	}
	v, err := dpv.Node.Evaluate(ctx)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	fmt.Println(v.Inspect())
	return nil
}

func buildEvalContext(zoom float64, propsPath string) (evalctx.Context, error) {
	if propsPath == "" {
		return evalctx.StaticContext{Z: zoom}, nil
	}
	raw, err := readInput(propsPath)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	props, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("-props document must be a JSON/YAML object")
	}
	return evalctx.FeatureContext{Z: zoom, F: evalctx.MapFeature{Props: props}}, nil
}

func parseOutType(name string) (value.Type, error) {
	switch name {
	case "", "*":
		return value.Top, nil
	case "number":
		return value.Number, nil
	case "string":
		return value.String, nil
	case "boolean":
		return value.Boolean, nil
	case "color":
		return value.Color, nil
	default:
		return value.Type{}, fmt.Errorf("unknown -type %q", name)
	}
}
