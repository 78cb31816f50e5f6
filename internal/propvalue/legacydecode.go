package propvalue

import (
	"fmt"

	"github.com/martykuc/styleexpr/internal/ast"
	"github.com/martykuc/styleexpr/internal/config"
	"github.com/martykuc/styleexpr/internal/diag"
	"github.com/martykuc/styleexpr/internal/legacy"
	"github.com/martykuc/styleexpr/internal/value"
)

// stopsFunctionKind selects which of the four legacy.*Stops lowerings a
// raw stops-document maps to (spec §4.6 / GLOSSARY "Stops").
type stopsFunctionKind string

const (
	kindExponential stopsFunctionKind = "exponential"
	kindInterval    stopsFunctionKind = "interval"
	kindCategorical stopsFunctionKind = "categorical"
	kindIdentity    stopsFunctionKind = "identity"
)

func decodeKind(obj map[string]interface{}) stopsFunctionKind {
	if t, ok := obj["type"].(string); ok {
		switch stopsFunctionKind(t) {
		case kindInterval, kindCategorical, kindIdentity, kindExponential:
			return stopsFunctionKind(t)
		}
	}
	return kindExponential
}

func decodeValueAs(raw interface{}, t value.Type) (value.Value, error) {
	if t.Kind == value.KindColor {
		if s, ok := raw.(string); ok {
			c, err := value.ParseColor(s)
			if err != nil {
				return nil, err
			}
			return value.Clr(c), nil
		}
	}
	return ast.FromGoValue(raw), nil
}

func decodeDefault(obj map[string]interface{}, outType value.Type) (value.Value, error) {
	raw, ok := obj["default"]
	if !ok || raw == nil {
		return nil, nil
	}
	return decodeValueAs(raw, outType)
}

// decodeFlatStops parses a "stops": [[key, value], ...] array where key is
// the zoom/property number the stop activates at (exponential/interval).
func decodeFlatStops(obj map[string]interface{}, outType value.Type) ([]legacy.Stop, error) {
	raw, ok := obj["stops"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("stops: expected an array")
	}
	out := make([]legacy.Stop, 0, len(raw))
	for _, entry := range raw {
		pair, ok := entry.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("each stop must be a [key, value] pair")
		}
		key, ok := pair[0].(float64)
		if !ok {
			return nil, fmt.Errorf("stop key must be a number")
		}
		v, err := decodeValueAs(pair[1], outType)
		if err != nil {
			return nil, err
		}
		out = append(out, legacy.Stop{Key: key, Value: v})
	}
	return out, nil
}

// decodeLabelStops parses a "stops": [[label, value], ...] array where
// label is a scalar of homogeneous type (bool, number, or string), per
// spec §3 invariant ii / §4.6 CategoricalStops.
func decodeLabelStops(obj map[string]interface{}, outType value.Type) ([]legacy.Stop, []interface{}, error) {
	raw, ok := obj["stops"].([]interface{})
	if !ok {
		return nil, nil, fmt.Errorf("stops: expected an array")
	}
	stops := make([]legacy.Stop, 0, len(raw))
	labels := make([]interface{}, 0, len(raw))
	for _, entry := range raw {
		pair, ok := entry.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, nil, fmt.Errorf("each stop must be a [label, value] pair")
		}
		v, err := decodeValueAs(pair[1], outType)
		if err != nil {
			return nil, nil, err
		}
		switch l := pair[0].(type) {
		case bool:
			labels = append(labels, l)
		case float64:
			n := value.Num(l)
			if !n.IsSafeInteger() {
				return nil, nil, fmt.Errorf("Numeric values must be no larger than %d", config.SafeIntegerBound)
			}
			labels = append(labels, int64(l))
		case string:
			labels = append(labels, l)
		default:
			return nil, nil, fmt.Errorf("branch label must be a boolean, number, or string")
		}
		stops = append(stops, legacy.Stop{Value: v})
	}
	return stops, labels, nil
}

// buildLegacyNode lowers a flat (non-nested) stops document for the given
// property ("" means zoom-keyed) into an expression tree.
func buildLegacyNode(obj map[string]interface{}, property string, outType value.Type) (ast.Node, error) {
	def, err := decodeDefault(obj, outType)
	if err != nil {
		return nil, err
	}
	switch decodeKind(obj) {
	case kindInterval:
		stops, err := decodeFlatStops(obj, outType)
		if err != nil {
			return nil, err
		}
		return legacy.IntervalStops{Property: property, Stops: stops, Default: def, OutputType: outType}.Lower(), nil
	case kindCategorical:
		stops, labels, err := decodeLabelStops(obj, outType)
		if err != nil {
			return nil, err
		}
		if property == "" {
			return nil, fmt.Errorf("categorical functions require a property")
		}
		return legacy.CategoricalStops{Property: property, Stops: stops, Labels: labels, Default: def, OutputType: outType}.Lower(), nil
	case kindIdentity:
		if property == "" {
			return nil, fmt.Errorf("identity functions require a property")
		}
		return legacy.IdentityStops{Property: property, Default: def, OutputType: outType}.Lower(), nil
	default: // exponential
		base := 1.0
		if b, ok := obj["base"].(float64); ok {
			base = b
		}
		stops, err := decodeFlatStops(obj, outType)
		if err != nil {
			return nil, err
		}
		return legacy.ExponentialStops{Property: property, Base: base, Stops: stops, Default: def, OutputType: outType}.Lower(), nil
	}
}

func legacyCameraFunction(obj map[string]interface{}, outType value.Type) (ast.Node, []diag.Error) {
	node, err := buildLegacyNode(obj, "", outType)
	if err != nil {
		return nil, []diag.Error{{Message: err.Error()}}
	}
	return node, nil
}

func legacySourceFunction(obj map[string]interface{}, outType value.Type) (ast.Node, []diag.Error) {
	property, _ := obj["property"].(string)
	node, err := buildLegacyNode(obj, property, outType)
	if err != nil {
		return nil, []diag.Error{{Message: err.Error()}}
	}
	return node, nil
}

// legacyCompositeFunction handles the zoom-and-property-dependent shape:
// "stops": [[zoom, <nested property stops doc>], ...]. It lowers to a
// Curve(zoom, ...) whose stop bodies are each a lowered property function,
// matching the original's nested composite-function stops.
func legacyCompositeFunction(obj map[string]interface{}, outType value.Type) (ast.Node, []diag.Error) {
	property, _ := obj["property"].(string)
	if property == "" {
		return nil, []diag.Error{{Message: "composite functions require a property"}}
	}
	raw, ok := obj["stops"].([]interface{})
	if !ok {
		return nil, []diag.Error{{Message: "stops: expected an array"}}
	}
	stops := make([]ast.CurveStop, 0, len(raw))
	for _, entry := range raw {
		pair, ok := entry.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, []diag.Error{{Message: "each composite stop must be a [zoom, propertyStops] pair"}}
		}
		zoom, ok := pair[0].(float64)
		if !ok {
			return nil, []diag.Error{{Message: "composite stop zoom must be a number"}}
		}
		nested, ok := pair[1].(map[string]interface{})
		if !ok {
			return nil, []diag.Error{{Message: "composite stop value must be a nested property-stops object"}}
		}
		body, err := buildLegacyNode(nested, property, outType)
		if err != nil {
			return nil, []diag.Error{{Message: err.Error()}}
		}
		stops = append(stops, ast.CurveStop{Key: zoom, Body: body})
	}
	base := 1.0
	if b, ok := obj["base"].(float64); ok {
		base = b
	}
	kind := config.InterpExponential
	if decodeKind(obj) == kindInterval {
		kind = config.InterpStep
	}
	curve := ast.NewCurve(outType, ast.NewCompound(config.OpZoom, nil, value.Number), kind, base, stops)
	return curve, nil
}
