package parser

import (
	"errors"
	"fmt"

	"github.com/martykuc/styleexpr/internal/ast"
	"github.com/martykuc/styleexpr/internal/config"
	"github.com/martykuc/styleexpr/internal/parsectx"
	"github.com/martykuc/styleexpr/internal/value"
)

// parseChildAt parses args[i] as child i of the enclosing node, with the
// given expected type (nil for "no expectation").
func parseChildAt(args []interface{}, i int, expected *value.Type, ctx parsectx.Context) (ast.Node, bool) {
	childCtx := ctx.Child(i)
	if expected != nil {
		childCtx = childCtx.WithExpected(*expected)
	} else {
		childCtx = childCtx.WithoutExpected()
	}
	return Parse(args[i], childCtx)
}

// parseCoalesce implements spec §4.4 `coalesce`.
func parseCoalesce(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
	if len(args) < 1 {
		ctx.Error("Expected at least 1 argument, but found %d instead", len(args))
		return nil, false
	}
	outType := ctx.Expected
	children := make([]ast.Node, 0, len(args))
	for i := range args {
		child, ok := parseChildAt(args, i, outType, ctx)
		if !ok {
			return nil, false
		}
		if outType == nil {
			t := child.Type()
			outType = &t
		}
		children = append(children, child)
	}
	ot := value.Top
	if outType != nil {
		ot = *outType
	}
	return ast.NewCoalesce(ot, children), true
}

// parseCase implements spec §4.4 `case`: shape
// ["case", test1, out1, ..., testN, outN, otherwise].
func parseCase(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
	if len(args) < 3 || len(args)%2 == 0 {
		ctx.Error("Expected an odd number of arguments >= 3, but found %d instead", len(args))
		return nil, false
	}
	boolT := value.Boolean
	var outType *value.Type = ctx.Expected
	branches := make([]ast.CaseBranch, 0, len(args)/2)
	for i := 0; i+1 < len(args)-1; i += 2 {
		test, ok := parseChildAt(args, i, &boolT, ctx)
		if !ok {
			return nil, false
		}
		body, ok := parseChildAt(args, i+1, outType, ctx)
		if !ok {
			return nil, false
		}
		if outType == nil {
			t := body.Type()
			outType = &t
		}
		branches = append(branches, ast.CaseBranch{Test: test, Body: body})
	}
	otherwise, ok := parseChildAt(args, len(args)-1, outType, ctx)
	if !ok {
		return nil, false
	}
	ot := value.Top
	if outType != nil {
		ot = *outType
	}
	return ast.NewCase(ot, branches, otherwise), true
}

// parseMatch implements spec §4.4 `match`: shape
// ["match", input, label1, body1, ..., labelN, bodyN, otherwise].
// Labels may be a scalar or an array of scalars; all labels across all
// branches must be unique and homogeneously typed (spec §3 invariant ii).
func parseMatch(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
	if len(args) < 4 || len(args)%2 != 0 {
		ctx.Error("Expected an even number of arguments >= 4, but found %d instead", len(args))
		return nil, false
	}
	input, ok := parseChildAt(args, 0, nil, ctx)
	if !ok {
		return nil, false
	}

	var isInt *bool
	table := map[interface{}]int{}
	bodies := make([]ast.Node, 0)
	var outType *value.Type = ctx.Expected

	numBranches := (len(args) - 2) / 2
	for b := 0; b < numBranches; b++ {
		labelIdx := 1 + b*2
		bodyIdx := labelIdx + 1
		labels, err := normalizeLabels(args[labelIdx])
		if err != nil {
			ctx.Child(labelIdx).Error("%s", err.Error())
			return nil, false
		}
		if len(labels) == 0 {
			ctx.Child(labelIdx).Error("Expected at least one branch label")
			return nil, false
		}
		bodyCtx := ctx.Child(bodyIdx)
		var bodyExpected *value.Type
		if outType != nil {
			bodyExpected = outType
		}
		var bodyCtxFull parsectx.Context
		if bodyExpected != nil {
			bodyCtxFull = bodyCtx.WithExpected(*bodyExpected)
		} else {
			bodyCtxFull = bodyCtx.WithoutExpected()
		}
		body, ok := Parse(args[bodyIdx], bodyCtxFull)
		if !ok {
			return nil, false
		}
		if outType == nil {
			t := body.Type()
			outType = &t
		}
		idx := len(bodies)
		bodies = append(bodies, body)

		for _, lbl := range labels {
			switch l := lbl.(type) {
			case int64:
				if isInt == nil {
					b := true
					isInt = &b
				} else if !*isInt {
					ctx.Child(labelIdx).Error("Branch labels must be either all numbers or all strings")
					return nil, false
				}
				if _, dup := table[l]; dup {
					ctx.Child(labelIdx).Error("Branch labels must be unique")
					return nil, false
				}
				table[l] = idx
			case string:
				if isInt == nil {
					b := false
					isInt = &b
				} else if *isInt {
					ctx.Child(labelIdx).Error("Branch labels must be either all numbers or all strings")
					return nil, false
				}
				if _, dup := table[l]; dup {
					ctx.Child(labelIdx).Error("Branch labels must be unique")
					return nil, false
				}
				table[l] = idx
			default:
				ctx.Child(labelIdx).Error("Branch labels must be either all numbers or all strings")
				return nil, false
			}
		}
	}

	otherwiseIdx := len(args) - 1
	var otherwiseExpected *value.Type
	if outType != nil {
		otherwiseExpected = outType
	}
	otherwise, ok := parseChildAt(args, otherwiseIdx, otherwiseExpected, ctx)
	if !ok {
		return nil, false
	}
	if outType == nil {
		t := otherwise.Type()
		outType = &t
	}

	ot := value.Top
	if outType != nil {
		ot = *outType
	}
	isIntFlag := true
	if isInt != nil {
		isIntFlag = *isInt
	}
	return ast.NewMatch(ot, input, bodies, table, otherwise, isIntFlag), true
}

var (
	errNonIntegerLabel = errors.New("Numeric branch labels must be integer values")
	errLabelOutOfRange = fmt.Errorf("Numeric values must be no larger than %d", config.SafeIntegerBound)
	errLabelBadType    = errors.New("Branch labels must be either a number or a string")
)

// normalizeLabels accepts a single scalar label or an array of scalar
// labels and returns them as int64 or string, per spec §4.4: "each scalar
// must be an integer number (exact integer, within safe range) or a
// string." A fractional number, an out-of-range number, and a label that
// is neither a number nor a string are each reported with a distinct
// message, rather than collapsing them into "no labels".
func normalizeLabels(raw interface{}) ([]interface{}, error) {
	var scalars []interface{}
	if arr, ok := raw.([]interface{}); ok {
		scalars = arr
	} else {
		scalars = []interface{}{raw}
	}
	out := make([]interface{}, 0, len(scalars))
	for _, s := range scalars {
		switch v := s.(type) {
		case float64:
			if v != float64(int64(v)) {
				return nil, errNonIntegerLabel
			}
			if v < -config.SafeIntegerBound || v > config.SafeIntegerBound {
				return nil, errLabelOutOfRange
			}
			out = append(out, int64(v))
		case string:
			out = append(out, v)
		default:
			return nil, errLabelBadType
		}
	}
	return out, nil
}

func parseNullary(op string, outType value.Type) opParser {
	return func(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
		if len(args) != 0 {
			ctx.Error("Expected 0 arguments, but found %d instead", len(args))
			return nil, false
		}
		return ast.NewCompound(op, nil, outType), true
	}
}

// parseArgsAsGetLike implements `get`/`has`: one required property-name
// argument (expected String), matching spec §4.4's `get(property-name)`.
func parseArgsAsGetLike(op string, outType value.Type) opParser {
	return func(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
		if len(args) != 1 {
			ctx.Error("Expected 1 argument, but found %d instead", len(args))
			return nil, false
		}
		strT := value.String
		name, ok := parseChildAt(args, 0, &strT, ctx)
		if !ok {
			return nil, false
		}
		return ast.NewCompound(op, []ast.Node{name}, outType), true
	}
}

// parseAssertion implements `number`/`string`/`boolean`: narrow a Value
// argument to the concrete type, failing at evaluation if it disagrees
// (spec §4.4).
func parseAssertion(op string, outType value.Type) opParser {
	return func(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
		if len(args) != 1 {
			ctx.Error("Expected 1 argument, but found %d instead", len(args))
			return nil, false
		}
		top := value.Top
		child, ok := parseChildAt(args, 0, &top, ctx)
		if !ok {
			return nil, false
		}
		return ast.NewCompound(op, []ast.Node{child}, outType), true
	}
}

func parseComparison(op string) opParser {
	return func(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
		if len(args) != 2 {
			ctx.Error("Expected 2 arguments, but found %d instead", len(args))
			return nil, false
		}
		a, ok := parseChildAt(args, 0, nil, ctx)
		if !ok {
			return nil, false
		}
		b, ok := parseChildAt(args, 1, nil, ctx)
		if !ok {
			return nil, false
		}
		return ast.NewCompound(op, []ast.Node{a, b}, value.Boolean), true
	}
}

func parseVariadicBoolean(op string) opParser {
	return func(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
		if len(args) < 1 {
			ctx.Error("Expected at least 1 argument, but found %d instead", len(args))
			return nil, false
		}
		boolT := value.Boolean
		children := make([]ast.Node, 0, len(args))
		for i := range args {
			c, ok := parseChildAt(args, i, &boolT, ctx)
			if !ok {
				return nil, false
			}
			children = append(children, c)
		}
		return ast.NewCompound(op, children, value.Boolean), true
	}
}

func parseUnaryBoolean(op string) opParser {
	return func(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
		if len(args) != 1 {
			ctx.Error("Expected 1 argument, but found %d instead", len(args))
			return nil, false
		}
		boolT := value.Boolean
		c, ok := parseChildAt(args, 0, &boolT, ctx)
		if !ok {
			return nil, false
		}
		return ast.NewCompound(op, []ast.Node{c}, value.Boolean), true
	}
}

// parseAt implements `["at", index, array]`.
func parseAt(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
	if len(args) != 2 {
		ctx.Error("Expected 2 arguments, but found %d instead", len(args))
		return nil, false
	}
	numT := value.Number
	idx, ok := parseChildAt(args, 0, &numT, ctx)
	if !ok {
		return nil, false
	}
	top := value.Top
	arr, ok := parseChildAt(args, 1, &top, ctx)
	if !ok {
		return nil, false
	}
	return ast.NewCompound(config.OpAt, []ast.Node{idx, arr}, value.Top), true
}

// parseError implements the supplemented `["error", message]` leaf
// (SPEC_FULL.md §C).
func parseError(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
	if len(args) != 1 {
		ctx.Error("Expected 1 argument, but found %d instead", len(args))
		return nil, false
	}
	strT := value.String
	msg, ok := parseChildAt(args, 0, &strT, ctx)
	if !ok {
		return nil, false
	}
	return ast.NewErrorExpr(msg), true
}

// parseArrayAssertionOp implements `["array", itemType, value]` or
// `["array", itemType, length, value]` (spec §3 ArrayAssertion).
func parseArrayAssertionOp(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
	if len(args) != 2 && len(args) != 3 {
		ctx.Error("Expected 2 or 3 arguments, but found %d instead", len(args))
		return nil, false
	}
	itemTypeName, ok := args[0].(string)
	if !ok {
		ctx.Child(0).Error("Expected a type name")
		return nil, false
	}
	itemType, ok := namedScalarType(itemTypeName)
	if !ok {
		ctx.Child(0).Error("Unknown array item type %q", itemTypeName)
		return nil, false
	}
	var length *int
	childIdx := 1
	if len(args) == 3 {
		n, ok := args[1].(float64)
		if !ok {
			ctx.Child(1).Error("Expected an array length")
			return nil, false
		}
		li := int(n)
		length = &li
		childIdx = 2
	}
	top := value.Top
	child, ok := parseChildAt(args, childIdx, &top, ctx)
	if !ok {
		return nil, false
	}
	return ast.NewArrayAssertion(itemType, length, child), true
}

func namedScalarType(name string) (value.Type, bool) {
	switch name {
	case "number":
		return value.Number, true
	case "string":
		return value.String, true
	case "boolean":
		return value.Boolean, true
	default:
		return value.Type{}, false
	}
}
