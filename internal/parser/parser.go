// Package parser implements the type-checked recursive-descent expression
// parser (spec §4.3/§4.4): Parse dispatches on the first element of an
// array-shaped input to a per-operator routine, mirroring the teacher's
// token-dispatch parser (internal/parser/*.go in the pack) but keyed by
// operator name instead of token type, since the input here is a parsed
// JSON/YAML value rather than a token stream.
package parser

import (
	"github.com/martykuc/styleexpr/internal/ast"
	"github.com/martykuc/styleexpr/internal/config"
	"github.com/martykuc/styleexpr/internal/parsectx"
	"github.com/martykuc/styleexpr/internal/value"
)

// opParser parses the tail of an operator array (everything after the
// operator name) under ctx, returning the constructed node or false with
// one or more errors appended to ctx.Sink.
type opParser func(args []interface{}, ctx parsectx.Context) (ast.Node, bool)

var operators map[string]opParser

func init() {
	operators = map[string]opParser{
		config.OpLiteral:       parseLiteralOp,
		config.OpCoalesce:      parseCoalesce,
		config.OpCase:          parseCase,
		config.OpMatch:         parseMatch,
		config.OpGet:           parseArgsAsGetLike(config.OpGet, value.Top),
		config.OpHas:           parseArgsAsGetLike(config.OpHas, value.Boolean),
		config.OpProperties:    parseNullary(config.OpProperties, value.Object),
		config.OpGeometryType:  parseNullary(config.OpGeometryType, value.String),
		config.OpID:            parseNullary(config.OpID, value.Top),
		config.OpZoom:          parseNullary(config.OpZoom, value.Number),
		config.OpNumber:        parseAssertion(config.OpNumber, value.Number),
		config.OpString:        parseAssertion(config.OpString, value.String),
		config.OpBoolean:       parseAssertion(config.OpBoolean, value.Boolean),
		config.OpArray:         parseArrayAssertionOp,
		config.OpEQ:            parseComparison(config.OpEQ),
		config.OpNE:            parseComparison(config.OpNE),
		config.OpLT:            parseComparison(config.OpLT),
		config.OpLE:            parseComparison(config.OpLE),
		config.OpGT:            parseComparison(config.OpGT),
		config.OpGE:            parseComparison(config.OpGE),
		config.OpAll:           parseVariadicBoolean(config.OpAll),
		config.OpAny:           parseVariadicBoolean(config.OpAny),
		config.OpNot:           parseUnaryBoolean(config.OpNot),
		config.OpAt:            parseAt,
		config.OpError:         parseError,
	}
}

// Parse is the entry point (spec §4.3). raw is the decoded JSON/YAML value
// (nil, bool, float64, string, []interface{}, or map[string]interface{}).
func Parse(raw interface{}, ctx parsectx.Context) (ast.Node, bool) {
	if ctx.TooDeep() {
		ctx.Error("expression nested too deeply")
		return nil, false
	}

	if arr, ok := raw.([]interface{}); ok && len(arr) > 0 {
		if opName, ok := arr[0].(string); ok {
			if p, known := operators[opName]; known {
				node, ok := p(arr[1:], ctx)
				if !ok {
					return nil, false
				}
				if !ctx.CheckSubtype(node.Type()) {
					return nil, false
				}
				return node, true
			}
			ctx.Error("Unknown operator %q", opName)
			return nil, false
		}
	}

	if isScalar(raw) {
		node := ast.NewLiteral(ast.FromGoValue(raw))
		if !ctx.CheckSubtype(node.Type()) {
			return nil, false
		}
		return node, true
	}

	ctx.Error("Expected an expression")
	return nil, false
}

func isScalar(raw interface{}) bool {
	switch raw.(type) {
	case nil, bool, float64, string:
		return true
	default:
		return false
	}
}

// parseLiteralOp implements `["literal", value]`: the argument is escaped
// verbatim as a Value, with no further parsing (spec §6).
func parseLiteralOp(args []interface{}, ctx parsectx.Context) (ast.Node, bool) {
	if len(args) != 1 {
		ctx.Error("Expected 1 argument, but found %d instead", len(args))
		return nil, false
	}
	return ast.NewLiteral(ast.FromGoValue(args[0])), true
}
