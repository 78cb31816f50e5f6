package parser

import (
	"testing"

	"github.com/martykuc/styleexpr/internal/ast"
	"github.com/martykuc/styleexpr/internal/diag"
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/parsectx"
	"github.com/martykuc/styleexpr/internal/value"
)

func parse(t *testing.T, raw interface{}, expected *value.Type) (ast.Node, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	ctx := parsectx.New(sink)
	if expected != nil {
		ctx = ctx.WithExpected(*expected)
	}
	node, ok := Parse(raw, ctx)
	if !ok {
		return nil, sink
	}
	return node, sink
}

func TestParseLiteral(t *testing.T) {
	numT := value.Number
	node, sink := parse(t, []interface{}{"literal", 5.0}, &numT)
	if !sink.Empty() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	v, err := node.Evaluate(evalctx.StaticContext{})
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Num) != 5 {
		t.Fatalf("got %v", v)
	}
}

func TestParseCaseScenario(t *testing.T) {
	raw := []interface{}{
		"case",
		[]interface{}{"==", []interface{}{"get", "t"}, "a"}, 1.0,
		[]interface{}{"==", []interface{}{"get", "t"}, "b"}, 2.0,
		0.0,
	}
	numT := value.Number
	node, sink := parse(t, raw, &numT)
	if !sink.Empty() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	if node.IsFeatureConstant() {
		t.Fatalf("should not be feature-constant")
	}
	if !node.IsZoomConstant() {
		t.Fatalf("should be zoom-constant")
	}
	v, err := node.Evaluate(evalctx.FeatureContext{F: evalctx.MapFeature{Props: map[string]interface{}{"t": "b"}}})
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Num) != 2 {
		t.Fatalf("expected 2, got %v", v)
	}
}

func TestParseMatchDuplicateLabelFails(t *testing.T) {
	raw := []interface{}{
		"match", []interface{}{"get", "n"},
		[]interface{}{1.0, 2.0}, "low",
		[]interface{}{2.0}, "dup",
		"hi",
	}
	strT := value.String
	_, sink := parse(t, raw, &strT)
	if sink.Empty() {
		t.Fatalf("expected duplicate label error")
	}
	found := false
	for _, e := range sink.Errors() {
		if e.Message == "Branch labels must be unique" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'Branch labels must be unique', got %v", sink.Errors())
	}
}

func TestParseMatchScenario(t *testing.T) {
	raw := []interface{}{
		"match", []interface{}{"get", "n"},
		[]interface{}{1.0, 2.0}, "low",
		[]interface{}{3.0}, "mid",
		"hi",
	}
	strT := value.String
	node, sink := parse(t, raw, &strT)
	if !sink.Empty() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	cases := []struct {
		n    float64
		want string
	}{{2, "low"}, {3, "mid"}, {4, "hi"}}
	for _, c := range cases {
		v, err := node.Evaluate(evalctx.FeatureContext{F: evalctx.MapFeature{Props: map[string]interface{}{"n": c.n}}})
		if err != nil {
			t.Fatal(err)
		}
		if string(v.(value.Str)) != c.want {
			t.Fatalf("n=%v: got %v, want %s", c.n, v, c.want)
		}
	}
}

func TestParseCoalesceMissingDefault(t *testing.T) {
	raw := []interface{}{"coalesce", []interface{}{"get", "x"}, 0.0}
	node, sink := parse(t, raw, nil)
	if !sink.Empty() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	v, err := node.Evaluate(evalctx.FeatureContext{F: evalctx.MapFeature{Props: map[string]interface{}{}}})
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Num) != 0 {
		t.Fatalf("expected 0, got %v", v)
	}
}

func TestParseMatchFractionalLabelFails(t *testing.T) {
	raw := []interface{}{
		"match", []interface{}{"get", "n"},
		[]interface{}{1.5}, "low",
		"hi",
	}
	strT := value.String
	_, sink := parse(t, raw, &strT)
	if sink.Empty() {
		t.Fatalf("expected a fractional label error")
	}
	found := false
	for _, e := range sink.Errors() {
		if e.Message == "Numeric branch labels must be integer values" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'Numeric branch labels must be integer values', got %v", sink.Errors())
	}
}

func TestParseMatchLabelOutOfRangeFails(t *testing.T) {
	raw := []interface{}{
		"match", []interface{}{"get", "n"},
		[]interface{}{9007199254740993.0}, "low",
		"hi",
	}
	strT := value.String
	_, sink := parse(t, raw, &strT)
	if sink.Empty() {
		t.Fatalf("expected an out-of-range label error")
	}
	found := false
	for _, e := range sink.Errors() {
		if e.Message == "Numeric values must be no larger than 9007199254740991" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'Numeric values must be no larger than 9007199254740991', got %v", sink.Errors())
	}
}

func TestParseMatchMixedLabelTypesFails(t *testing.T) {
	raw := []interface{}{
		"match", []interface{}{"get", "n"},
		[]interface{}{"a"}, "low",
		[]interface{}{2.0}, "hi",
		"other",
	}
	strT := value.String
	_, sink := parse(t, raw, &strT)
	if sink.Empty() {
		t.Fatalf("expected a mixed-label-type error")
	}
	found := false
	for _, e := range sink.Errors() {
		if e.Message == "Branch labels must be either all numbers or all strings" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the all-numbers-or-all-strings message, got %v", sink.Errors())
	}
}

func TestUnknownOperator(t *testing.T) {
	_, sink := parse(t, []interface{}{"bogus", 1.0}, nil)
	if sink.Empty() {
		t.Fatalf("expected an error for unknown operator")
	}
}

func TestSubtypeMismatch(t *testing.T) {
	strT := value.String
	_, sink := parse(t, []interface{}{"literal", 5.0}, &strT)
	if sink.Empty() {
		t.Fatalf("expected a subtype mismatch error")
	}
}

func TestExpectedAnExpression(t *testing.T) {
	_, sink := parse(t, map[string]interface{}{"foo": "bar"}, nil)
	if sink.Empty() {
		t.Fatalf("expected 'Expected an expression' error")
	}
}
