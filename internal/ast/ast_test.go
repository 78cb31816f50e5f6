package ast

import (
	"testing"

	"github.com/martykuc/styleexpr/internal/config"
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

func feat(props map[string]interface{}) evalctx.Context {
	return evalctx.FeatureContext{Z: 10, F: evalctx.MapFeature{Props: props}}
}

func TestLiteralConstancy(t *testing.T) {
	l := NewLiteral(value.Num(5))
	if !l.IsFeatureConstant() || !l.IsZoomConstant() {
		t.Fatalf("literal should be fully constant")
	}
	v, err := l.Evaluate(evalctx.StaticContext{Z: 0})
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Num) != 5 {
		t.Fatalf("got %v", v)
	}
}

func TestCaseEvaluate(t *testing.T) {
	getT := NewCompound(config.OpGet, []Node{NewLiteral(value.Str("t"))}, value.Top)
	eqA := NewCompound(config.OpEQ, []Node{getT, NewLiteral(value.Str("a"))}, value.Boolean)
	eqB := NewCompound(config.OpEQ, []Node{getT, NewLiteral(value.Str("b"))}, value.Boolean)
	c := NewCase(value.Number, []CaseBranch{
		{Test: eqA, Body: NewLiteral(value.Num(1))},
		{Test: eqB, Body: NewLiteral(value.Num(2))},
	}, NewLiteral(value.Num(0)))

	if c.IsFeatureConstant() {
		t.Fatalf("case depending on get() must not be feature-constant")
	}
	if !c.IsZoomConstant() {
		t.Fatalf("case here should be zoom-constant")
	}

	v, err := c.Evaluate(feat(map[string]interface{}{"t": "b"}))
	if err != nil || v.(value.Num) != 2 {
		t.Fatalf("expected 2, got %v err=%v", v, err)
	}
	v, err = c.Evaluate(feat(map[string]interface{}{"t": "z"}))
	if err != nil || v.(value.Num) != 0 {
		t.Fatalf("expected 0, got %v err=%v", v, err)
	}
}

func TestMatchEvaluate(t *testing.T) {
	input := NewCompound(config.OpGet, []Node{NewLiteral(value.Str("n"))}, value.Top)
	bodies := []Node{NewLiteral(value.Str("low")), NewLiteral(value.Str("mid"))}
	table := map[interface{}]int{int64(1): 0, int64(2): 0, int64(3): 1}
	m := NewMatch(value.String, input, bodies, table, NewLiteral(value.Str("hi")), true)

	cases := []struct {
		n    interface{}
		want string
	}{
		{2, "low"},
		{3, "mid"},
		{4, "hi"},
	}
	for _, c := range cases {
		v, err := m.Evaluate(feat(map[string]interface{}{"n": c.n}))
		if err != nil {
			t.Fatal(err)
		}
		if string(v.(value.Str)) != c.want {
			t.Fatalf("n=%v: got %v, want %s", c.n, v, c.want)
		}
	}
}

func TestCurveExponential(t *testing.T) {
	input := NewCompound(config.OpGet, []Node{NewLiteral(value.Str("p"))}, value.Top)
	stops := []CurveStop{
		{Key: 0, Body: NewLiteral(value.Num(0))},
		{Key: 10, Body: NewLiteral(value.Num(100))},
	}
	curve := NewCurve(value.Number, input, config.InterpExponential, 1, stops)
	v, err := curve.Evaluate(feat(map[string]interface{}{"p": 5.0}))
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Num) != 50 {
		t.Fatalf("expected 50, got %v", v)
	}
}

func TestCoalesceCatchesMissingGet(t *testing.T) {
	co := NewCoalesce(value.Number, []Node{
		NewCompound(config.OpGet, []Node{NewLiteral(value.Str("x"))}, value.Top),
		NewLiteral(value.Num(0)),
	})
	v, err := co.Evaluate(feat(map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Num) != 0 {
		t.Fatalf("expected fallback 0, got %v", v)
	}
}

func TestArrayAssertion(t *testing.T) {
	getV := NewCompound(config.OpGet, []Node{NewLiteral(value.Str("v"))}, value.Top)
	aa := NewArrayAssertion(value.Number, value.IntPtr(2), getV)
	v, err := aa.Evaluate(feat(map[string]interface{}{"v": []interface{}{3.0, 4.0}}))
	if err != nil {
		t.Fatal(err)
	}
	arr := v.(value.Arr)
	if len(arr.Items) != 2 || arr.Items[0].(value.Num) != 3 {
		t.Fatalf("unexpected array %v", arr)
	}

	_, err = aa.Evaluate(feat(map[string]interface{}{"v": "oops"}))
	if err == nil {
		t.Fatalf("expected error asserting non-array")
	}
}
