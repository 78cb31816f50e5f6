package legacy

import (
	"testing"

	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

func TestExponentialStopsLowerAndEvaluate(t *testing.T) {
	s := ExponentialStops{
		Property:   "p",
		Base:       1,
		Stops:      []Stop{{Key: 0, Value: value.Num(0)}, {Key: 10, Value: value.Num(100)}},
		OutputType: value.Number,
	}
	node := s.Lower()
	if !node.IsZoomConstant() {
		// Property-keyed curves don't depend on zoom.
		t.Fatalf("property-keyed curve should be zoom-constant")
	}
	ctx := evalctx.FeatureContext{Z: 0, F: evalctx.MapFeature{Props: map[string]interface{}{"p": 5.0}}}
	v, err := node.Evaluate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Num) != 50 {
		t.Fatalf("expected 50, got %v", v)
	}
}

func TestIdentityStopsArrayWithDefault(t *testing.T) {
	two := value.IntPtr(2)
	s := IdentityStops{
		Property:   "v",
		Default:    value.Arr{Items: []value.Value{value.Num(0), value.Num(0)}, Item: value.Number},
		OutputType: value.ArrayOf(value.Number, two),
	}
	node := s.Lower()

	ctx := evalctx.FeatureContext{F: evalctx.MapFeature{Props: map[string]interface{}{"v": []interface{}{3.0, 4.0}}}}
	v, err := node.Evaluate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	arr := v.(value.Arr)
	if arr.Items[0].(value.Num) != 3 || arr.Items[1].(value.Num) != 4 {
		t.Fatalf("unexpected array %v", arr)
	}

	ctxBad := evalctx.FeatureContext{F: evalctx.MapFeature{Props: map[string]interface{}{"v": "oops"}}}
	v2, err := node.Evaluate(ctxBad)
	if err != nil {
		t.Fatal(err)
	}
	arr2 := v2.(value.Arr)
	if arr2.Items[0].(value.Num) != 0 || arr2.Items[1].(value.Num) != 0 {
		t.Fatalf("expected default array via coalesce-catch, got %v", arr2)
	}
}

func TestCategoricalStopsBoolean(t *testing.T) {
	s := CategoricalStops{
		Property:   "b",
		Labels:     []interface{}{true, false},
		Stops:      []Stop{{Value: value.Num(1)}, {Value: value.Num(2)}},
		OutputType: value.Number,
	}
	node := s.Lower()
	ctxTrue := evalctx.FeatureContext{F: evalctx.MapFeature{Props: map[string]interface{}{"b": true}}}
	v, err := node.Evaluate(ctxTrue)
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Num) != 1 {
		t.Fatalf("expected 1, got %v", v)
	}
}

func TestCategoricalStopsString(t *testing.T) {
	s := CategoricalStops{
		Property:   "k",
		Labels:     []interface{}{"a", "b"},
		Stops:      []Stop{{Value: value.Str("A")}, {Value: value.Str("B")}},
		OutputType: value.String,
	}
	node := s.Lower()
	ctx := evalctx.FeatureContext{F: evalctx.MapFeature{Props: map[string]interface{}{"k": "b"}}}
	v, err := node.Evaluate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(v.(value.Str)) != "B" {
		t.Fatalf("expected B, got %v", v)
	}
}
