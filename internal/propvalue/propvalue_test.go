package propvalue

import (
	"errors"
	"testing"

	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

var errNotANumber = errors.New("scalar value must be a number")

func numberScalar(raw interface{}) (value.Value, error) {
	f, ok := raw.(float64)
	if !ok {
		return nil, errNotANumber
	}
	return value.Num(f), nil
}

func TestConvertUndefined(t *testing.T) {
	got, errs := Convert(nil, value.Number, numberScalar)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !got.Undefined {
		t.Fatalf("expected undefined property value")
	}
}

func TestConvertScalarConstant(t *testing.T) {
	got, errs := Convert(5.0, value.Number, numberScalar)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got.Kind != KindConstant || got.Constant.(value.Num) != 5 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestConvertExpressionClassifiesSource(t *testing.T) {
	raw := map[string]interface{}{
		"expression": []interface{}{"case",
			[]interface{}{"==", []interface{}{"get", "t"}, "a"}, 1.0,
			0.0,
		},
	}
	got, errs := Convert(raw, value.Number, numberScalar)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got.Kind != KindSource {
		t.Fatalf("expected source classification, got %s", got.Kind)
	}
}

func TestConvertLegacyCameraFunction(t *testing.T) {
	raw := map[string]interface{}{
		"stops": []interface{}{
			[]interface{}{0.0, 0.0},
			[]interface{}{10.0, 100.0},
		},
	}
	got, errs := Convert(raw, value.Number, numberScalar)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got.Kind != KindCamera {
		t.Fatalf("expected camera classification, got %s", got.Kind)
	}
	v, err := got.Node.Evaluate(evalctx.StaticContext{Z: 5})
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Num) != 50 {
		t.Fatalf("expected 50, got %v", v)
	}
}

func TestConvertLegacySourceFunction(t *testing.T) {
	raw := map[string]interface{}{
		"property": "p",
		"stops": []interface{}{
			[]interface{}{0.0, 0.0},
			[]interface{}{10.0, 100.0},
		},
	}
	got, errs := Convert(raw, value.Number, numberScalar)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got.Kind != KindSource {
		t.Fatalf("expected source classification, got %s", got.Kind)
	}
	v, err := got.Node.Evaluate(evalctx.FeatureContext{F: evalctx.MapFeature{Props: map[string]interface{}{"p": 5.0}}})
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Num) != 50 {
		t.Fatalf("expected 50, got %v", v)
	}
}
