package ast

import (
	"fmt"
	"math"
	"sort"

	"github.com/martykuc/styleexpr/internal/config"
	"github.com/martykuc/styleexpr/internal/evalctx"
	"github.com/martykuc/styleexpr/internal/value"
)

// CurveStop pairs a stop key with the body evaluated at (or interpolated
// around) it. Stops are kept in strictly ascending key order (spec §3
// invariant iii).
type CurveStop struct {
	Key  float64
	Body Node
}

// Curve implements the stop-interpolated function node (spec §3/§4.4/§4.5):
// step curves return the lower bracketing stop's body; exponential curves
// mix the bracketing pair's bodies using base-parameterized interpolation.
type Curve struct {
	constancy
	OutType value.Type
	Input   Node
	Kind    config.InterpolationKind
	Base    float64 // only meaningful for InterpExponential
	Stops   []CurveStop
}

// NewCurve builds a Curve node. Zoom-constancy is the input's alone (per
// spec §3 table: "zoom-constant iff input is"); feature-constancy is the
// AND of input and all stop bodies.
func NewCurve(outType value.Type, input Node, kind config.InterpolationKind, base float64, stops []CurveStop) *Curve {
	all := make([]Node, 0, len(stops)+1)
	all = append(all, input)
	for _, s := range stops {
		all = append(all, s.Body)
	}
	c := andConstancy(all...)
	c.zoomConst = input.IsZoomConstant()
	return &Curve{constancy: c, OutType: outType, Input: input, Kind: kind, Base: base, Stops: stops}
}

func (c *Curve) Type() value.Type { return c.OutType }

func (c *Curve) Evaluate(ctx evalctx.Context) (value.Value, error) {
	iv, err := c.Input.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	x, ok := iv.(value.Num)
	if !ok {
		return nil, fmt.Errorf("curve input must be a number, got %s", iv.Type())
	}
	xf := float64(x)

	n := len(c.Stops)
	// Locate the bracketing pair by binary search over ascending keys.
	idx := sort.Search(n, func(i int) bool { return c.Stops[i].Key > xf })
	switch {
	case idx == 0:
		return c.Stops[0].Body.Evaluate(ctx)
	case idx == n:
		return c.Stops[n-1].Body.Evaluate(ctx)
	}
	lower, upper := c.Stops[idx-1], c.Stops[idx]
	if xf == lower.Key {
		return lower.Body.Evaluate(ctx)
	}
	if c.Kind == config.InterpStep {
		return lower.Body.Evaluate(ctx)
	}

	lv, err := lower.Body.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	uv, err := upper.Body.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	t := interpolationFactor(xf, lower.Key, upper.Key, c.Base)
	return mix(lv, uv, t)
}

// interpolationFactor computes the curve-kind-specific position of x
// between x0 and x1 (spec §4.5): linear when base == 1, exponential
// (linear in log space) otherwise.
func interpolationFactor(x, x0, x1, base float64) float64 {
	span := x1 - x0
	if span == 0 {
		return 0
	}
	if base == 1 {
		return (x - x0) / span
	}
	return (math.Pow(base, x-x0) - 1) / (math.Pow(base, span) - 1)
}

// mix blends two endpoint values per the output type's interpolation rule
// (spec §4.5 / §9 "Interpolation generics"): linear for Number, per-channel
// premultiplied-linear for Color, element-wise linear for fixed-length
// numeric arrays.
func mix(a, b value.Value, t float64) (value.Value, error) {
	switch av := a.(type) {
	case value.Num:
		bv, ok := b.(value.Num)
		if !ok {
			return nil, fmt.Errorf("cannot mix %s with %s", a.Type(), b.Type())
		}
		return value.Num(float64(av) + (float64(bv)-float64(av))*t), nil
	case value.Clr:
		bv, ok := b.(value.Clr)
		if !ok {
			return nil, fmt.Errorf("cannot mix %s with %s", a.Type(), b.Type())
		}
		return value.Clr(value.MixColor(value.RGBA(av), value.RGBA(bv), t)), nil
	case value.Arr:
		bv, ok := b.(value.Arr)
		if !ok || len(bv.Items) != len(av.Items) {
			return nil, fmt.Errorf("cannot mix arrays of different shape")
		}
		out := make([]value.Value, len(av.Items))
		for i := range av.Items {
			m, err := mix(av.Items[i], bv.Items[i], t)
			if err != nil {
				return nil, err
			}
			out[i] = m
		}
		return value.Arr{Items: out, Item: av.Item}, nil
	default:
		return nil, fmt.Errorf("type %s is not interpolable", a.Type())
	}
}
