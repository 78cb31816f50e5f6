package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGBA is a premultiplied-alpha color, matching how the original style
// renderer stores colors so that curve interpolation can mix channels
// linearly without un-premultiplying first.
type RGBA struct {
	R, G, B, A float64
}

// ParseColor accepts the small subset of CSS color syntax the style
// subsystem hands down: #rgb, #rrggbb, #rrggbbaa, and rgb()/rgba().
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	default:
		return RGBA{}, fmt.Errorf("invalid color %q", s)
	}
}

func parseHexColor(s string) (RGBA, error) {
	h := s[1:]
	expand := func(c byte) (int, error) {
		v, err := strconv.ParseInt(string(c), 16, 32)
		return int(v), err
	}
	hex2 := func(c1, c2 byte) (int, error) {
		v, err := strconv.ParseInt(string([]byte{c1, c2}), 16, 32)
		return int(v), err
	}
	var r, g, b, a int
	var err error
	switch len(h) {
	case 3:
		if r, err = expand(h[0]); err != nil {
			return RGBA{}, err
		}
		if g, err = expand(h[1]); err != nil {
			return RGBA{}, err
		}
		if b, err = expand(h[2]); err != nil {
			return RGBA{}, err
		}
		r, g, b, a = r*17, g*17, b*17, 255
	case 6:
		if r, err = hex2(h[0], h[1]); err != nil {
			return RGBA{}, err
		}
		if g, err = hex2(h[2], h[3]); err != nil {
			return RGBA{}, err
		}
		if b, err = hex2(h[4], h[5]); err != nil {
			return RGBA{}, err
		}
		a = 255
	case 8:
		if r, err = hex2(h[0], h[1]); err != nil {
			return RGBA{}, err
		}
		if g, err = hex2(h[2], h[3]); err != nil {
			return RGBA{}, err
		}
		if b, err = hex2(h[4], h[5]); err != nil {
			return RGBA{}, err
		}
		if a, err = hex2(h[6], h[7]); err != nil {
			return RGBA{}, err
		}
	default:
		return RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return premultiply(float64(r)/255, float64(g)/255, float64(b)/255, float64(a)/255), nil
}

func parseRGBFunc(s string) (RGBA, error) {
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open < 0 || close < 0 || close < open {
		return RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	nums := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		nums[i] = v
	}
	a := 1.0
	if len(nums) == 4 {
		a = nums[3]
	}
	return premultiply(nums[0]/255, nums[1]/255, nums[2]/255, a), nil
}

func premultiply(r, g, b, a float64) RGBA {
	return RGBA{R: r * a, G: g * a, B: b * a, A: a}
}

func (c RGBA) String() string {
	if c.A == 0 {
		return "rgba(0,0,0,0)"
	}
	r := clamp255(c.R / c.A * 255)
	g := clamp255(c.G / c.A * 255)
	b := clamp255(c.B / c.A * 255)
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", r, g, b, c.A)
}

func clamp255(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(math.Round(v))
}

// MixColor linearly interpolates two premultiplied colors channel-wise.
func MixColor(a, b RGBA, t float64) RGBA {
	return RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
