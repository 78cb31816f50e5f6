package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is the tagged-union runtime value (spec §3). Concrete variants
// below mirror the teacher's Object interface (Type/Inspect), dropped of
// the parts (RuntimeType, Hash) that belonged to a general-purpose
// language runtime rather than this small value domain.
type Value interface {
	Type() Type
	Inspect() string
}

// Null is the sole inhabitant of the Null type.
type Null struct{}

func (Null) Type() Type      { return Type{Kind: KindNull} }
func (Null) Inspect() string { return "null" }

// Bool wraps a boolean value.
type Bool bool

func (Bool) Type() Type        { return Type{Kind: KindBoolean} }
func (b Bool) Inspect() string { return strconv.FormatBool(bool(b)) }

// Num wraps an IEEE-754 double.
type Num float64

func (Num) Type() Type { return Type{Kind: KindNumber} }
func (n Num) Inspect() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// IsSafeInteger reports whether n is an exact integer within ±(2^53-1),
// the bound enforced on Match<int> branch labels (spec §7).
func (n Num) IsSafeInteger() bool {
	f := float64(n)
	if f != float64(int64(f)) {
		return false
	}
	const safe = 1<<53 - 1
	return f >= -safe && f <= safe
}

// Str wraps a string value.
type Str string

func (Str) Type() Type        { return Type{Kind: KindString} }
func (s Str) Inspect() string { return strconv.Quote(string(s)) }

// Clr wraps a premultiplied color.
type Clr RGBA

func (Clr) Type() Type        { return Type{Kind: KindColor} }
func (c Clr) Inspect() string { return RGBA(c).String() }

// Obj is the runtime object (key -> Value map) used by `get`/`properties`.
type Obj map[string]Value

func (Obj) Type() Type { return Type{Kind: KindObject} }
func (o Obj) Inspect() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", strconv.Quote(k), o[k].Inspect())
	}
	b.WriteByte('}')
	return b.String()
}

// Arr is an array of Values tagged with an item type. Arrays decoded from
// raw input are tagged Top and may mix item kinds; ArrayAssertion checks
// each item and returns an Arr tagged with the asserted item type.
type Arr struct {
	Items []Value
	Item  Type
}

func (a Arr) Type() Type {
	n := len(a.Items)
	return ArrayOf(a.Item, &n)
}
func (a Arr) Inspect() string {
	parts := make([]string, len(a.Items))
	for i, v := range a.Items {
		parts[i] = v.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DynamicType returns the Type of a Value as produced by the runtime; it
// is the same as v.Type(), which Literal nodes report (spec §4.3 step 2).
func DynamicType(v Value) Type {
	return v.Type()
}
