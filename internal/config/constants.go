// Package config holds DSL-wide constants, mirroring the teacher's
// internal/config (source extensions, builtin-name tables) scaled down to
// this core's surface: a recursion-depth bound and the operator name table.
package config

// MaxExpressionDepth bounds recursive descent so evaluation runtime can be
// bounded by callers without a cancellation mechanism (spec §5).
const MaxExpressionDepth = 255

// SafeIntegerBound is the largest integer branch label Match<int> accepts,
// matching the IEEE-754 double's exact-integer range (spec §7).
const SafeIntegerBound = 1<<53 - 1

// Operator names recognized by the expression parser (spec §4.3/§4.4).
const (
	OpLiteral   = "literal"
	OpCoalesce  = "coalesce"
	OpCase      = "case"
	OpMatch     = "match"
	OpGet       = "get"
	OpHas       = "has"
	OpProperties = "properties"
	OpGeometryType = "geometry-type"
	OpID        = "id"
	OpZoom      = "zoom"
	OpNumber    = "number"
	OpString    = "string"
	OpBoolean   = "boolean"
	OpArray     = "array"
	OpEQ        = "=="
	OpNE        = "!="
	OpLT        = "<"
	OpLE        = "<="
	OpGT        = ">"
	OpGE        = ">="
	OpAll       = "all"
	OpAny       = "any"
	OpNot       = "!"
	OpAt        = "at"
	OpError     = "error"
)

// Interpolation kinds for `curve` (spec §3, Curve variant / §4.6).
type InterpolationKind int

const (
	InterpStep InterpolationKind = iota
	InterpExponential
)
