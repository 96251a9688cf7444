// Package numeric provides the tolerance context and robust predicates
// every other package in the kernel consults before comparing floats.
//
// What:
//   - Context carries length/angle tolerance and a derived squared-length
//     tolerance; every robust predicate and boolean-engine loop takes one.
//   - Orient2D is the adaptive-precision predicate the planar boolean
//     engine is built on; SegSegHit classifies segment intersections
//     and uses Orient2D for its collinearity test.
//
// Why:
//   - A BREP kernel lives or dies on consistent tolerance handling: two
//     contexts must never mix within one operation, or SameParameter and
//     twin-pairing checks become incoherent.
package numeric

import "math"

// DefaultLengthTolerance is the default length tolerance in model units,
// per spec §3.1.
const DefaultLengthTolerance = 1e-7

// DefaultAngleTolerance is the default angular tolerance in radians.
const DefaultAngleTolerance = 1e-6

// Context is the tolerance value object threaded through every kernel
// operation. It is immutable once constructed.
type Context struct {
	Length        float64 // length tolerance
	Angle         float64 // angular tolerance, radians
	LengthSquared float64 // derived: Length * Length
}

// DefaultContext returns the standard (1e-7, 1e-6) tolerance context.
func DefaultContext() Context {
	return NewContext(DefaultLengthTolerance, DefaultAngleTolerance)
}

// NewContext builds a Context with explicit tolerances, deriving the
// squared-length tolerance.
func NewContext(length, angle float64) Context {
	return Context{
		Length:        length,
		Angle:         angle,
		LengthSquared: length * length,
	}
}

// IsZero reports whether x is within the context's length tolerance of
// zero.
func (c Context) IsZero(x float64) bool {
	return math.Abs(x) <= c.Length
}

// IsZeroAngle reports whether a (radians) is within the context's angle
// tolerance of zero.
func (c Context) IsZeroAngle(a float64) bool {
	return math.Abs(a) <= c.Angle
}

// Equal reports whether a and b are within the context's length
// tolerance of each other.
func (c Context) Equal(a, b float64) bool {
	return c.IsZero(a - b)
}

// WidePlaneTolerance returns the scale-aware tolerance used by the
// boolean engine's plane-containment tests (spec §4.F "Robustness
// rules"): the greater of a fixed floor and 1e6 * Length.
func (c Context) WidePlaneTolerance() float64 {
	const floor = 1e-4
	wide := 1e6 * c.Length
	if wide > floor {
		return wide
	}
	return floor
}
