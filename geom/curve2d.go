// Package geom implements the parametric curve and surface variants of
// spec §3.2 / §4.B: 2D sketch-plane curves, 3D edge curves, and the
// plane/cylinder/torus surfaces. Heterogeneous curve/surface kinds are
// represented as a tagged variant (spec §9.1): a Kind tag plus an
// interface whose small method set plays the role of the "table of
// function pointers for eval, tangent, normal, project" the design
// notes call for, without open inheritance.
package geom

import (
	"math"

	"github.com/brepkit/kernel/numeric"
)

// Curve2DKind tags the concrete type behind a Curve2D.
type Curve2DKind int

const (
	Curve2DLine Curve2DKind = iota
	Curve2DArc
)

// Curve2D is a parametric curve in a surface's (u,v) or sketch-plane
// frame, evaluated at t in [0,1].
type Curve2D interface {
	Kind() Curve2DKind
	Eval(t float64) numeric.Vec2
	// Tangent returns the (not necessarily unit) derivative at t.
	Tangent(t float64) numeric.Vec2
	// Start and End are Eval(0) and Eval(1), cached for cheap endpoint
	// comparisons (loop closure, twin pairing).
	Start() numeric.Vec2
	End() numeric.Vec2
	// Reversed returns a curve tracing the same locus from End to
	// Start; used when a half-edge's direction opposes its edge.
	Reversed() Curve2D
}

// Line2D is a 2D line segment from P0 to P1.
type Line2D struct {
	P0, P1 numeric.Vec2
}

func (l Line2D) Kind() Curve2DKind       { return Curve2DLine }
func (l Line2D) Eval(t float64) numeric.Vec2 { return l.P0.Lerp(l.P1, t) }
func (l Line2D) Tangent(float64) numeric.Vec2 { return l.P1.Sub(l.P0) }
func (l Line2D) Start() numeric.Vec2     { return l.P0 }
func (l Line2D) End() numeric.Vec2       { return l.P1 }
func (l Line2D) Reversed() Curve2D       { return Line2D{P0: l.P1, P1: l.P0} }

// Arc2D is a circular arc, center+radius, spanning [StartAngle,
// EndAngle] in the direction given by CCW.
type Arc2D struct {
	Center             numeric.Vec2
	Radius             float64
	StartAngle, EndAngle float64 // radians
	CCW                bool
}

func (a Arc2D) Kind() Curve2DKind { return Curve2DArc }

// span normalizes EndAngle-StartAngle into (0, 2*pi] according to CCW,
// per spec §4.B.
func (a Arc2D) span() float64 {
	d := a.EndAngle - a.StartAngle
	if a.CCW {
		for d <= 0 {
			d += 2 * math.Pi
		}
	} else {
		for d >= 0 {
			d -= 2 * math.Pi
		}
	}
	return d
}

func (a Arc2D) angleAt(t float64) float64 { return a.StartAngle + a.span()*t }

func (a Arc2D) Eval(t float64) numeric.Vec2 {
	th := a.angleAt(t)
	return numeric.Vec2{
		X: a.Center.X + a.Radius*math.Cos(th),
		Y: a.Center.Y + a.Radius*math.Sin(th),
	}
}

func (a Arc2D) Tangent(t float64) numeric.Vec2 {
	th := a.angleAt(t)
	s := a.span()
	return numeric.Vec2{
		X: -a.Radius * math.Sin(th) * s,
		Y: a.Radius * math.Cos(th) * s,
	}
}

func (a Arc2D) Start() numeric.Vec2 { return a.Eval(0) }
func (a Arc2D) End() numeric.Vec2   { return a.Eval(1) }

func (a Arc2D) Reversed() Curve2D {
	return Arc2D{Center: a.Center, Radius: a.Radius, StartAngle: a.EndAngle, EndAngle: a.StartAngle, CCW: !a.CCW}
}

// SampleCurve2D evaluates c at n+1 evenly spaced parameter values
// (including both endpoints).
func SampleCurve2D(c Curve2D, n int) []numeric.Vec2 {
	out := make([]numeric.Vec2, n+1)
	for i := 0; i <= n; i++ {
		out[i] = c.Eval(float64(i) / float64(n))
	}
	return out
}

// ArcSegmentCount returns the polyline segment count used to sample a
// full-span arc for extrude (spec §4.D): minimum 12 segments per full
// circle, one segment per ~10 degrees of span.
func ArcSegmentCount(spanRadians float64) int {
	const minPerFullCircle = 12
	perSegment := 10.0 * math.Pi / 180.0
	n := int(math.Ceil(math.Abs(spanRadians) / perSegment))
	min := int(math.Ceil(minPerFullCircle * math.Abs(spanRadians) / (2 * math.Pi)))
	if n < min {
		n = min
	}
	if n < 1 {
		n = 1
	}
	return n
}
