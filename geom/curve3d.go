package geom

import (
	"math"

	"github.com/brepkit/kernel/numeric"
)

// Curve3DKind tags the concrete type behind a Curve3D.
type Curve3DKind int

const (
	Curve3DLine Curve3DKind = iota
	Curve3DArc
	Curve3DCircle
)

// Curve3D is a parametric 3D curve backing an edge that is not a
// straight chord between its endpoints (spec §3.2).
type Curve3D interface {
	Kind() Curve3DKind
	Eval(t float64) numeric.Vec3
	Tangent(t float64) numeric.Vec3
	Reversed() Curve3D
}

// Line3D is a 3D line segment from P0 to P1.
type Line3D struct {
	P0, P1 numeric.Vec3
}

func (l Line3D) Kind() Curve3DKind           { return Curve3DLine }
func (l Line3D) Eval(t float64) numeric.Vec3 { return l.P0.Lerp(l.P1, t) }
func (l Line3D) Tangent(float64) numeric.Vec3 { return l.P1.Sub(l.P0) }
func (l Line3D) Reversed() Curve3D           { return Line3D{P0: l.P1, P1: l.P0} }

// ArcPlane3D is a circular arc lying in a 3D plane, described by
// center, radius, an orthonormal (xRef, yRef) frame in the arc's
// plane, and the angular span.
type ArcPlane3D struct {
	Center               numeric.Vec3
	XRef, YRef           numeric.Vec3 // orthonormal, in-plane
	Radius               float64
	StartAngle, EndAngle float64
	CCW                  bool
}

func (a ArcPlane3D) Kind() Curve3DKind { return Curve3DArc }

func (a ArcPlane3D) span() float64 {
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

func (a ArcPlane3D) angleAt(t float64) float64 { return a.StartAngle + a.span()*t }

func (a ArcPlane3D) Eval(t float64) numeric.Vec3 {
	th := a.angleAt(t)
	return a.Center.Add(a.XRef.Scale(a.Radius * math.Cos(th))).Add(a.YRef.Scale(a.Radius * math.Sin(th)))
}

func (a ArcPlane3D) Tangent(t float64) numeric.Vec3 {
	th := a.angleAt(t)
	s := a.span()
	return a.XRef.Scale(-a.Radius * math.Sin(th) * s).Add(a.YRef.Scale(a.Radius * math.Cos(th) * s))
}

func (a ArcPlane3D) Reversed() Curve3D {
	return ArcPlane3D{Center: a.Center, XRef: a.XRef, YRef: a.YRef, Radius: a.Radius, StartAngle: a.EndAngle, EndAngle: a.StartAngle, CCW: !a.CCW}
}

// Circle3D is a full circle in 3D, center/radius with an orthonormal
// (xRef, yRef) in-plane frame; t in [0,1] sweeps the full turn.
type Circle3D struct {
	Center     numeric.Vec3
	XRef, YRef numeric.Vec3
	Radius     float64
}

func (c Circle3D) Kind() Curve3DKind { return Curve3DCircle }

func (c Circle3D) Eval(t float64) numeric.Vec3 {
	th := 2 * math.Pi * t
	return c.Center.Add(c.XRef.Scale(c.Radius * math.Cos(th))).Add(c.YRef.Scale(c.Radius * math.Sin(th)))
}

func (c Circle3D) Tangent(t float64) numeric.Vec3 {
	th := 2 * math.Pi * t
	return c.XRef.Scale(-c.Radius * 2 * math.Pi * math.Sin(th)).Add(c.YRef.Scale(c.Radius * 2 * math.Pi * math.Cos(th)))
}

func (c Circle3D) Reversed() Curve3D {
	return Circle3D{Center: c.Center, XRef: c.YRef.Negate(), YRef: c.XRef, Radius: c.Radius}
}
