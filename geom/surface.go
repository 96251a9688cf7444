package geom

import (
	"math"

	"github.com/brepkit/kernel/numeric"
)

// SurfaceKind tags the concrete type behind a Surface.
type SurfaceKind int

const (
	SurfacePlane SurfaceKind = iota
	SurfaceCylinder
	SurfaceTorus
	SurfaceCone
)

// Surface evaluates a 2D parameter domain into 3D points, per spec
// §3.2/§4.B. Project is exact for planes and closed-form for cylinders
// and tori.
type Surface interface {
	Kind() SurfaceKind
	Eval(u, v float64) numeric.Vec3
	NormalAt(u, v float64) numeric.Vec3
	// Project returns the (u,v) of the closest point on the surface to
	// p, and ok=false only for a degenerate surface.
	Project(p numeric.Vec3) (u, v float64, ok bool)
}

// Plane is (origin, normal, xDir, yDir) with yDir = normal x xDir, all
// unit (spec §3.2).
type Plane struct {
	Origin numeric.Vec3
	Normal numeric.Vec3
	XDir   numeric.Vec3
	YDir   numeric.Vec3
}

// NewPlane builds a Plane from an origin, unit normal and unit xDir,
// deriving yDir = normal x xDir.
func NewPlane(origin, normal, xDir numeric.Vec3) Plane {
	n := normal.Normalize()
	x := xDir.Normalize()
	return Plane{Origin: origin, Normal: n, XDir: x, YDir: n.Cross(x)}
}

// NewPlaneDeterministic builds a Plane from just an origin and normal,
// choosing xDir deterministically via ArbitraryPerp (used when a
// feature operator only has a direction, not a full sketch frame).
func NewPlaneDeterministic(origin, normal numeric.Vec3) Plane {
	n := normal.Normalize()
	x := numeric.ArbitraryPerp(n)
	return Plane{Origin: origin, Normal: n, XDir: x, YDir: n.Cross(x)}
}

func (p Plane) Kind() SurfaceKind { return SurfacePlane }

func (p Plane) Eval(u, v float64) numeric.Vec3 {
	return p.Origin.Add(p.XDir.Scale(u)).Add(p.YDir.Scale(v))
}

func (p Plane) NormalAt(float64, float64) numeric.Vec3 { return p.Normal }

func (p Plane) Project(pt numeric.Vec3) (u, v float64, ok bool) {
	d := pt.Sub(p.Origin)
	return d.Dot(p.XDir), d.Dot(p.YDir), true
}

// Flipped returns the same plane with the normal (and therefore
// winding sense) reversed; XDir is kept so (u,v) stays numerically
// identical but YDir flips sign, matching the "anti-plane-normal"
// bottom cap surface of spec §4.E step 5.
func (p Plane) Flipped() Plane {
	n := p.Normal.Negate()
	return Plane{Origin: p.Origin, Normal: n, XDir: p.XDir, YDir: n.Cross(p.XDir)}
}

// Cylinder is (center, axis, radius), parameterized (theta,h) ->
// center + h*axis + radius*(cos(theta)*xRef + sin(theta)*yRef) for a
// deterministic reference frame (spec §3.2).
type Cylinder struct {
	Center numeric.Vec3
	Axis   numeric.Vec3 // unit
	Radius float64
	XRef   numeric.Vec3 // unit, perpendicular to Axis
	YRef   numeric.Vec3 // unit, Axis x XRef
}

// NewCylinder builds a Cylinder with a deterministic reference frame.
func NewCylinder(center, axis numeric.Vec3, radius float64) Cylinder {
	a := axis.Normalize()
	x := numeric.ArbitraryPerp(a)
	return Cylinder{Center: center, Axis: a, Radius: radius, XRef: x, YRef: a.Cross(x)}
}

func (c Cylinder) Kind() SurfaceKind { return SurfaceCylinder }

func (c Cylinder) Eval(theta, h float64) numeric.Vec3 {
	ring := c.XRef.Scale(c.Radius * math.Cos(theta)).Add(c.YRef.Scale(c.Radius * math.Sin(theta)))
	return c.Center.Add(c.Axis.Scale(h)).Add(ring)
}

func (c Cylinder) NormalAt(theta, _ float64) numeric.Vec3 {
	return c.XRef.Scale(math.Cos(theta)).Add(c.YRef.Scale(math.Sin(theta)))
}

func (c Cylinder) Project(p numeric.Vec3) (theta, h float64, ok bool) {
	rel := p.Sub(c.Center)
	h = rel.Dot(c.Axis)
	radial := rel.Sub(c.Axis.Scale(h))
	if radial.IsZero(numeric.DefaultContext()) {
		return 0, h, false
	}
	x := radial.Dot(c.XRef)
	y := radial.Dot(c.YRef)
	return math.Atan2(y, x), h, true
}

// Torus is (center, axis, majorRadius, minorRadius), parameterized
// analogously to Cylinder (spec §3.2): theta sweeps the major ring,
// phi sweeps the minor (tube) circle.
type Torus struct {
	Center                   numeric.Vec3
	Axis                     numeric.Vec3 // unit
	MajorRadius, MinorRadius float64
	XRef, YRef               numeric.Vec3
}

// NewTorus builds a Torus with a deterministic reference frame.
func NewTorus(center, axis numeric.Vec3, majorR, minorR float64) Torus {
	a := axis.Normalize()
	x := numeric.ArbitraryPerp(a)
	return Torus{Center: center, Axis: a, MajorRadius: majorR, MinorRadius: minorR, XRef: x, YRef: a.Cross(x)}
}

func (t Torus) Kind() SurfaceKind { return SurfaceTorus }

// ringCenter returns the point on the major-radius ring at angle theta.
func (t Torus) ringCenter(theta float64) numeric.Vec3 {
	return t.Center.Add(t.XRef.Scale(t.MajorRadius * math.Cos(theta))).Add(t.YRef.Scale(t.MajorRadius * math.Sin(theta)))
}

// ringOutward returns the unit outward radial direction of the major
// ring at angle theta (in the plane perpendicular to Axis).
func (t Torus) ringOutward(theta float64) numeric.Vec3 {
	return t.XRef.Scale(math.Cos(theta)).Add(t.YRef.Scale(math.Sin(theta)))
}

func (t Torus) Eval(theta, phi float64) numeric.Vec3 {
	outward := t.ringOutward(theta)
	return t.ringCenter(theta).Add(outward.Scale(t.MinorRadius * math.Cos(phi))).Add(t.Axis.Scale(t.MinorRadius * math.Sin(phi)))
}

func (t Torus) NormalAt(theta, phi float64) numeric.Vec3 {
	outward := t.ringOutward(theta)
	return outward.Scale(math.Cos(phi)).Add(t.Axis.Scale(math.Sin(phi)))
}

// Cone is (apex, axis, halfAngle), parameterized (theta,h) -> apex +
// h*axis + (h*tan(halfAngle))*(cos(theta)*xRef + sin(theta)*yRef) — the
// surface a revolve sweeps from a 2D line segment that is neither
// parallel nor perpendicular to the revolve axis (spec §4.E "cones
// (from other lines)"). h is measured along Axis from Apex; halfAngle
// is signed so a line sloping toward the axis as h increases gives a
// negative half-angle.
type Cone struct {
	Apex      numeric.Vec3
	Axis      numeric.Vec3 // unit
	HalfAngle float64      // radians
	XRef, YRef numeric.Vec3
}

// NewCone builds a Cone with a deterministic reference frame.
func NewCone(apex, axis numeric.Vec3, halfAngle float64) Cone {
	a := axis.Normalize()
	x := numeric.ArbitraryPerp(a)
	return Cone{Apex: apex, Axis: a, HalfAngle: halfAngle, XRef: x, YRef: a.Cross(x)}
}

func (c Cone) Kind() SurfaceKind { return SurfaceCone }

func (c Cone) Eval(theta, h float64) numeric.Vec3 {
	r := h * math.Tan(c.HalfAngle)
	ring := c.XRef.Scale(r * math.Cos(theta)).Add(c.YRef.Scale(r * math.Sin(theta)))
	return c.Apex.Add(c.Axis.Scale(h)).Add(ring)
}

func (c Cone) NormalAt(theta, _ float64) numeric.Vec3 {
	radial := c.XRef.Scale(math.Cos(theta)).Add(c.YRef.Scale(math.Sin(theta)))
	axial := c.Axis.Scale(-math.Sin(c.HalfAngle))
	return radial.Scale(math.Cos(c.HalfAngle)).Add(axial).Normalize()
}

func (c Cone) Project(p numeric.Vec3) (theta, h float64, ok bool) {
	rel := p.Sub(c.Apex)
	h = rel.Dot(c.Axis)
	radial := rel.Sub(c.Axis.Scale(h))
	if radial.IsZero(numeric.DefaultContext()) {
		return 0, h, false
	}
	x := radial.Dot(c.XRef)
	y := radial.Dot(c.YRef)
	return math.Atan2(y, x), h, true
}

func (t Torus) Project(p numeric.Vec3) (theta, phi float64, ok bool) {
	rel := p.Sub(t.Center)
	axial := rel.Dot(t.Axis)
	radial := rel.Sub(t.Axis.Scale(axial))
	if radial.IsZero(numeric.DefaultContext()) {
		return 0, 0, false
	}
	x := radial.Dot(t.XRef)
	y := radial.Dot(t.YRef)
	theta = math.Atan2(y, x)
	ringPt := t.ringCenter(theta)
	tubeVec := p.Sub(ringPt)
	outward := t.ringOutward(theta)
	tubeX := tubeVec.Dot(outward)
	tubeY := tubeVec.Dot(t.Axis)
	phi = math.Atan2(tubeY, tubeX)
	return theta, phi, true
}
