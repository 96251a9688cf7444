package feature

import (
	"math"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/sketch"
)

// RevolveParams are the inputs to Revolve (spec §4.E "Revolve": same
// contract as extrude with (axisOrigin, axisDirection, angleDegrees)
// instead of direction-and-distance).
type RevolveParams struct {
	Profile       sketch.Profile
	Operation     Operation
	AxisOrigin    numeric.Vec3
	AxisDirection numeric.Vec3
	AngleDegrees  float64

	Tracker   *naming.Tracker
	FeatureID naming.FeatureID
}

// RevolveRefs mirrors ExtrudeRefs with revolve's selector kinds (spec
// §6.3: revolve.side, revolve.startCap, revolve.endCap).
type RevolveRefs struct {
	StartCap []naming.PersistentRef
	EndCap   []naming.PersistentRef
	Side     []naming.PersistentRef
}

// RevolveResult is the revolve output.
type RevolveResult struct {
	Success   bool
	Body      brep.BodyID
	FeatureID naming.FeatureID
	Refs      RevolveRefs
}

type revolveRing struct {
	isOuter bool
	curves  []geom.Curve2D
	start   []brep.VertexID
	end     []brep.VertexID
}

// Revolve sweeps profile around (axisOrigin, axisDirection) by
// angleDegrees (spec §4.E "Revolve"). Full-360 revolutions close the
// shell without caps, collapsing the end ring onto the start ring; this
// leaves one degenerate (zero-length) seam edge per loop vertex, a
// documented simplification of true seam-curve topology — see
// DESIGN.md.
func Revolve(m *brep.Model, p RevolveParams, ctx numeric.Context) (RevolveResult, error) {
	if len(p.Profile.Loops) == 0 {
		return RevolveResult{}, kerr.New(kerr.KindInvalidInput, "revolve: empty profile")
	}
	if p.AxisDirection.IsZero(ctx) {
		return RevolveResult{}, kerr.New(kerr.KindInvalidInput, "revolve: degenerate axis")
	}
	if p.AngleDegrees <= 0 {
		return RevolveResult{}, kerr.New(kerr.KindInvalidInput, "revolve: angle must be positive")
	}
	axis := p.AxisDirection.Normalize()
	angle := p.AngleDegrees * math.Pi / 180
	full := p.AngleDegrees >= 360-1e-9

	plane := p.Profile.Plane
	to3D := func(v numeric.Vec2) numeric.Vec3 { return plane.Eval(v.X, v.Y) }

	rings := make([]revolveRing, len(p.Profile.Loops))
	for i, loop := range p.Profile.Loops {
		n := len(loop.Curves)
		start := make([]brep.VertexID, n)
		for j, c := range loop.Curves {
			start[j] = m.AddVertex(to3D(c.Start()))
		}
		var end []brep.VertexID
		if full {
			end = start
		} else {
			end = make([]brep.VertexID, n)
			for j, c := range loop.Curves {
				p3 := to3D(c.Start())
				end[j] = m.AddVertex(numeric.RotateAboutAxis(p3, p.AxisOrigin, axis, angle))
			}
		}
		rings[i] = revolveRing{isOuter: loop.IsOuter, curves: loop.Curves, start: start, end: end}
	}

	pool := newHalfEdgePool(m)
	body := m.AddBody()
	shell := m.AddShell(full)
	m.AddShellToBody(body, shell)

	var tracker *naming.Tracker
	if p.Tracker != nil {
		tracker = p.Tracker
	}
	fid := p.FeatureID
	var refs RevolveRefs

	if !full {
		startPlane := geom.NewPlane(plane.Origin, plane.Normal.Negate(), plane.XDir)
		startSurfID := m.AddSurface(startPlane)
		startFace := m.AddFace(startSurfID, false)
		for i, r := range rings {
			n := len(r.start)
			hes := make([]brep.HalfEdgeID, n)
			for j := 0; j < n; j++ {
				k := (j + 1) % n
				if r.isOuter {
					hes[j] = pool.get(r.start[k], r.start[j])
				} else {
					hes[j] = pool.get(r.start[j], r.start[k])
				}
			}
			if r.isOuter {
				for a, b := 0, n-1; a < b; a, b = a+1, b-1 {
					hes[a], hes[b] = hes[b], hes[a]
				}
			}
			loop := m.AddLoop(hes)
			m.AddLoopToFace(startFace, loop)
			if tracker != nil {
				ref := naming.SubshapeRef{Kind: naming.KindFace, Body: int(body), ID: int(startFace)}
				sel := naming.Selector{Kind: naming.SelRevolveStartCap, Data: map[string]int{"loop": i}}
				tracker.RecordBirth(fid, sel, ref, faceFingerprint(m, startFace))
				refs.StartCap = append(refs.StartCap, naming.PersistentRef{OriginFeatureID: fid, Selector: sel, ExpectedType: naming.KindFace})
			}
		}
		m.AddFaceToShell(shell, startFace)

		endOrigin := numeric.RotateAboutAxis(plane.Origin, p.AxisOrigin, axis, angle)
		endNormal := numeric.RotateAboutAxis(plane.Origin.Add(plane.Normal), p.AxisOrigin, axis, angle).Sub(endOrigin)
		endXDir := numeric.RotateAboutAxis(plane.Origin.Add(plane.XDir), p.AxisOrigin, axis, angle).Sub(endOrigin)
		endPlane := geom.NewPlane(endOrigin, endNormal, endXDir)
		endSurfID := m.AddSurface(endPlane)
		endFace := m.AddFace(endSurfID, false)
		for i, r := range rings {
			n := len(r.end)
			hes := make([]brep.HalfEdgeID, n)
			for j := 0; j < n; j++ {
				k := (j + 1) % n
				if r.isOuter {
					hes[j] = pool.get(r.end[j], r.end[k])
				} else {
					hes[j] = pool.get(r.end[k], r.end[j])
				}
			}
			if !r.isOuter {
				for a, b := 0, n-1; a < b; a, b = a+1, b-1 {
					hes[a], hes[b] = hes[b], hes[a]
				}
			}
			loop := m.AddLoop(hes)
			m.AddLoopToFace(endFace, loop)
			if tracker != nil {
				ref := naming.SubshapeRef{Kind: naming.KindFace, Body: int(body), ID: int(endFace)}
				sel := naming.Selector{Kind: naming.SelRevolveEndCap, Data: map[string]int{"loop": i}}
				tracker.RecordBirth(fid, sel, ref, faceFingerprint(m, endFace))
				refs.EndCap = append(refs.EndCap, naming.PersistentRef{OriginFeatureID: fid, Selector: sel, ExpectedType: naming.KindFace})
			}
		}
		m.AddFaceToShell(shell, endFace)
	}

	for li, r := range rings {
		n := len(r.curves)
		for si, c := range r.curves {
			j := (si + 1) % n
			var hes []brep.HalfEdgeID
			if r.isOuter {
				hes = []brep.HalfEdgeID{
					pool.get(r.start[si], r.start[j]),
					pool.get(r.start[j], r.end[j]),
					pool.get(r.end[j], r.end[si]),
					pool.get(r.end[si], r.start[si]),
				}
			} else {
				hes = []brep.HalfEdgeID{
					pool.get(r.start[si], r.end[si]),
					pool.get(r.end[si], r.end[j]),
					pool.get(r.end[j], r.start[j]),
					pool.get(r.start[j], r.start[si]),
				}
			}

			surf := revolveSideSurface(c, plane, p.AxisOrigin, axis, ctx)
			surfID := m.AddSurface(surf)
			face := m.AddFace(surfID, !r.isOuter)
			loop := m.AddLoop(hes)
			m.AddLoopToFace(face, loop)
			m.AddFaceToShell(shell, face)

			if tracker != nil {
				ref := naming.SubshapeRef{Kind: naming.KindFace, Body: int(body), ID: int(face)}
				sel := naming.Selector{Kind: naming.SelRevolveSide, Data: map[string]int{"loop": li, "segment": si}}
				tracker.RecordBirth(fid, sel, ref, faceFingerprint(m, face))
				refs.Side = append(refs.Side, naming.PersistentRef{OriginFeatureID: fid, Selector: sel, ExpectedType: naming.KindFace})
			}
		}
	}

	if err := pool.pairAll(); err != nil {
		return RevolveResult{}, err
	}

	return RevolveResult{Success: true, Body: body, FeatureID: fid, Refs: refs}, nil
}

// revolveSideSurface classifies a profile curve's sweep surface per
// spec §4.E: a plane from a line perpendicular to the axis, a cylinder
// from a line parallel to it (constant radius), a cone from any other
// line, a torus patch from an arc.
func revolveSideSurface(c geom.Curve2D, plane geom.Plane, axisOrigin, axis numeric.Vec3, ctx numeric.Context) geom.Surface {
	axialCoord := func(p numeric.Vec3) float64 { return p.Sub(axisOrigin).Dot(axis) }
	radius := func(p numeric.Vec3) float64 {
		rel := p.Sub(axisOrigin)
		return rel.Sub(axis.Scale(rel.Dot(axis))).Length()
	}

	switch c.Kind() {
	case geom.Curve2DArc:
		arc := c.(geom.Arc2D)
		center3 := plane.Eval(arc.Center.X, arc.Center.Y)
		h := axialCoord(center3)
		torusCenter := axisOrigin.Add(axis.Scale(h))
		majorR := radius(center3)
		return geom.NewTorus(torusCenter, axis, majorR, arc.Radius)

	default:
		p0 := plane.Eval(c.Start().X, c.Start().Y)
		p1 := plane.Eval(c.End().X, c.End().Y)
		h0, h1 := axialCoord(p0), axialCoord(p1)
		r0, r1 := radius(p0), radius(p1)

		switch {
		case math.Abs(h1-h0) <= ctx.Length:
			// perpendicular to the axis: a flat annular disc.
			return geom.NewPlaneDeterministic(axisOrigin.Add(axis.Scale(h0)), axis)
		case math.Abs(r1-r0) <= ctx.Length:
			// parallel to the axis at constant radius: a cylinder.
			return geom.NewCylinder(axisOrigin, axis, r0)
		default:
			// general sloped line: a cone, apex where r extrapolates to 0.
			apexH := h0 - r0*(h1-h0)/(r1-r0)
			halfAngle := math.Atan2(r1-r0, h1-h0)
			return geom.NewCone(axisOrigin.Add(axis.Scale(apexH)), axis, halfAngle)
		}
	}
}
