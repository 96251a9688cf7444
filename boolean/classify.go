package boolean

import (
	"math"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
)

// faceFingerprint builds a naming.Fingerprint from a rebuilt sub-face's
// boundary (spec §4.G), the same way the feature package does for a
// freshly constructed face, so a boolean-born face can be resolved
// across a later boolean step too.
func faceFingerprint(m *brep.Model, face brep.FaceID) *naming.Fingerprint {
	pts, n, ok := m.FaceFingerprintInputs(face)
	if !ok {
		return nil
	}
	fp := naming.ComputeFingerprint(pts, &n, -1, 0)
	return &fp
}

// rayDirection is the fixed, deterministic direction pointInBody fires
// every classification ray along. Its components are chosen off-axis
// and off-diagonal so a ray from a typical box/cylinder/extrude
// primitive's vertex or face plane doesn't graze another face edge-on.
var rayDirection = numeric.Vec3{X: 1, Y: 0.37, Z: 0.61}.Normalize()

// pointInBody reports whether p lies inside body by casting rayDirection
// from p and counting transversal crossings of body's live faces (both
// planar and curved, the latter via their sampled boundary's own
// best-fit plane, same as a curved face's centroid classification
// elsewhere in this package). Parity of the crossing count decides
// inside/outside — the textbook ray-casting point-in-polyhedron test,
// and unlike a half-space-intersection test it is exact for non-convex
// bodies (spec §4.F's "robust... scheme rooted in orient2D").
func pointInBody(m *brep.Model, body brep.BodyID, p numeric.Vec3, ctx numeric.Context) bool {
	dir := rayDirection
	crossings := 0
	for _, fid := range m.BodyFaces(body) {
		f, ok := m.Face(fid)
		if !ok {
			continue
		}
		if _, ok := m.Surface(f.Surface); !ok {
			continue
		}
		poly := polygon(m.FaceVertices(fid))
		if len(poly) < 3 {
			continue
		}
		n := polygonNormal(poly)
		denom := n.Dot(dir)
		if math.Abs(denom) <= ctx.Length {
			continue // ray runs (nearly) parallel to this face's plane
		}
		t := n.Dot(poly[0].Sub(p)) / denom
		if t <= ctx.Length {
			continue // plane is behind p, or p sits on it
		}
		hit := p.Add(dir.Scale(t))
		frame := geom.NewPlaneDeterministic(poly[0], n)
		hu, hv, _ := frame.Project(hit)
		uv := make([]numeric.Vec2, len(poly))
		for i, v := range poly {
			u, vv, _ := frame.Project(v)
			uv[i] = numeric.Vec2{X: u, Y: vv}
		}
		if windingNumber2D(numeric.Vec2{X: hu, Y: hv}, uv) != 0 {
			crossings++
		}
	}
	return crossings%2 == 1
}

// windingNumber2D is Sunday's winding-number in-polygon test, counting
// only strictly-left upward edge crossings and strictly-right downward
// ones (spec §4.F "Robustness rules"), decided by numeric.Orient2D
// rather than a raw cross-product sign so the test stays exact near
// the tolerance boundary.
func windingNumber2D(pt numeric.Vec2, poly []numeric.Vec2) int {
	wn := 0
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		if a.Y <= pt.Y {
			if b.Y > pt.Y && numeric.Orient2D(a, b, pt) > 0 {
				wn++
			}
		} else {
			if b.Y <= pt.Y && numeric.Orient2D(a, b, pt) < 0 {
				wn--
			}
		}
	}
	return wn
}

func pointInPolygon2D(pt numeric.Vec2, poly []numeric.Vec2) bool {
	return windingNumber2D(pt, poly) != 0
}
