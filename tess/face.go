package tess

import (
	"math"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/numeric"
)

// faceMesh is one face's contribution before it is appended to a Mesh:
// positions/normals are already 3D, indices are local to this slice.
type faceMesh struct {
	positions []numeric.Vec3
	normals   []numeric.Vec3
	indices   []uint32
}

// tessellateFace dispatches on surface kind: planar faces go straight
// through projectAndClip, curved ones are pre-sampled into ring strips
// first (spec §4.H).
func tessellateFace(m *brep.Model, fid brep.FaceID, ctx numeric.Context, tol float64) (faceMesh, error) {
	f, ok := m.Face(fid)
	if !ok || f.Deleted {
		return faceMesh{}, kerr.New(kerr.KindInvalidInput, "tess: face not found", int(fid))
	}
	surf, ok := m.Surface(f.Surface)
	if !ok {
		return faceMesh{}, kerr.New(kerr.KindInvalidInput, "tess: surface not found", int(f.Surface))
	}

	switch surf.Kind() {
	case geom.SurfacePlane:
		return tessellatePlanarFace(m, fid, surf)
	default:
		return tessellateCurvedFace(m, fid, surf, tol)
	}
}

// tessellatePlanarFace projects the outer loop and every hole loop to
// the face's (u,v) frame, bridges holes in, and ear-clips.
func tessellatePlanarFace(m *brep.Model, fid brep.FaceID, surf geom.Surface) (faceMesh, error) {
	f, _ := m.Face(fid)
	outer3D := m.LoopVertices(f.OuterLoop())
	if len(outer3D) < 3 {
		return faceMesh{}, kerr.New(kerr.KindDegenerate, "tess: outer loop has fewer than 3 vertices", int(fid))
	}

	project := func(pts []numeric.Vec3) []numeric.Vec2 {
		out := make([]numeric.Vec2, len(pts))
		for i, p := range pts {
			u, v, _ := surf.Project(p)
			out[i] = numeric.Vec2{X: u, Y: v}
		}
		return out
	}

	outer2D := ensureCCW(project(outer3D))
	if math.Abs(signedArea2D(outer2D)) < earEpsilon {
		return faceMesh{}, kerr.New(kerr.KindDegenerate, "tess: zero-area face", int(fid))
	}

	var holes2D [][]numeric.Vec2
	for _, hl := range f.HoleLoops() {
		hv := m.LoopVertices(hl)
		if len(hv) < 3 {
			continue
		}
		holes2D = append(holes2D, project(hv))
	}

	poly2D := outer2D
	if len(holes2D) > 0 {
		poly2D = bridgeHoles(outer2D, holes2D)
	}
	tris := earClip(poly2D)

	positions := make([]numeric.Vec3, len(poly2D))
	normals := make([]numeric.Vec3, len(poly2D))
	for i, p := range poly2D {
		positions[i] = surf.Eval(p.X, p.Y)
		normals[i] = surf.NormalAt(p.X, p.Y)
	}

	fm := faceMesh{positions: positions, normals: normals}
	for _, t := range tris {
		fm.indices = append(fm.indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return fm, nil
}

// curvedRingParams returns the angular step and ring count used to
// pre-sample a cylindrical/toroidal/conical face into planar strips,
// bounding the chord-height error (the gap between the true curved
// surface and its chordal approximation) to tol (spec §4.H "maximum
// chord-height error derived from ctx.tol.length and the face's
// characteristic dimension").
func curvedRingParams(radius, tol float64) (angleStep float64, segments int) {
	if radius <= 0 {
		return 2 * math.Pi, 4
	}
	if tol <= 0 {
		tol = 1e-4
	}
	ratio := 1 - tol/radius
	if ratio < -1 {
		ratio = -1
	}
	if ratio > 1 {
		ratio = 1
	}
	angleStep = 2 * math.Acos(ratio)
	if angleStep <= 0 || math.IsNaN(angleStep) {
		angleStep = math.Pi / 8
	}
	segments = int(math.Ceil(2 * math.Pi / angleStep))
	if segments < 8 {
		segments = 8
	}
	if segments > 256 {
		segments = 256
	}
	return 2 * math.Pi / float64(segments), segments
}

// characteristicRadius returns the radius relevant to chord-height
// sizing for a curved surface.
func characteristicRadius(surf geom.Surface) float64 {
	switch s := surf.(type) {
	case geom.Cylinder:
		return s.Radius
	case geom.Torus:
		return s.MajorRadius + s.MinorRadius
	case geom.Cone:
		return 1 // radius varies with h; a fixed 1 is used for every ring.
	default:
		return 1
	}
}

// tessellateCurvedFace samples a cylindrical/toroidal/conical face
// into a regular ring-strip grid over its outer loop's (u,v) bounding
// box and splits each grid cell into two triangles. The grid covers the
// whole bounding box: a boundary loop that is not an axis-aligned
// rectangle in (u,v) is not followed, and hole loops are not cut out
// (see DESIGN.md's tess entry).
func tessellateCurvedFace(m *brep.Model, fid brep.FaceID, surf geom.Surface, tol float64) (faceMesh, error) {
	f, _ := m.Face(fid)
	outer3D := m.LoopVertices(f.OuterLoop())
	if len(outer3D) < 3 {
		return faceMesh{}, kerr.New(kerr.KindDegenerate, "tess: outer loop has fewer than 3 vertices", int(fid))
	}

	minU, maxU := math.Inf(1), math.Inf(-1)
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, p := range outer3D {
		u, v, _ := surf.Project(p)
		minU, maxU = math.Min(minU, u), math.Max(maxU, u)
		minV, maxV = math.Min(minV, v), math.Max(maxV, v)
	}

	radius := characteristicRadius(surf)
	_, segments := curvedRingParams(radius, tol)
	rings := segments / 4
	if rings < 2 {
		rings = 2
	}

	var fm faceMesh
	du := (maxU - minU) / float64(segments)
	dv := (maxV - minV) / float64(rings)
	idx := func(i, j int) uint32 { return uint32(j*(segments+1) + i) }

	for j := 0; j <= rings; j++ {
		v := minV + float64(j)*dv
		for i := 0; i <= segments; i++ {
			u := minU + float64(i)*du
			fm.positions = append(fm.positions, surf.Eval(u, v))
			fm.normals = append(fm.normals, surf.NormalAt(u, v))
		}
	}
	for j := 0; j < rings; j++ {
		for i := 0; i < segments; i++ {
			a, b, c, d := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			fm.indices = append(fm.indices, a, b, c, a, c, d)
		}
	}
	return fm, nil
}
