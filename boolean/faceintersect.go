package boolean

import (
	"math"
	"sort"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/numeric"
)

// planeIntersectionLine returns the line where the planes
// (originA,normalA) and (originB,normalB) meet, in closed form: the
// direction is the cross product of the two normals, and the point is
// the classic two-plane solve p0 = ((d1*n2 - d2*n1) x dir) / (dir.dir)
// (spec §4.F computeFaceIntersection step 1). ok is false when the
// planes are parallel (including coincident — see coplanarHalfSpaces
// for that case).
func planeIntersectionLine(originA, normalA, originB, normalB numeric.Vec3, ctx numeric.Context) (origin, dir numeric.Vec3, ok bool) {
	nA := normalA.Normalize()
	nB := normalB.Normalize()
	d := nA.Cross(nB)
	if d.IsZero(ctx) {
		return numeric.Vec3{}, numeric.Vec3{}, false
	}
	d1 := nA.Dot(originA)
	d2 := nB.Dot(originB)
	p0 := nB.Scale(d1).Sub(nA.Scale(d2)).Cross(d).Scale(1 / d.Dot(d))
	return p0, d, true
}

// lineIntervalsInPolygon clips the infinite 3D line origin+t*dir
// against poly's boundary and returns the t-intervals where the line
// runs through poly's interior (spec §4.F computeFaceIntersection step
// 2, "3D line-to-polygon clipping"). It works entirely in the local
// (dir, planeNormal x dir) frame of the pierce line itself rather than
// round-tripping through the face's own UV parameterization, which is
// the primary source of the floating-point drift this clip is written
// to avoid. A polygon may be crossed more than once when it is
// non-convex, so every interval is returned, not just the first.
func lineIntervalsInPolygon(origin, dir numeric.Vec3, poly polygon, ctx numeric.Context) [][2]float64 {
	n := len(poly)
	if n < 3 {
		return nil
	}
	planeN := polygonNormal(poly)
	vAxis := planeN.Cross(dir)
	if vAxis.IsZero(ctx) {
		return nil
	}
	vAxis = vAxis.Normalize()
	dirU := dir.Normalize()

	type xing struct {
		u  float64
		up bool
	}
	var xs []xing
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		va := a.Sub(origin).Dot(vAxis)
		vb := b.Sub(origin).Dot(vAxis)
		if (va <= 0) == (vb <= 0) {
			continue // both endpoints on the same side: no transversal crossing
		}
		t := va / (va - vb)
		p := a.Lerp(b, t)
		xs = append(xs, xing{u: p.Sub(origin).Dot(dirU), up: vb > va})
	}
	if len(xs) == 0 {
		return nil
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i].u < xs[j].u })

	var intervals [][2]float64
	depth := 0
	var start float64
	for _, x := range xs {
		before := depth
		if x.up {
			depth++
		} else {
			depth--
		}
		if before == 0 && depth != 0 {
			start = x.u
		} else if before != 0 && depth == 0 {
			intervals = append(intervals, [2]float64{start, x.u})
		}
	}
	return intervals
}

// facePairHalfSpaces derives one local clipping half-space per real
// pierce segment between thisPoly (a face of body) and every
// candidate planar face of otherBody the R-tree turns up, instead of
// approximating otherBody's whole interior as one convex half-space
// set. Each half-space's origin/normal comes directly from the two
// faces' own plane-plane intersection (computeFaceIntersection), so
// the split this produces is correct for a non-convex otherBody: a
// concave otherBody simply contributes more, smaller half-spaces
// rather than one that wrongly spans its missing material.
func facePairHalfSpaces(m *brep.Model, thisPoly polygon, otherTree faceQuerier, otherBody brep.BodyID, ctx numeric.Context, tol float64) []halfSpace {
	if len(thisPoly) < 3 {
		return nil
	}
	thisNormal := polygonNormal(thisPoly)
	thisOrigin := thisPoly[0]

	var out []halfSpace
	for _, otherPoly := range otherTree.candidatePolygons(thisPoly, tol) {
		if len(otherPoly) < 3 {
			continue
		}
		otherNormal := polygonNormal(otherPoly)
		otherOrigin := otherPoly[0]

		origin, dir, ok := planeIntersectionLine(thisOrigin, thisNormal, otherOrigin, otherNormal, ctx)
		if !ok {
			out = append(out, coplanarHalfSpaces(m, thisPoly, thisNormal, otherPoly, otherBody, ctx, tol)...)
			continue
		}

		ivA := lineIntervalsInPolygon(origin, dir, thisPoly, ctx)
		if len(ivA) == 0 {
			continue
		}
		ivB := lineIntervalsInPolygon(origin, dir, otherPoly, ctx)
		if len(ivB) == 0 {
			continue
		}

		for _, a := range ivA {
			for _, b := range ivB {
				lo := math.Max(a[0], b[0])
				hi := math.Min(a[1], b[1])
				if hi-lo <= tol {
					continue // the two faces' boundaries don't actually overlap on this line
				}
				p0 := origin.Add(dir.Scale(lo))
				p1 := origin.Add(dir.Scale(hi))
				mid := p0.Lerp(p1, 0.5)
				localNormal := thisNormal.Cross(dir)
				if localNormal.IsZero(ctx) {
					continue
				}
				localNormal = localNormal.Normalize()
				probe := mid.Add(localNormal.Scale(tol * 4))
				if pointInBody(m, otherBody, probe, ctx) {
					localNormal = localNormal.Negate()
				}
				out = append(out, halfSpace{origin: mid, normal: localNormal})
			}
		}
	}
	return out
}

// coplanarHalfSpaces handles the case planeIntersectionLine declines:
// thisPoly and otherPoly lie in parallel planes. If the planes are
// also coincident, their 2D polygon overlap (in thisPoly's own plane
// frame) is computed by collecting each polygon's vertices that fall
// inside the other plus every edge-edge crossing, then sorting that
// point set by angle about its centroid (spec §4.F's coplanar-face
// handler) to build the overlap ring. An overlap ring coincident with
// thisPoly itself (the two faces exactly coincide) yields no
// half-space, so such a face is kept or dropped whole by decideFaces'
// pointInBody classification; a partial overlap (e.g. two boxes flush
// on a shared plane but offset) yields one local half-space per
// overlap edge, oriented by sampling otherBody just off that edge.
func coplanarHalfSpaces(m *brep.Model, thisPoly polygon, thisNormal numeric.Vec3, otherPoly polygon, otherBody brep.BodyID, ctx numeric.Context, tol float64) []halfSpace {
	frame := geom.NewPlaneDeterministic(thisPoly[0], thisNormal)
	off := frame.Normal.Dot(otherPoly[0].Sub(frame.Origin))
	if math.Abs(off) > tol {
		return nil // parallel but not coincident: the planes never touch
	}

	a2 := project2D(frame, thisPoly)
	b2 := project2D(frame, otherPoly)
	overlap, identical := polygon2DOverlap(a2, b2, ctx)
	if identical || len(overlap) < 3 {
		return nil
	}

	var out []halfSpace
	n := len(overlap)
	for i := 0; i < n; i++ {
		a := overlap[i]
		b := overlap[(i+1)%n]
		edge := b.Sub(a)
		if edge.LengthSq() <= ctx.LengthSquared {
			continue
		}
		mid2 := a.Lerp(b, 0.5)
		localN2 := numeric.Vec2{X: -edge.Y, Y: edge.X}.Normalize()
		probe2 := mid2.Add(localN2.Scale(tol * 4))
		mid3 := frame.Eval(mid2.X, mid2.Y)
		probe3 := frame.Eval(probe2.X, probe2.Y)
		localNormal3 := frame.XDir.Scale(localN2.X).Add(frame.YDir.Scale(localN2.Y))
		if pointInBody(m, otherBody, probe3, ctx) {
			localNormal3 = localNormal3.Negate()
		}
		out = append(out, halfSpace{origin: mid3, normal: localNormal3})
	}
	return out
}

func project2D(frame geom.Plane, poly polygon) []numeric.Vec2 {
	out := make([]numeric.Vec2, len(poly))
	for i, p := range poly {
		u, v, _ := frame.Project(p)
		out[i] = numeric.Vec2{X: u, Y: v}
	}
	return out
}

// polygon2DOverlap computes the convex overlap region of two simple
// 2D polygons by collecting each one's vertices that land inside the
// other plus every pairwise edge crossing, then sorting that point set
// by angle about its centroid (spec §4.F's described coplanar
// handler). Like the spec's own wording, this is exact when the
// overlap region is convex — true whenever both source faces are
// themselves convex, the common case for prism/box/extrude primitives
// — and identical reports the degenerate case where a and b are the
// same ring up to tolerance, which callers treat as "no new cut".
func polygon2DOverlap(a, b []numeric.Vec2, ctx numeric.Context) (overlap []numeric.Vec2, identical bool) {
	if sameRing(a, b, ctx) {
		return nil, true
	}
	var pts []numeric.Vec2
	for _, p := range a {
		if pointInPolygon2D(p, b) {
			pts = append(pts, p)
		}
	}
	for _, p := range b {
		if pointInPolygon2D(p, a) {
			pts = append(pts, p)
		}
	}
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		a1, a2 := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			b1, b2 := b[j], b[(j+1)%nb]
			hit := numeric.SegSegHit(a1, a2, b1, b2)
			if hit.Kind == numeric.SegHitPoint {
				pts = append(pts, hit.Point)
			}
		}
	}
	pts = dedupRing(pts, ctx)
	if len(pts) < 3 {
		return nil, false
	}
	var c numeric.Vec2
	for _, p := range pts {
		c = c.Add(p)
	}
	c = c.Scale(1 / float64(len(pts)))
	sort.Slice(pts, func(i, j int) bool {
		return math.Atan2(pts[i].Y-c.Y, pts[i].X-c.X) < math.Atan2(pts[j].Y-c.Y, pts[j].X-c.X)
	})
	return pts, false
}

func sameRing(a, b []numeric.Vec2, ctx numeric.Context) bool {
	if len(a) != len(b) {
		return false
	}
	for _, pa := range a {
		found := false
		for _, pb := range b {
			if pa.Equal(pb, ctx) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func dedupRing(pts []numeric.Vec2, ctx numeric.Context) []numeric.Vec2 {
	var out []numeric.Vec2
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p.Equal(q, ctx) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}
