package boolean

import "github.com/brepkit/kernel/numeric"

// polygon is an ordered ring of 3D points; the edge from the last point
// back to the first is implicit.
type polygon []numeric.Vec3

// centroid returns the arithmetic mean of a polygon's vertices (not
// the area centroid; adequate for the inside/outside sample point a
// non-planar face is classified by).
func centroid(poly polygon) numeric.Vec3 {
	var sum numeric.Vec3
	for _, p := range poly {
		sum = sum.Add(p)
	}
	if len(poly) == 0 {
		return sum
	}
	return sum.Scale(1 / float64(len(poly)))
}

// polygonNormal returns the polygon's outward-facing unit normal via
// Newell's method, which is stable for near-degenerate and
// not-quite-planar rings (floating-point noise on rebuilt vertices),
// unlike a single-triangle cross product.
func polygonNormal(poly polygon) numeric.Vec3 {
	var n numeric.Vec3
	k := len(poly)
	for i := 0; i < k; i++ {
		a := poly[i]
		b := poly[(i+1)%k]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalize()
}

// halfSpace is one planar bounding face of a body: the body's interior
// is the side where normal·(p-origin) <= 0.
type halfSpace struct {
	origin numeric.Vec3
	normal numeric.Vec3
}

// clipPolygonByPlane splits poly by the half-space normal·(p-origin)<=0
// (Sutherland-Hodgman), returning the inside and outside parts. tol
// widens the boundary test so near-coplanar vertices land on the
// "inside" side rather than spuriously re-cutting a touching face
// (spec §4.F "tolerances are scale-aware").
func clipPolygonByPlane(poly polygon, hs halfSpace, tol float64) (inside, outside polygon) {
	n := len(poly)
	if n == 0 {
		return nil, nil
	}
	dist := func(p numeric.Vec3) float64 { return hs.normal.Dot(p.Sub(hs.origin)) }
	d := make([]float64, n)
	for i, p := range poly {
		d[i] = dist(p)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cur, next := poly[i], poly[j]
		dCur, dNext := d[i], d[j]
		curIn := dCur <= tol
		nextIn := dNext <= tol
		if curIn {
			inside = append(inside, cur)
		} else {
			outside = append(outside, cur)
		}
		if curIn != nextIn && dCur != dNext {
			t := dCur / (dCur - dNext)
			ix := cur.Lerp(next, t)
			inside = append(inside, ix)
			outside = append(outside, ix)
		}
	}
	return inside, outside
}

// splitResult is the outcome of clipping one polygon against a
// sequence of half-spaces describing a convex solid's interior.
type splitResult struct {
	insideAll  []polygon // the polygon(s) inside every half-space
	outsideAny []polygon // the polygon(s) outside at least one half-space
}

// isWhole reports whether poly survived the clip entirely on one side
// — i.e. the clipping volume never actually cut it. The test compares
// piece lists, not vertex counts (which a tangent touch can leave
// unchanged): whole iff exactly one of insideAll and outsideAny is
// non-empty and the other is empty.
func (r splitResult) isWhole() (whole bool, keptInside bool) {
	switch {
	case len(r.insideAll) > 0 && len(r.outsideAny) == 0:
		return true, true
	case len(r.insideAll) == 0 && len(r.outsideAny) > 0:
		return true, false
	default:
		return false, false
	}
}

// splitAgainstHalfSpaces partitions poly into the sub-polygon(s) lying
// inside every half-space in spaces and the sub-polygon(s) lying
// outside at least one, by clipping against each half-space in turn
// (an already-outside remainder is kept whole; only the still-inside
// remainder is tested against the next half-space). Unlike the
// package's earlier convex-only engine, spaces here is built per face
// pair by facePairHalfSpaces from a real plane-plane intersection with
// one specific face of the other body, not from the other body's
// whole boundary — so the result stays correct even when the other
// body is non-convex.
func splitAgainstHalfSpaces(poly polygon, spaces []halfSpace, tol float64) splitResult {
	current := []polygon{poly}
	var outsideAny []polygon
	for _, hs := range spaces {
		var nextCurrent []polygon
		for _, p := range current {
			in, out := clipPolygonByPlane(p, hs, tol)
			if len(out) >= 3 {
				outsideAny = append(outsideAny, out)
			}
			if len(in) >= 3 {
				nextCurrent = append(nextCurrent, in)
			}
		}
		current = nextCurrent
		if len(current) == 0 {
			break
		}
	}
	return splitResult{insideAll: current, outsideAny: outsideAny}
}
