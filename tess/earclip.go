package tess

import (
	"math"
	"sort"

	"github.com/brepkit/kernel/numeric"
)

// earEpsilon is the barycentric-coordinate slack used by containsNoVertex
// (spec §4.H "barycentric-coordinate test with a small epsilon").
const earEpsilon = 1e-9

// signedArea2D returns twice the signed area of the polygon (positive
// for CCW, negative for CW); computed via the standard shoelace sum
// rather than repeated Orient2D calls, since it needs the magnitude,
// not just a sign.
func signedArea2D(poly []numeric.Vec2) float64 {
	n := len(poly)
	var sum float64
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

// ensureCCW returns poly unchanged if its signed area is positive
// (CCW), or reversed if it is negative (spec §4.H "reversed ... if not
// CCW").
func ensureCCW(poly []numeric.Vec2) []numeric.Vec2 {
	if signedArea2D(poly) >= 0 {
		return poly
	}
	out := make([]numeric.Vec2, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

// ensureCW is ensureCCW's mirror, used for hole loops (which must wind
// opposite the outer boundary before bridging).
func ensureCW(poly []numeric.Vec2) []numeric.Vec2 {
	if signedArea2D(poly) <= 0 {
		return poly
	}
	out := make([]numeric.Vec2, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

// isConvexVertex reports whether the interior angle at b (between a->b
// and b->c) is convex for a CCW polygon: c must lie to the left of, or
// on, the directed line a->b.
func isConvexVertex(a, b, c numeric.Vec2) bool {
	return numeric.Orient2D(a, b, c) >= 0
}

// barycentric returns p's barycentric coordinates w.r.t. triangle
// (a,b,c).
func barycentric(p, a, b, c numeric.Vec2) (u, v, w float64) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return -1, -1, -1
	}
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1 - v - w
	return u, v, w
}

// strictlyInside reports whether p lies strictly within triangle
// (a,b,c), within earEpsilon of the boundary counting as outside (so a
// candidate ear's containment test never admits a vertex sitting on
// its own edge).
func strictlyInside(p, a, b, c numeric.Vec2) bool {
	u, v, w := barycentric(p, a, b, c)
	return u > earEpsilon && v > earEpsilon && w > earEpsilon
}

// earClip triangulates a simple (possibly already hole-bridged), CCW
// polygon by repeatedly clipping convex "ear" vertices whose candidate
// triangle contains no other remaining vertex (spec §4.H). Returns
// triangles as index triples into poly.
func earClip(poly []numeric.Vec2) [][3]int {
	n := len(poly)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var tris [][3]int
	// guard clamps the worst case to O(n^2) passes; a polygon that
	// never yields an ear (degenerate/self-intersecting input) stops
	// here rather than looping forever.
	guard := n * n
	for len(idx) > 3 && guard > 0 {
		clipped := false
		m := len(idx)
		for i := 0; i < m; i++ {
			guard--
			ip, ic, in := idx[(i-1+m)%m], idx[i], idx[(i+1)%m]
			a, b, c := poly[ip], poly[ic], poly[in]
			if !isConvexVertex(a, b, c) {
				continue
			}
			isEar := true
			for _, j := range idx {
				if j == ip || j == ic || j == in {
					continue
				}
				if strictlyInside(poly[j], a, b, c) {
					isEar = false
					break
				}
			}
			if !isEar {
				continue
			}
			tris = append(tris, [3]int{ip, ic, in})
			idx = append(append([]int{}, idx[:i]...), idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

// bridgeHoles splices each hole loop into the outer loop via a
// zero-width bridge edge pair, producing one simple polygon suitable
// for earClip (spec §4.H: "bridges are constructed from the rightmost
// hole vertex to the outer boundary via a rightward ray-cast, then to
// the nearest suitable outer vertex"). Holes are processed in order of
// decreasing rightmost-x so an already-bridged hole's extra boundary
// is available as a target for the next one.
func bridgeHoles(outer []numeric.Vec2, holes [][]numeric.Vec2) []numeric.Vec2 {
	type hole struct {
		pts     []numeric.Vec2
		rightX  float64
	}
	hs := make([]hole, len(holes))
	for i, h := range holes {
		cw := ensureCW(h)
		rx := cw[0].X
		for _, p := range cw {
			if p.X > rx {
				rx = p.X
			}
		}
		hs[i] = hole{pts: cw, rightX: rx}
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i].rightX > hs[j].rightX })

	result := outer
	for _, h := range hs {
		result = bridgeOne(result, h.pts)
	}
	return result
}

// bridgeOne splices a single CW hole loop into a CCW (or
// already-bridged) outer ring.
func bridgeOne(outer []numeric.Vec2, hole []numeric.Vec2) []numeric.Vec2 {
	// Rightmost hole vertex.
	m := 0
	for i := 1; i < len(hole); i++ {
		if hole[i].X > hole[m].X {
			m = i
		}
	}
	rayOrigin := hole[m]

	bestX := math.Inf(1)
	bestEdge := -1
	var bestHit numeric.Vec2
	n := len(outer)
	for i := 0; i < n; i++ {
		a, b := outer[i], outer[(i+1)%n]
		if (a.Y > rayOrigin.Y) == (b.Y > rayOrigin.Y) {
			continue // edge does not straddle the ray's y
		}
		t := (rayOrigin.Y - a.Y) / (b.Y - a.Y)
		x := a.X + t*(b.X-a.X)
		if x < rayOrigin.X {
			continue
		}
		if x < bestX {
			bestX = x
			bestEdge = i
			bestHit = numeric.Vec2{X: x, Y: rayOrigin.Y}
		}
	}
	if bestEdge < 0 {
		// No intersection found (degenerate input); bridge to the
		// first outer vertex rather than drop the hole entirely.
		return spliceHole(outer, 0, hole, m)
	}

	a, b := outer[bestEdge], outer[(bestEdge+1)%n]
	target := bestEdge
	if b.Sub(bestHit).LengthSq() < a.Sub(bestHit).LengthSq() {
		target = (bestEdge + 1) % n
	}
	return spliceHole(outer, target, hole, m)
}

// spliceHole rewrites outer into outer[0..target] + hole[start..] +
// hole[..start] + hole[start] + outer[target..], the standard
// duplicate-vertex bridge that turns an outer-ring-plus-hole into one
// simple polygon.
func spliceHole(outer []numeric.Vec2, target int, hole []numeric.Vec2, start int) []numeric.Vec2 {
	n, k := len(outer), len(hole)
	out := make([]numeric.Vec2, 0, n+k+2)
	for i := 0; i <= target; i++ {
		out = append(out, outer[i])
	}
	for i := 0; i <= k; i++ {
		out = append(out, hole[(start+i)%k])
	}
	out = append(out, outer[target])
	out = append(out, outer[target+1:]...)
	return out
}
