package feature

import "github.com/brepkit/kernel/brep"

// halfEdgePool dedups half-edges by vertex pair the way brep.BuildBox's
// getOrMakeHalfEdge does, generalized for reuse across extrude and
// revolve: the first request for a (start,end) pair (in either
// direction) allocates the shared Edge plus one half-edge; a later
// request for the same or opposite-direction pair returns (or
// allocates) the matching half-edge on that Edge, so adjacent faces
// naturally end up referencing the two half-edges PairTwins groups.
type halfEdgePool struct {
	model *brep.Model
	byKey map[[2]brep.VertexID]brep.HalfEdgeID
	all   []brep.HalfEdgeID
}

func newHalfEdgePool(m *brep.Model) *halfEdgePool {
	return &halfEdgePool{model: m, byKey: make(map[[2]brep.VertexID]brep.HalfEdgeID)}
}

// get returns the half-edge running a->b, allocating the backing Edge
// on first use from either direction.
func (p *halfEdgePool) get(a, b brep.VertexID) brep.HalfEdgeID {
	key := [2]brep.VertexID{a, b}
	if he, ok := p.byKey[key]; ok {
		return he
	}
	revKey := [2]brep.VertexID{b, a}
	var he brep.HalfEdgeID
	if existing, ok := p.byKey[revKey]; ok {
		h, _ := p.model.HalfEdge(existing)
		he = p.model.AddHalfEdge(h.Edge, -h.Direction)
	} else {
		edge := p.model.AddEdge(a, b, nil, 0, 1)
		he = p.model.AddHalfEdge(edge, 1)
	}
	p.byKey[key] = he
	p.all = append(p.all, he)
	return he
}

// peek returns the half-edge for a->b or b->a if already allocated, or
// the invalid handle if neither direction has been requested yet.
func (p *halfEdgePool) peek(a, b brep.VertexID) brep.HalfEdgeID {
	if he, ok := p.byKey[[2]brep.VertexID{a, b}]; ok {
		return he
	}
	if he, ok := p.byKey[[2]brep.VertexID{b, a}]; ok {
		return he
	}
	return brep.InvalidHalfEdgeID
}

// pairAll runs brep.Model.PairTwins over every half-edge this pool
// allocated.
func (p *halfEdgePool) pairAll() error {
	return p.model.PairTwins(p.all)
}
