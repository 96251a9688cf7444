package boolean

import "github.com/brepkit/kernel/brep"

// edgePool dedups boundary half-edges by vertex-pair across the whole
// re-sewn shell, generalizing feature.halfEdgePool to also seed
// half-edges that already exist (from a whole-kept face whose old
// twin must be replaced), not only ones this pass allocates.
type edgePool struct {
	m     *brep.Model
	byKey map[[2]brep.VertexID]brep.HalfEdgeID
	all   []brep.HalfEdgeID
}

func newEdgePool(m *brep.Model) *edgePool {
	return &edgePool{m: m, byKey: make(map[[2]brep.VertexID]brep.HalfEdgeID)}
}

// seed registers an already-built half-edge at its own (start,end)
// key so a new face sharing that boundary attaches to the same Edge
// rather than creating a duplicate. The caller must have already
// cleared any stale twin on he.
func (p *edgePool) seed(he brep.HalfEdgeID) {
	a, b := p.m.HalfEdgeStart(he), p.m.HalfEdgeEnd(he)
	p.byKey[[2]brep.VertexID{a, b}] = he
	p.all = append(p.all, he)
}

// getOrMake returns a half-edge running a->b, reusing the shared Edge
// of an opposite-direction entry already in the pool so PairTwins can
// link the two without ever creating two Edge records for one
// boundary segment.
func (p *edgePool) getOrMake(a, b brep.VertexID) brep.HalfEdgeID {
	key := [2]brep.VertexID{a, b}
	if he, ok := p.byKey[key]; ok {
		return he
	}
	revKey := [2]brep.VertexID{b, a}
	if other, ok := p.byKey[revKey]; ok {
		h, _ := p.m.HalfEdge(other)
		he := p.m.AddHalfEdge(h.Edge, -h.Direction)
		p.byKey[key] = he
		p.all = append(p.all, he)
		return he
	}
	edge := p.m.AddEdge(a, b, nil, 0, 1)
	he := p.m.AddHalfEdge(edge, 1)
	p.byKey[key] = he
	p.all = append(p.all, he)
	return he
}

// pairAll twins every group of exactly two half-edges sharing an Edge
// (spec §4.C "Twin pairing"); a group of one is left as an open
// boundary.
func (p *edgePool) pairAll() error {
	return p.m.PairTwins(p.all)
}
