package brep

import (
	"fmt"

	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/numeric"
)

// AddVertex returns a fresh vertex id (spec §4.C).
func (m *Model) AddVertex(p numeric.Vec3) VertexID {
	m.vertices = append(m.vertices, Vertex{Position: p})
	return VertexID(len(m.vertices))
}

// AddSurface stores a Surface and returns its handle. Surfaces are
// owned by the Model, not by any single Face, so the same Cylinder
// instance backing two coaxial side faces (extrude around a hole) can
// share one SurfaceID.
func (m *Model) AddSurface(s geom.Surface) SurfaceID {
	m.surfaces = append(m.surfaces, s)
	return SurfaceID(len(m.surfaces))
}

// AddEdge binds endpoints to the two vertices, with an optional 3D
// curve and parameter range; curve3D nil means the edge is a straight
// chord (spec §4.C).
func (m *Model) AddEdge(vs, ve VertexID, curve3D geom.Curve3D, tStart, tEnd float64) EdgeID {
	m.edges = append(m.edges, Edge{
		StartVertex: vs,
		EndVertex:   ve,
		Curve3D:     curve3D,
		TStart:      tStart,
		TEnd:        tEnd,
	})
	return EdgeID(len(m.edges))
}

// AddHalfEdge allocates a half-edge and links edge.FirstHalfEdge if
// unset (spec §4.C).
func (m *Model) AddHalfEdge(edge EdgeID, dir int8) HalfEdgeID {
	m.halfEdges = append(m.halfEdges, HalfEdge{Edge: edge, Direction: dir})
	id := HalfEdgeID(len(m.halfEdges))
	if edge.Valid() {
		e := &m.edges[edge-1]
		if !e.FirstHalfEdge.Valid() {
			e.FirstHalfEdge = id
		}
	}
	return id
}

// SetHalfEdgePCurve attaches a p-curve to a half-edge.
func (m *Model) SetHalfEdgePCurve(he HalfEdgeID, surface SurfaceID, curve2D geom.Curve2D) {
	if !he.Valid() || int(he) > len(m.halfEdges) {
		return
	}
	m.halfEdges[he-1].PCurve = &PCurve{Surface: surface, Curve2D: curve2D}
}

// AddLoop sets loop back-pointers on all half-edges and links
// next/prev cyclically (spec §4.C). The half-edges must already chain
// end-to-start in the given order.
func (m *Model) AddLoop(halfEdges []HalfEdgeID) LoopID {
	m.loops = append(m.loops, Loop{First: firstOrInvalid(halfEdges), Count: len(halfEdges)})
	id := LoopID(len(m.loops))

	n := len(halfEdges)
	for i, he := range halfEdges {
		next := halfEdges[(i+1)%n]
		prev := halfEdges[(i-1+n)%n]
		h := &m.halfEdges[he-1]
		h.Loop = id
		h.Next = next
		h.Prev = prev
	}
	return id
}

func firstOrInvalid(hs []HalfEdgeID) HalfEdgeID {
	if len(hs) == 0 {
		return InvalidHalfEdgeID
	}
	return hs[0]
}

// AddFace allocates an empty face referencing a surface (spec §4.C).
func (m *Model) AddFace(surface SurfaceID, reversed bool) FaceID {
	m.faces = append(m.faces, Face{Surface: surface, Reversed: reversed})
	return FaceID(len(m.faces))
}

// AddLoopToFace appends loop to face; the first loop appended becomes
// the outer boundary (spec §4.C).
func (m *Model) AddLoopToFace(face FaceID, loop LoopID) {
	f := &m.faces[face-1]
	f.Loops = append(f.Loops, loop)
	m.loops[loop-1].Face = face
}

// AddShell allocates an empty shell.
func (m *Model) AddShell(closed bool) ShellID {
	m.shells = append(m.shells, Shell{Closed: closed})
	return ShellID(len(m.shells))
}

// AddFaceToShell appends face to shell.
func (m *Model) AddFaceToShell(shell ShellID, face FaceID) {
	s := &m.shells[shell-1]
	s.Faces = append(s.Faces, face)
	m.faces[face-1].Shell = shell
}

// SetShellClosed overrides a shell's Closed flag, used once a shell's
// final boundary half-edge set is known (spec §4.F "the shell is
// marked closed iff the boundary is empty").
func (m *Model) SetShellClosed(id ShellID, closed bool) {
	m.shells[id-1].Closed = closed
}

// AddBody allocates an empty body.
func (m *Model) AddBody() BodyID {
	m.bodies = append(m.bodies, Body{})
	return BodyID(len(m.bodies))
}

// AddShellToBody appends shell to body.
func (m *Model) AddShellToBody(body BodyID, shell ShellID) {
	b := &m.bodies[body-1]
	b.Shells = append(b.Shells, shell)
	m.shells[shell-1].Body = body
}

// SetHalfEdgeTwin symmetrically links a and b as twins; fails if either
// is already bound to a distinct twin (spec §4.C).
func (m *Model) SetHalfEdgeTwin(a, b HalfEdgeID) error {
	ha := &m.halfEdges[a-1]
	hb := &m.halfEdges[b-1]
	if ha.Twin.Valid() && ha.Twin != b {
		return kerr.New(kerr.KindInternalInvariant,
			fmt.Sprintf("half-edge %d already twinned with %d, cannot twin with %d", a, ha.Twin, b),
			int(a), int(ha.Twin), int(b))
	}
	if hb.Twin.Valid() && hb.Twin != a {
		return kerr.New(kerr.KindInternalInvariant,
			fmt.Sprintf("half-edge %d already twinned with %d, cannot twin with %d", b, hb.Twin, a),
			int(b), int(hb.Twin), int(a))
	}
	ha.Twin = b
	hb.Twin = a
	return nil
}

// ClearHalfEdgeTwin unbinds he from its current twin (if any), symmetrically.
// Used when re-sewing a boundary after the neighboring face it was
// twinned with has been dropped or re-cut (spec §4.F "twin links are
// re-established").
func (m *Model) ClearHalfEdgeTwin(he HalfEdgeID) {
	h := &m.halfEdges[he-1]
	if !h.Twin.Valid() {
		return
	}
	other := &m.halfEdges[h.Twin-1]
	if other.Twin == he {
		other.Twin = InvalidHalfEdgeID
	}
	h.Twin = InvalidHalfEdgeID
}

// PairTwins groups the given half-edges by shared edge and twins every
// group of exactly two (spec §4.C "Twin pairing after a feature
// build"). A group of 1 is left untwinned as a boundary half-edge
// (the caller decides whether that open boundary is acceptable); a
// group of more than 2 is reported as an error.
func (m *Model) PairTwins(halfEdges []HalfEdgeID) error {
	byEdge := make(map[EdgeID][]HalfEdgeID)
	for _, he := range halfEdges {
		h, ok := m.HalfEdge(he)
		if !ok {
			continue
		}
		byEdge[h.Edge] = append(byEdge[h.Edge], he)
	}
	for edge, group := range byEdge {
		switch len(group) {
		case 1:
			// boundary half-edge; leave untwinned.
		case 2:
			if err := m.SetHalfEdgeTwin(group[0], group[1]); err != nil {
				return err
			}
		default:
			return kerr.New(kerr.KindInternalInvariant,
				fmt.Sprintf("edge %d referenced by %d half-edges, expected 1 or 2", edge, len(group)),
				int(edge))
		}
	}
	return nil
}

// DeleteVertex, DeleteEdge, ... retire entities via the Deleted flag,
// never by index reuse (spec §3.3 invariant 7).
func (m *Model) DeleteVertex(id VertexID)     { m.vertices[id-1].Deleted = true }
func (m *Model) DeleteEdge(id EdgeID)         { m.edges[id-1].Deleted = true }
func (m *Model) DeleteHalfEdge(id HalfEdgeID) { m.halfEdges[id-1].Deleted = true }
func (m *Model) DeleteLoop(id LoopID)         { m.loops[id-1].Deleted = true }
func (m *Model) DeleteFace(id FaceID)         { m.faces[id-1].Deleted = true }
func (m *Model) DeleteShell(id ShellID)       { m.shells[id-1].Deleted = true }
func (m *Model) DeleteBody(id BodyID)         { m.bodies[id-1].Deleted = true }
