package brep

import "github.com/brepkit/kernel/numeric"

// LoopHalfEdges walks a loop's next cycle starting at First and returns
// the half-edges in order. It stops after Count steps regardless of
// whether the cycle actually closes, so a broken cycle shows up as a
// length or identity mismatch rather than an infinite loop — Validate
// reports that mismatch explicitly.
func (m *Model) LoopHalfEdges(loop LoopID) []HalfEdgeID {
	l, ok := m.Loop(loop)
	if !ok || !l.First.Valid() {
		return nil
	}
	out := make([]HalfEdgeID, 0, l.Count)
	cur := l.First
	for i := 0; i < l.Count; i++ {
		out = append(out, cur)
		h, ok := m.HalfEdge(cur)
		if !ok {
			break
		}
		cur = h.Next
	}
	return out
}

// OuterLoop returns the face's outer boundary loop (Loops[0]), or
// InvalidLoopID if the face has no loops.
func (f Face) OuterLoop() LoopID {
	if len(f.Loops) == 0 {
		return InvalidLoopID
	}
	return f.Loops[0]
}

// HoleLoops returns the face's inner (hole) loops.
func (f Face) HoleLoops() []LoopID {
	if len(f.Loops) <= 1 {
		return nil
	}
	return f.Loops[1:]
}

// HalfEdgeStart returns the vertex a half-edge starts from, honoring
// Direction.
func (m *Model) HalfEdgeStart(he HalfEdgeID) VertexID {
	h, ok := m.HalfEdge(he)
	if !ok {
		return InvalidVertexID
	}
	e, ok := m.Edge(h.Edge)
	if !ok {
		return InvalidVertexID
	}
	if h.Direction >= 0 {
		return e.StartVertex
	}
	return e.EndVertex
}

// HalfEdgeEnd returns the vertex a half-edge ends at, honoring
// Direction.
func (m *Model) HalfEdgeEnd(he HalfEdgeID) VertexID {
	h, ok := m.HalfEdge(he)
	if !ok {
		return InvalidVertexID
	}
	e, ok := m.Edge(h.Edge)
	if !ok {
		return InvalidVertexID
	}
	if h.Direction >= 0 {
		return e.EndVertex
	}
	return e.StartVertex
}

// EvalEdgeCurve evaluates the 3D locus of an edge at t in [0,1],
// honoring the edge's explicit Curve3D parameter range if present, or
// falling back to linear interpolation between vertex positions for a
// straight edge (spec §4.C "SameParameter validator").
func (m *Model) EvalEdgeCurve(edge EdgeID, t float64) (numeric.Vec3, bool) {
	e, ok := m.Edge(edge)
	if !ok {
		return numeric.Vec3{}, false
	}
	if e.Curve3D != nil {
		span := e.TEnd - e.TStart
		return e.Curve3D.Eval(e.TStart + span*t), true
	}
	vs, ok1 := m.Vertex(e.StartVertex)
	ve, ok2 := m.Vertex(e.EndVertex)
	if !ok1 || !ok2 {
		return numeric.Vec3{}, false
	}
	return vs.Position.Lerp(ve.Position, t), true
}

// EvalHalfEdgeCurve evaluates the half-edge's trace at t in [0,1],
// honoring Direction (a reversed half-edge walks its edge curve
// backwards).
func (m *Model) EvalHalfEdgeCurve(he HalfEdgeID, t float64) (numeric.Vec3, bool) {
	h, ok := m.HalfEdge(he)
	if !ok {
		return numeric.Vec3{}, false
	}
	if h.Direction < 0 {
		t = 1 - t
	}
	return m.EvalEdgeCurve(h.Edge, t)
}

// FaceVertices returns the ordered 3D vertex positions of a face's
// outer loop, one per half-edge start.
func (m *Model) FaceVertices(face FaceID) []numeric.Vec3 {
	f, ok := m.Face(face)
	if !ok {
		return nil
	}
	hes := m.LoopHalfEdges(f.OuterLoop())
	out := make([]numeric.Vec3, 0, len(hes))
	for _, he := range hes {
		v, ok := m.Vertex(m.HalfEdgeStart(he))
		if ok {
			out = append(out, v.Position)
		}
	}
	return out
}

// LoopVertices returns the ordered 3D vertex positions of any loop
// (outer or hole).
func (m *Model) LoopVertices(loop LoopID) []numeric.Vec3 {
	hes := m.LoopHalfEdges(loop)
	out := make([]numeric.Vec3, 0, len(hes))
	for _, he := range hes {
		v, ok := m.Vertex(m.HalfEdgeStart(he))
		if ok {
			out = append(out, v.Position)
		}
	}
	return out
}

// FaceFingerprintInputs returns a face's outer-loop boundary points
// plus its Newell's-method normal, the raw material naming.
// ComputeFingerprint needs (spec §4.G) to build a PersistentRef's
// shape fingerprint. ok is false for a degenerate (fewer than 3
// vertices) outer loop.
func (m *Model) FaceFingerprintInputs(face FaceID) (points []numeric.Vec3, normal numeric.Vec3, ok bool) {
	pts := m.FaceVertices(face)
	if len(pts) < 3 {
		return nil, numeric.Vec3{}, false
	}
	var n numeric.Vec3
	k := len(pts)
	for i := 0; i < k; i++ {
		a := pts[i]
		b := pts[(i+1)%k]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return pts, n.Normalize(), true
}

// BodyFaces returns every live face belonging to any shell of body.
func (m *Model) BodyFaces(body BodyID) []FaceID {
	b, ok := m.Body(body)
	if !ok {
		return nil
	}
	var out []FaceID
	for _, sid := range b.Shells {
		s, ok := m.Shell(sid)
		if !ok {
			continue
		}
		for _, fid := range s.Faces {
			if f, ok := m.Face(fid); ok && !f.Deleted {
				out = append(out, fid)
			}
		}
	}
	return out
}

// FaceHalfEdges returns all half-edges of all loops (outer + holes) of
// a face, outer loop first.
func (m *Model) FaceHalfEdges(face FaceID) []HalfEdgeID {
	f, ok := m.Face(face)
	if !ok {
		return nil
	}
	var out []HalfEdgeID
	for _, l := range f.Loops {
		out = append(out, m.LoopHalfEdges(l)...)
	}
	return out
}
