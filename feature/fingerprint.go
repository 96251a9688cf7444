package feature

import (
	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
)

// faceFingerprint builds a naming.Fingerprint from face's live
// boundary (spec §4.G: every RecordBirth call needs a real
// fingerprint so a later split/merge has something to disambiguate
// candidates on), or nil for a degenerate face.
func faceFingerprint(m *brep.Model, face brep.FaceID) *naming.Fingerprint {
	pts, n, ok := m.FaceFingerprintInputs(face)
	if !ok {
		return nil
	}
	fp := naming.ComputeFingerprint(pts, &n, -1, 0)
	return &fp
}

// edgeFingerprint builds a naming.Fingerprint from an edge's two
// endpoints; edges carry no normal (spec §4.G: "normal is nil for
// edges/vertices").
func edgeFingerprint(m *brep.Model, edge brep.EdgeID) *naming.Fingerprint {
	e, ok := m.Edge(edge)
	if !ok {
		return nil
	}
	sv, ok1 := m.Vertex(e.StartVertex)
	ev, ok2 := m.Vertex(e.EndVertex)
	if !ok1 || !ok2 {
		return nil
	}
	fp := naming.ComputeFingerprint([]numeric.Vec3{sv.Position, ev.Position}, nil, -1, 0)
	return &fp
}
