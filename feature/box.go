package feature

import (
	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
)

// BoxParams are the inputs to Box (spec §4.E "Primitive box").
type BoxParams struct {
	Center numeric.Vec3
	Size   numeric.Vec3

	Tracker   *naming.Tracker
	FeatureID naming.FeatureID
}

// BoxResult is the primitive box output, with one ref per face
// (selector kind primitive.face, spec §6.3).
type BoxResult struct {
	Body brep.BodyID
	Refs []naming.PersistentRef
}

// Box wraps brep.BuildBox with persistent-naming registration, the
// thin layer spec.md's primitive-box builder needs to participate in
// the naming system the same way extrude/revolve faces do.
func Box(m *brep.Model, p BoxParams) BoxResult {
	body := brep.BuildBox(m, p.Center, p.Size)
	result := BoxResult{Body: body}
	if p.Tracker == nil {
		return result
	}
	b, _ := m.Body(body)
	for _, shell := range b.Shells {
		s, _ := m.Shell(shell)
		for i, face := range s.Faces {
			sel := naming.Selector{Kind: naming.SelPrimitiveFace, Data: map[string]int{"face": i}}
			ref := naming.SubshapeRef{Kind: naming.KindFace, Body: int(body), ID: int(face)}
			p.Tracker.RecordBirth(p.FeatureID, sel, ref, faceFingerprint(m, face))
			result.Refs = append(result.Refs, naming.PersistentRef{OriginFeatureID: p.FeatureID, Selector: sel, ExpectedType: naming.KindFace})
		}
	}
	return result
}
