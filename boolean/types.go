package boolean

import (
	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/naming"
)

// Operation selects which set-theoretic boolean Boolean computes
// (spec §4.F).
type Operation int

const (
	OpUnion Operation = iota
	OpSubtract
	OpIntersect
)

func (op Operation) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpSubtract:
		return "subtract"
	case OpIntersect:
		return "intersect"
	default:
		return "unknown"
	}
}

// Params are the inputs to Boolean (spec §6.1 "Boolean request").
type Params struct {
	BodyA, BodyB brep.BodyID
	Operation    Operation

	// Tracker and StepID are optional; when Tracker is non-nil, Boolean
	// records one EvolutionMapping per source face (spec §4.F
	// "Reporting") and registers a boolean.faceFromA/B birth for every
	// newly built sub-face.
	Tracker *naming.Tracker
	StepID  naming.StepID
}

// FaceHistoryEntry records one old->new face mapping (spec §4.F
// "Reporting": `{success, body, faceHistory[]}`).
type FaceHistoryEntry struct {
	OldFace  brep.FaceID
	OldBody  brep.BodyID
	NewFaces []brep.FaceID
	Tag      naming.EvolutionTag
}

// Result is the outcome of Boolean.
type Result struct {
	Success     bool
	Body        brep.BodyID
	FaceHistory []FaceHistoryEntry
}
