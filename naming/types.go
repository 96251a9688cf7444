// Package naming implements the persistent-naming / evolution tracker
// of spec §3.5/§4.G: feature ids, step ids, selectors, fingerprints,
// the evolution map, and resolve.
package naming

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brepkit/kernel/numeric"
)

// FeatureID is a monotonic integer allocated per feature.
type FeatureID int

// StepID is a monotonic integer allocated per boolean step.
type StepID int

// SubshapeKind classifies which topology table a SubshapeRef's ID
// indexes into.
type SubshapeKind int

const (
	KindVertex SubshapeKind = iota
	KindEdge
	KindFace
	KindShell
	KindBody
)

func (k SubshapeKind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindFace:
		return "face"
	case KindShell:
		return "shell"
	case KindBody:
		return "body"
	default:
		return "unknown"
	}
}

// SubshapeRef is a generalized handle into the topology store: a kind
// tag, the owning body (so UpdateBodyMapping can remap every ref that
// hangs off a rebuilt body), and the local handle value.
type SubshapeRef struct {
	Kind SubshapeKind
	Body int // brep.BodyID, stored as int to avoid an import cycle
	ID   int // brep.VertexID/EdgeID/FaceID/ShellID value (or brep.BodyID again if Kind==KindBody)
}

// Selector is a tag kind plus a small data map (spec §3.5), e.g.
// extrude.topCap{loop:0}. Selector kind strings are the closed enum of
// spec §6.3; new kinds may be added but existing kinds must not be
// renamed.
type Selector struct {
	Kind string
	Data map[string]int
}

// Key returns a canonical, deterministic string encoding of the
// selector, used as a map key (insertion order of Data is irrelevant,
// per spec §9.1 "semantic containers... insertion order is
// irrelevant").
func (s Selector) Key() string {
	keys := make([]string, 0, len(s.Data))
	for k := range s.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(s.Kind)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%d", k, s.Data[k])
	}
	return b.String()
}

// Selector kind constants — the closed enum of spec §6.3.
const (
	SelExtrudeTopCap    = "extrude.topCap"
	SelExtrudeBottomCap = "extrude.bottomCap"
	SelExtrudeSide      = "extrude.side"
	SelExtrudeSideEdge  = "extrude.sideEdge"
	SelExtrudeTopEdge   = "extrude.topEdge"
	SelExtrudeBottomEdge = "extrude.bottomEdge"
	SelRevolveSide      = "revolve.side"
	SelRevolveStartCap  = "revolve.startCap"
	SelRevolveEndCap    = "revolve.endCap"
	SelPrimitiveFace    = "primitive.face"
	SelBooleanFaceFromA = "boolean.faceFromA"
	SelBooleanFaceFromB = "boolean.faceFromB"
)

// Fingerprint is a compact geometric/topological descriptor used to
// disambiguate candidate sub-shapes when multiple survivors exist
// (spec §3.5).
type Fingerprint struct {
	Centroid      numeric.Vec3
	Extent        float64 // RMS spread of the points about Centroid (see ComputeFingerprint)
	Normal        *numeric.Vec3
	AdjacentCount *int
	AdjacencyHash *uint64
}

// PersistentRef is what the outside world stores (spec §3.5).
type PersistentRef struct {
	OriginFeatureID FeatureID
	Selector        Selector
	ExpectedType    SubshapeKind
	Fingerprint     *Fingerprint
}

// EvolutionTag classifies how a sub-shape changed across a step.
type EvolutionTag string

const (
	TagBirth     EvolutionTag = "birth"
	TagDeath     EvolutionTag = "death"
	TagSplit     EvolutionTag = "split"
	TagMerge     EvolutionTag = "merge"
	TagModify    EvolutionTag = "modify"
	TagUnchanged EvolutionTag = "unchanged"
)

// EvolutionMapping records old -> news[] with a tag (spec §3.5).
type EvolutionMapping struct {
	Old  SubshapeRef
	News []SubshapeRef
	Tag  EvolutionTag
}
