package brep

import (
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/numeric"
)

// Vertex holds a position and a small flag word; entities are retired
// via Deleted, never by index reuse within a build (spec §3.3 invariant
// 7).
type Vertex struct {
	Position numeric.Vec3
	Flags    uint32
	Deleted  bool
}

// Edge is the 3D curve record shared by exactly two half-edges in a
// manifold body (or one, at a boundary). Curve3D is nil for a straight
// chord between StartVertex and EndVertex.
type Edge struct {
	StartVertex   VertexID
	EndVertex     VertexID
	Curve3D       geom.Curve3D
	TStart, TEnd  float64
	FirstHalfEdge HalfEdgeID
	Deleted       bool
}

// PCurve binds a half-edge's trace to a surface's 2D parameter space
// (spec §3.3: "a (surface index, 2D curve index) pair").
type PCurve struct {
	Surface SurfaceID
	Curve2D geom.Curve2D
}

// HalfEdge is a directed use of an Edge by one side of a Loop.
// Direction is +1 if the half-edge runs the same way as its Edge's
// StartVertex->EndVertex, -1 if reversed.
type HalfEdge struct {
	Edge      EdgeID
	Direction int8
	Loop      LoopID
	Next      HalfEdgeID
	Prev      HalfEdgeID
	Twin      HalfEdgeID
	PCurve    *PCurve
	Deleted   bool
}

// Loop is a closed cycle of half-edges bounding a Face; Count is the
// cycle length, checked against the actual next/prev walk by Validate.
type Loop struct {
	Face    FaceID
	First   HalfEdgeID
	Count   int
	Deleted bool
}

// Face owns an ordered list of Loops; Loops[0] is the outer boundary,
// the rest are holes (spec §3.3).
type Face struct {
	Shell    ShellID
	Surface  SurfaceID
	Reversed bool
	Loops    []LoopID
	Deleted  bool
}

// Shell is a maximal connected set of Faces; Closed means every edge in
// it is used by exactly two half-edges (no boundary).
type Shell struct {
	Body    BodyID
	Closed  bool
	Faces   []FaceID
	Deleted bool
}

// Body owns an ordered list of Shells.
type Body struct {
	Flags   uint32
	Shells  []ShellID
	Deleted bool
}

// Model is the struct-of-arrays BREP store. A Model owns its tables
// exclusively; callers must not mutate it outside the constructors in
// this package (spec §5 "Shared resources").
type Model struct {
	vertices  []Vertex
	edges     []Edge
	halfEdges []HalfEdge
	loops     []Loop
	faces     []Face
	shells    []Shell
	bodies    []Body
	surfaces  []geom.Surface
}

// NewModel returns an empty topology store.
func NewModel() *Model {
	return &Model{}
}

// Accessors. All take a 1-based handle; index 0 (invalid) or an
// out-of-range handle returns the zero value and ok=false.

func (m *Model) Vertex(id VertexID) (Vertex, bool) {
	if int(id) < 1 || int(id) > len(m.vertices) {
		return Vertex{}, false
	}
	return m.vertices[id-1], true
}

func (m *Model) Edge(id EdgeID) (Edge, bool) {
	if int(id) < 1 || int(id) > len(m.edges) {
		return Edge{}, false
	}
	return m.edges[id-1], true
}

func (m *Model) HalfEdge(id HalfEdgeID) (HalfEdge, bool) {
	if int(id) < 1 || int(id) > len(m.halfEdges) {
		return HalfEdge{}, false
	}
	return m.halfEdges[id-1], true
}

func (m *Model) Loop(id LoopID) (Loop, bool) {
	if int(id) < 1 || int(id) > len(m.loops) {
		return Loop{}, false
	}
	return m.loops[id-1], true
}

func (m *Model) Face(id FaceID) (Face, bool) {
	if int(id) < 1 || int(id) > len(m.faces) {
		return Face{}, false
	}
	return m.faces[id-1], true
}

func (m *Model) Shell(id ShellID) (Shell, bool) {
	if int(id) < 1 || int(id) > len(m.shells) {
		return Shell{}, false
	}
	return m.shells[id-1], true
}

func (m *Model) Body(id BodyID) (Body, bool) {
	if int(id) < 1 || int(id) > len(m.bodies) {
		return Body{}, false
	}
	return m.bodies[id-1], true
}

func (m *Model) Surface(id SurfaceID) (geom.Surface, bool) {
	if int(id) < 1 || int(id) > len(m.surfaces) {
		return nil, false
	}
	return m.surfaces[id-1], true
}

// NumVertices, NumEdges, NumFaces... report raw table sizes (including
// deleted-but-not-compacted slots), i.e. the highest valid handle of
// each table.
func (m *Model) NumVertices() int  { return len(m.vertices) }
func (m *Model) NumEdges() int     { return len(m.edges) }
func (m *Model) NumHalfEdges() int { return len(m.halfEdges) }
func (m *Model) NumLoops() int     { return len(m.loops) }
func (m *Model) NumFaces() int     { return len(m.faces) }
func (m *Model) NumShells() int    { return len(m.shells) }
func (m *Model) NumBodies() int    { return len(m.bodies) }

// LiveVertexCount, LiveFaceCount etc. count only non-deleted entries,
// which is what the Euler-characteristic invariant (spec §8.1.4) is
// defined over.
func (m *Model) LiveVertexCount() int {
	n := 0
	for _, v := range m.vertices {
		if !v.Deleted {
			n++
		}
	}
	return n
}

func (m *Model) LiveEdgeCount() int {
	n := 0
	for _, e := range m.edges {
		if !e.Deleted {
			n++
		}
	}
	return n
}

func (m *Model) LiveFaceCount() int {
	n := 0
	for _, f := range m.faces {
		if !f.Deleted {
			n++
		}
	}
	return n
}
