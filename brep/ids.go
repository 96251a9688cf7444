// Package brep implements the struct-of-arrays BREP topology store of
// spec §3.3/§4.C: body -> shell -> face -> loop -> half-edge -> edge ->
// vertex, with explicit ownership, manifold invariants, and the
// SameParameter discipline linking 3D edge curves to p-curves.
//
// Cross-entity references are integer handles (spec §9.1: "use integer
// handles for all cross-entity references; ownership flows downward via
// explicit owned-by lists; upward pointers are back-references only").
// The zero value of every handle type is the invalid handle, so a
// zeroed struct has no dangling references by construction.
package brep

// VertexID, EdgeID, HalfEdgeID, LoopID, FaceID, ShellID, SurfaceID and
// BodyID are 1-based handles into the Model's struct-of-arrays tables;
// 0 is the invalid/absent handle in every table.
type (
	VertexID   int
	EdgeID     int
	HalfEdgeID int
	LoopID     int
	FaceID     int
	ShellID    int
	SurfaceID  int
	BodyID     int
)

// Invalid handle constants, for readability at call sites.
const (
	InvalidVertexID   VertexID   = 0
	InvalidEdgeID     EdgeID     = 0
	InvalidHalfEdgeID HalfEdgeID = 0
	InvalidLoopID     LoopID     = 0
	InvalidFaceID     FaceID     = 0
	InvalidShellID    ShellID    = 0
	InvalidSurfaceID  SurfaceID  = 0
	InvalidBodyID     BodyID     = 0
)

func (id VertexID) Valid() bool   { return id != InvalidVertexID }
func (id EdgeID) Valid() bool     { return id != InvalidEdgeID }
func (id HalfEdgeID) Valid() bool { return id != InvalidHalfEdgeID }
func (id LoopID) Valid() bool     { return id != InvalidLoopID }
func (id FaceID) Valid() bool     { return id != InvalidFaceID }
func (id ShellID) Valid() bool    { return id != InvalidShellID }
func (id SurfaceID) Valid() bool  { return id != InvalidSurfaceID }
func (id BodyID) Valid() bool     { return id != InvalidBodyID }
