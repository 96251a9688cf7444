package tess

import "github.com/brepkit/kernel/brep"

// Mesh is the §6.2 tessellation output: flat float32 position/normal
// arrays and a uint32 triangle index buffer, right-handed and
// outward-oriented.
type Mesh struct {
	Positions []float32 // x,y,z per vertex
	Normals   []float32 // x,y,z per vertex, aligned with Positions
	Indices   []uint32  // 3 per triangle
}

// TriangleCount returns the number of triangles in the mesh.
func (m Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Params is a tessellation request (spec §6.1 "Tessellation request").
type Params struct {
	Body BodyID

	// ToleranceOverride, when > 0, replaces the chord-height tolerance
	// otherwise derived from the numeric context for ring-strip
	// pre-sampling of curved faces.
	ToleranceOverride float64
}

// BodyID aliases brep.BodyID so callers don't need to import brep just
// to build a Params.
type BodyID = brep.BodyID
