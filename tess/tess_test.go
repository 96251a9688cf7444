package tess

import (
	"math"
	"testing"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarClipSquare(t *testing.T) {
	square := []numeric.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	tris := earClip(square)
	assert.Len(t, tris, 2)
}

func TestEarClipConvexPentagon(t *testing.T) {
	poly := []numeric.Vec2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 1.5}, {X: 1, Y: 3}, {X: -1, Y: 1.5}}
	tris := earClip(poly)
	assert.Len(t, tris, 3)
}

func TestEarClipNonConvex(t *testing.T) {
	// An "L" shape: concave at vertex 3.
	poly := []numeric.Vec2{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1},
		{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	}
	tris := earClip(poly)
	require.Len(t, tris, 4)

	area := 0.0
	for _, tr := range tris {
		a, b, c := poly[tr[0]], poly[tr[1]], poly[tr[2]]
		area += math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
	}
	assert.InDelta(t, 3.0, area, 1e-9, "L-shape area is 2x1 + 1x1")
}

func TestBridgeHolesSquareWithSquareHole(t *testing.T) {
	outer := ensureCCW([]numeric.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}})
	hole := []numeric.Vec2{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}}

	bridged := bridgeHoles(outer, [][]numeric.Vec2{hole})
	tris := earClip(bridged)
	require.NotEmpty(t, tris)

	area := 0.0
	for _, tr := range tris {
		a, b, c := bridged[tr[0]], bridged[tr[1]], bridged[tr[2]]
		area += math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
	}
	assert.InDelta(t, 15.0, area, 1e-6, "4x4 outer minus a 1x1 hole is 15")
}

func TestTessellateBox(t *testing.T) {
	m := brep.NewModel()
	body := brep.BuildBox(m, numeric.Vec3{}, numeric.Vec3{X: 2, Y: 2, Z: 2})

	mesh, err := Tessellate(m, numeric.DefaultContext(), Params{Body: body})
	require.NoError(t, err)

	assert.Equal(t, 12, mesh.TriangleCount(), "a 6-face box ear-clips to 2 triangles per face")
	assert.Len(t, mesh.Positions, len(mesh.Normals))
	assert.Equal(t, len(mesh.Positions)/3*3, len(mesh.Positions))

	minX, maxX := math.Inf(1), math.Inf(-1)
	for i := 0; i < len(mesh.Positions); i += 3 {
		x := float64(mesh.Positions[i])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
	}
	assert.InDelta(t, -1, minX, 1e-9)
	assert.InDelta(t, 1, maxX, 1e-9)
}

func TestTessellateMissingBody(t *testing.T) {
	m := brep.NewModel()
	_, err := Tessellate(m, numeric.DefaultContext(), Params{Body: brep.BodyID(99)})
	assert.Error(t, err)
}
