package brep

import (
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/numeric"
)

// BuildBox constructs the primitive box of spec §4.E "Primitive box
// builder": eight vertices, twelve edges, six planar faces, hand-coded
// winding so each face's outer loop is CCW viewed from outside. Used
// directly by tests and by feature.Box as a thin wrapper that also
// registers persistent-naming births.
func BuildBox(m *Model, center numeric.Vec3, size numeric.Vec3) BodyID {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2

	// Corner order: binary index bit0=x,bit1=y,bit2=z, 0=min,1=max.
	corner := func(i int) numeric.Vec3 {
		x, y, z := -hx, -hy, -hz
		if i&1 != 0 {
			x = hx
		}
		if i&2 != 0 {
			y = hy
		}
		if i&4 != 0 {
			z = hz
		}
		return center.Add(numeric.Vec3{X: x, Y: y, Z: z})
	}

	v := make([]VertexID, 8)
	for i := 0; i < 8; i++ {
		v[i] = m.AddVertex(corner(i))
	}

	// Each face: 4 corner indices in CCW order viewed from outside,
	// plus the outward normal and in-plane x axis for the plane
	// surface and p-curves.
	type faceDef struct {
		corners [4]int
		normal  numeric.Vec3
		xdir    numeric.Vec3
	}
	faces := []faceDef{
		{[4]int{0, 4, 6, 2}, numeric.Vec3{X: -1}, numeric.Vec3{Z: 1}},   // -X
		{[4]int{1, 3, 7, 5}, numeric.Vec3{X: 1}, numeric.Vec3{Y: 1}},    // +X
		{[4]int{0, 1, 5, 4}, numeric.Vec3{Y: -1}, numeric.Vec3{X: 1}},   // -Y
		{[4]int{2, 6, 7, 3}, numeric.Vec3{Y: 1}, numeric.Vec3{Z: 1}},    // +Y
		{[4]int{0, 2, 3, 1}, numeric.Vec3{Z: -1}, numeric.Vec3{X: 1}},   // -Z
		{[4]int{4, 5, 7, 6}, numeric.Vec3{Z: 1}, numeric.Vec3{X: 1}},    // +Z
	}

	body := m.AddBody()
	shell := m.AddShell(true)
	m.AddShellToBody(body, shell)

	edgeHalfEdges := make(map[[2]VertexID]HalfEdgeID)
	allHalfEdges := make([]HalfEdgeID, 0, 24)

	getOrMakeHalfEdge := func(a, b VertexID) HalfEdgeID {
		key := [2]VertexID{a, b}
		revKey := [2]VertexID{b, a}
		if he, ok := edgeHalfEdges[key]; ok {
			return he
		}
		if existingHE, ok := edgeHalfEdges[revKey]; ok {
			he := m.AddHalfEdge(m.halfEdgeEdge(existingHE), -1)
			edgeHalfEdges[key] = he
			return he
		}
		edge := m.AddEdge(a, b, nil, 0, 1)
		he := m.AddHalfEdge(edge, 1)
		edgeHalfEdges[key] = he
		return he
	}

	for _, fd := range faces {
		pts3 := [4]numeric.Vec3{corner(fd.corners[0]), corner(fd.corners[1]), corner(fd.corners[2]), corner(fd.corners[3])}
		origin := pts3[0]
		surf := geom.NewPlane(origin, fd.normal, fd.xdir)
		sid := m.AddSurface(surf)
		face := m.AddFace(sid, false)

		hes := make([]HalfEdgeID, 4)
		for i := 0; i < 4; i++ {
			a := v[fd.corners[i]]
			b := v[fd.corners[(i+1)%4]]
			he := getOrMakeHalfEdge(a, b)
			hes[i] = he
			allHalfEdges = append(allHalfEdges, he)

			u0, v0, _ := surf.Project(pts3[i])
			u1, v1, _ := surf.Project(pts3[(i+1)%4])
			curve := geom.Line2D{P0: numeric.Vec2{X: u0, Y: v0}, P1: numeric.Vec2{X: u1, Y: v1}}
			m.SetHalfEdgePCurve(he, sid, curve)
		}
		loop := m.AddLoop(hes)
		m.AddLoopToFace(face, loop)
		m.AddFaceToShell(shell, face)
	}

	_ = m.PairTwins(allHalfEdges)
	return body
}

// halfEdgeEdge is a small helper so BuildBox can reuse the same Edge
// record for both directions of a shared side.
func (m *Model) halfEdgeEdge(he HalfEdgeID) EdgeID {
	h, _ := m.HalfEdge(he)
	return h.Edge
}
