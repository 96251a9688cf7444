package tess

import (
	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/numeric"
)

// Tessellate produces a display Mesh for a body, tessellating each
// live face independently and concatenating the results (spec §4.H
// "each body is tessellated face by face").
func Tessellate(m *brep.Model, ctx numeric.Context, p Params) (Mesh, error) {
	b, ok := m.Body(p.Body)
	if !ok || b.Deleted {
		return Mesh{}, kerr.New(kerr.KindInvalidInput, "tess: body not found", int(p.Body))
	}

	tol := p.ToleranceOverride
	if tol <= 0 {
		tol = ctx.Length
	}

	var mesh Mesh
	for _, fid := range m.BodyFaces(p.Body) {
		fm, err := tessellateFace(m, fid, ctx, tol)
		if err != nil {
			return Mesh{}, err
		}
		base := uint32(len(mesh.Positions) / 3)
		for _, pos := range fm.positions {
			mesh.Positions = append(mesh.Positions, float32(pos.X), float32(pos.Y), float32(pos.Z))
		}
		for _, n := range fm.normals {
			mesh.Normals = append(mesh.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		}
		for _, i := range fm.indices {
			mesh.Indices = append(mesh.Indices, base+i)
		}
	}

	if len(mesh.Indices) == 0 {
		return Mesh{}, kerr.New(kerr.KindDegenerate, "tess: body produced no triangles", int(p.Body))
	}
	return mesh, nil
}
