// Package threemf exports a tessellated mesh as a 3MF package: the
// geometry itself via go3mf's model encoder, plus a second,
// hand-written OPC part (via qmuntal/opc directly) carrying the
// persistent-naming history of the step that produced the mesh — an
// alternate, more complete interchange boundary than a bare triangle
// buffer (SPEC_FULL.md "io/threemf").
package threemf

import (
	"bytes"
	"encoding/json"

	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/tess"
	"github.com/hpinc/go3mf"
	"github.com/qmuntal/opc"
)

const (
	modelPartName       = "/3D/3dmodel.model"
	modelContentType    = `application/vnd.ms-package.3dmanufacturing-3dmodel+xml`
	namingPartName      = "/Metadata/naming_history.json"
	namingContentType   = "application/json"
	namingRelationType  = "http://brepkit.dev/relationships/naming-history"
	modelRelationType   = "http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"
)

// Export writes mesh as the package's single build object, and — when
// mappings is non-nil — includes a naming_history.json part recording
// the evolution mappings the host wants to ship alongside the
// geometry (e.g. so a downstream tool can re-resolve PersistentRefs
// against the shipped mesh without a side channel).
func Export(w *opc.Writer, mesh tess.Mesh, mappings []naming.EvolutionMapping) error {
	model := meshToModel(mesh)

	var modelXML bytes.Buffer
	enc := go3mf.NewEncoder(&modelXML)
	if err := enc.Encode(model); err != nil {
		return kerr.New(kerr.KindInvalidInput, "threemf: encode model: "+err.Error())
	}

	modelPart, err := w.Create(modelPartName, modelContentType)
	if err != nil {
		return kerr.New(kerr.KindInvalidInput, "threemf: create model part: "+err.Error())
	}
	if _, err := modelPart.Write(modelXML.Bytes()); err != nil {
		return kerr.New(kerr.KindInvalidInput, "threemf: write model part: "+err.Error())
	}
	if err := w.AddRelationship(opc.Relationship{TargetURI: modelPartName, Type: modelRelationType}); err != nil {
		return kerr.New(kerr.KindInvalidInput, "threemf: model relationship: "+err.Error())
	}

	if mappings != nil {
		if err := writeNamingPart(w, mappings); err != nil {
			return err
		}
	}

	return w.Close()
}

func writeNamingPart(w *opc.Writer, mappings []naming.EvolutionMapping) error {
	payload, err := json.Marshal(mappings)
	if err != nil {
		return kerr.New(kerr.KindInvalidInput, "threemf: marshal naming history: "+err.Error())
	}
	part, err := w.Create(namingPartName, namingContentType)
	if err != nil {
		return kerr.New(kerr.KindInvalidInput, "threemf: create naming part: "+err.Error())
	}
	if _, err := part.Write(payload); err != nil {
		return kerr.New(kerr.KindInvalidInput, "threemf: write naming part: "+err.Error())
	}
	return w.AddRelationship(opc.Relationship{TargetURI: namingPartName, Type: namingRelationType})
}

// meshToModel flattens mesh's flat float32 triangle soup into a
// single-object go3mf.Model; shared-vertex welding is left to the
// consumer (3MF tolerates a duplicated-vertex mesh, and the mesh was
// already built per-face by tess without a global vertex cache).
func meshToModel(mesh tess.Mesh) *go3mf.Model {
	model := &go3mf.Model{}

	verts := make([]go3mf.Point3D, 0, len(mesh.Positions)/3)
	for i := 0; i+2 < len(mesh.Positions); i += 3 {
		verts = append(verts, go3mf.Point3D{
			X: mesh.Positions[i], Y: mesh.Positions[i+1], Z: mesh.Positions[i+2],
		})
	}
	tris := make([]go3mf.Triangle, 0, len(mesh.Indices)/3)
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		tris = append(tris, go3mf.Triangle{
			V1: mesh.Indices[i], V2: mesh.Indices[i+1], V3: mesh.Indices[i+2],
		})
	}

	const objectID = 1
	obj := &go3mf.Object{
		ID: objectID,
		Mesh: &go3mf.Mesh{
			Vertices:  go3mf.Vertices{Vertex: verts},
			Triangles: go3mf.Triangles{Triangle: tris},
		},
	}
	model.Resources.Objects = append(model.Resources.Objects, obj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: objectID})
	return model
}
