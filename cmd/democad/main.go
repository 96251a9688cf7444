// Command democad builds a small part end to end — two primitive
// solids, a boolean subtract between them, persistent-naming history,
// tessellation, then every interchange adapter — exercising the whole
// pipeline in one run the way axoloti/main.go exercised the teacher's
// SDF pipeline end to end.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/brepkit/kernel/boolean"
	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/feature"
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/io/dxfio"
	"github.com/brepkit/kernel/io/stepio"
	"github.com/brepkit/kernel/io/svgpreview"
	"github.com/brepkit/kernel/io/threemf"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/sketch"
	"github.com/brepkit/kernel/tess"
	"github.com/qmuntal/opc"
)

func main() {
	outDir := "."
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("democad: %v", err)
	}

	ctx := numeric.DefaultContext()
	tracker := naming.NewTracker(1.0)
	m := brep.NewModel()

	block := feature.Box(m, feature.BoxParams{
		Center:    numeric.Vec3{},
		Size:      numeric.Vec3{X: 20, Y: 20, Z: 10},
		Tracker:   tracker,
		FeatureID: tracker.AllocateFeatureID(),
	})

	bore := feature.Box(m, feature.BoxParams{
		Center:    numeric.Vec3{X: 0, Y: 0, Z: 3},
		Size:      numeric.Vec3{X: 8, Y: 8, Z: 8},
		Tracker:   tracker,
		FeatureID: tracker.AllocateFeatureID(),
	})

	result, err := boolean.Boolean(m, ctx, boolean.Params{
		BodyA:     block.Body,
		BodyB:     bore.Body,
		Operation: boolean.OpSubtract,
		Tracker:   tracker,
		StepID:    tracker.AllocateStepID(),
	})
	if err != nil || !result.Success {
		log.Fatalf("democad: boolean subtract failed: %v", err)
	}

	mesh, err := tess.Tessellate(m, ctx, tess.Params{Body: result.Body})
	if err != nil {
		log.Fatalf("democad: tessellate: %v", err)
	}
	log.Printf("democad: tessellated %d triangles", mesh.TriangleCount())

	mappings := historyMappings(result)

	if err := stepio.ExportBodyWithHistory(m, ctx, result.Body, "democad-part", filepath.Join(outDir, "part.step"), mappings, stepio.Options{
		Author:       "democad",
		Organization: "brepkit",
	}); err != nil {
		log.Fatalf("democad: stepio export: %v", err)
	}

	if err := export3MF(filepath.Join(outDir, "part.3mf"), mesh, mappings); err != nil {
		log.Fatalf("democad: 3mf export: %v", err)
	}

	profile := topProfile(m, result.Body, ctx)
	if profile != nil {
		if err := dxfio.Export(*profile, filepath.Join(outDir, "part-top.dxf")); err != nil {
			log.Fatalf("democad: dxf export: %v", err)
		}
		f, err := os.Create(filepath.Join(outDir, "part-top.svg"))
		if err != nil {
			log.Fatalf("democad: %v", err)
		}
		svgpreview.Profile(f, *profile, 400, 400, 16)
		f.Close()
	}

	log.Printf("democad: wrote part.step, part.3mf, part-top.dxf, part-top.svg to %s", outDir)
}

func historyMappings(r boolean.Result) []naming.EvolutionMapping {
	var out []naming.EvolutionMapping
	for _, entry := range r.FaceHistory {
		news := make([]naming.SubshapeRef, len(entry.NewFaces))
		for i, f := range entry.NewFaces {
			news[i] = naming.SubshapeRef{Kind: naming.KindFace, Body: int(r.Body), ID: int(f)}
		}
		out = append(out, naming.EvolutionMapping{
			Old:  naming.SubshapeRef{Kind: naming.KindFace, Body: int(entry.OldBody), ID: int(entry.OldFace)},
			News: news,
			Tag:  entry.Tag,
		})
	}
	return out
}

func export3MF(path string, mesh tess.Mesh, mappings []naming.EvolutionMapping) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := opc.NewWriter(f)
	return threemf.Export(w, mesh, mappings)
}

// topProfile re-derives a 2D outline for the first planar face it
// finds by projecting its outer loop's vertices onto the face's own
// plane, giving the sketch-io adapters (dxfio, svgpreview) something
// to round-trip; a real caller would keep the originating
// sketch.Profile around instead of re-deriving one from the built
// body.
func topProfile(m *brep.Model, body brep.BodyID, ctx numeric.Context) *sketch.Profile {
	for _, fid := range m.BodyFaces(body) {
		face, ok := m.Face(fid)
		if !ok {
			continue
		}
		surf, ok := m.Surface(face.Surface)
		if !ok || surf.Kind() != geom.SurfacePlane {
			continue
		}
		plane := surf.(geom.Plane)

		verts := m.LoopVertices(face.OuterLoop())
		if len(verts) < 3 {
			continue
		}
		pts := make([]numeric.Vec2, len(verts))
		for i, v := range verts {
			u, v2, ok := plane.Project(v)
			if !ok {
				continue
			}
			pts[i] = numeric.Vec2{X: u, Y: v2}
		}

		curves := make([]geom.Curve2D, len(pts))
		for i := range pts {
			curves[i] = geom.Line2D{P0: pts[i], P1: pts[(i+1)%len(pts)]}
		}
		profile, err := sketch.New(plane, []sketch.Loop{{Curves: curves, IsOuter: true}}, ctx)
		if err != nil {
			continue
		}
		return &profile
	}
	return nil
}
