// Package dxfio exports and imports sketch.Profile loops as DXF
// entities, a thin host-side adapter outside the BREP core's
// transactional contract (SPEC_FULL.md "io/dxfio").
package dxfio

import (
	"fmt"

	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/sketch"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// Export writes every loop of profile as DXF entities: a Line per
// geom.Line2D segment, an Arc per geom.Arc2D segment, lifted from the
// profile's (u,v) frame into the plane's 3D coordinates so the drawing
// carries the sketch's real-world placement, not a flattened 2D view.
func Export(profile sketch.Profile, path string) error {
	d := dxf.NewDrawing()
	for li, loop := range profile.Loops {
		layer := "OUTER"
		if !loop.IsOuter {
			layer = fmt.Sprintf("HOLE_%d", li)
		}
		d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true)
		d.ChangeLayer(layer)
		for _, c := range loop.Curves {
			if err := exportCurve(d, profile.Plane, c); err != nil {
				return err
			}
		}
	}
	return d.SaveAs(path)
}

func exportCurve(d *drawing.Drawing, plane geom.Plane, c geom.Curve2D) error {
	switch v := c.(type) {
	case geom.Line2D:
		p0 := plane.Eval(v.P0.X, v.P0.Y)
		p1 := plane.Eval(v.P1.X, v.P1.Y)
		d.Line(p0.X, p0.Y, p0.Z, p1.X, p1.Y, p1.Z)
	case geom.Arc2D:
		center := plane.Eval(v.Center.X, v.Center.Y)
		startDeg := v.StartAngle * 180 / 3.141592653589793
		endDeg := v.EndAngle * 180 / 3.141592653589793
		if v.CCW {
			d.Arc(center.X, center.Y, center.Z, v.Radius, startDeg, endDeg)
		} else {
			d.Arc(center.X, center.Y, center.Z, v.Radius, endDeg, startDeg)
		}
	default:
		return kerr.New(kerr.KindInvalidInput, "dxfio: unsupported curve kind for export")
	}
	return nil
}

// Import reads a DXF drawing's LINE and ARC entities on a plane (the
// drawing is assumed planar; Z is dropped and re-fit against plane)
// and builds Line2D/Arc2D segments grouped by layer, one sketch.Loop
// per layer, the "OUTER" layer becoming the outer loop. The caller
// still owns calling sketch.New to validate closure and orientation.
func Import(path string, plane geom.Plane) ([]sketch.Loop, error) {
	d, err := dxf.Open(path)
	if err != nil {
		return nil, kerr.New(kerr.KindInvalidInput, "dxfio: "+err.Error())
	}

	byLayer := make(map[string][]geom.Curve2D)
	var order []string
	for _, e := range d.Entities() {
		layer, curve, ok := importEntity(plane, e)
		if !ok {
			continue
		}
		if _, seen := byLayer[layer]; !seen {
			order = append(order, layer)
		}
		byLayer[layer] = append(byLayer[layer], curve)
	}

	loops := make([]sketch.Loop, 0, len(order))
	for _, layer := range order {
		loops = append(loops, sketch.Loop{
			Curves:  byLayer[layer],
			IsOuter: layer == "OUTER",
		})
	}
	return loops, nil
}

func importEntity(plane geom.Plane, e dxf.Entity) (layer string, curve geom.Curve2D, ok bool) {
	switch v := e.(type) {
	case *dxf.LineEntity:
		p0 := projectToPlane(plane, v.Start)
		p1 := projectToPlane(plane, v.End)
		return v.Layer(), geom.Line2D{P0: p0, P1: p1}, true
	case *dxf.ArcEntity:
		center := projectToPlane(plane, v.Center)
		return v.Layer(), geom.Arc2D{
			Center:     center,
			Radius:     v.Radius,
			StartAngle: v.StartAngle * 3.141592653589793 / 180,
			EndAngle:   v.EndAngle * 3.141592653589793 / 180,
			CCW:        true,
		}, true
	default:
		return "", nil, false
	}
}

func projectToPlane(plane geom.Plane, p numeric.Vec3) numeric.Vec2 {
	u, v, _ := plane.Project(p)
	return numeric.Vec2{X: u, Y: v}
}
