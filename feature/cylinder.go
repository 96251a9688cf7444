package feature

import (
	"math"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/sketch"
)

// CylinderParams are the inputs to the Cylinder primitive (a
// SUPPLEMENTED FEATURE, not named in spec.md's primitive-box-only
// §4.E: see SPEC_FULL.md, built from the same extrude machinery that
// backs Extrude so its arc-segment side-face dispatch gets exercised
// by more than one profile shape).
type CylinderParams struct {
	Center numeric.Vec3
	Axis   numeric.Vec3 // defaults to +Z when zero
	Radius, Height float64

	Tracker   *naming.Tracker
	FeatureID naming.FeatureID
}

// Cylinder builds a capped circular cylinder by extruding a full-circle
// sketch loop along Axis.
func Cylinder(m *brep.Model, p CylinderParams, ctx numeric.Context) (ExtrudeResult, error) {
	axis := p.Axis
	if axis.IsZero(ctx) {
		axis = numeric.UnitZ
	}
	axis = axis.Normalize()

	plane := geom.NewPlaneDeterministic(p.Center, axis)
	circle := geom.Arc2D{Center: numeric.Vec2{}, Radius: p.Radius, StartAngle: 0, EndAngle: 2 * math.Pi, CCW: true}
	loop := sketch.Loop{Curves: []geom.Curve2D{circle}, IsOuter: true}
	profile, err := sketch.New(plane, []sketch.Loop{loop}, ctx)
	if err != nil {
		return ExtrudeResult{}, err
	}

	return Extrude(m, ExtrudeParams{
		Profile:   profile,
		Operation: OpAdd,
		Distance:  p.Height,
		Direction: axis,
		Tracker:   p.Tracker,
		FeatureID: p.FeatureID,
	}, ctx)
}
