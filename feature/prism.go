package feature

import (
	"math"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/sketch"
)

// PrismParams are the inputs to the Prism primitive (a SUPPLEMENTED
// FEATURE built on regular-N-gon extrusion — see SPEC_FULL.md).
type PrismParams struct {
	Center       numeric.Vec3
	Axis         numeric.Vec3 // defaults to +Z when zero
	Sides        int
	CircumRadius float64
	Height       float64

	Tracker   *naming.Tracker
	FeatureID naming.FeatureID
}

// Prism builds a regular-N-gon prism by extruding an N-sided polygon
// sketch loop along Axis.
func Prism(m *brep.Model, p PrismParams, ctx numeric.Context) (ExtrudeResult, error) {
	if p.Sides < 3 {
		return ExtrudeResult{}, kerr.New(kerr.KindInvalidInput, "prism: fewer than 3 sides")
	}
	axis := p.Axis
	if axis.IsZero(ctx) {
		axis = numeric.UnitZ
	}
	axis = axis.Normalize()

	plane := geom.NewPlaneDeterministic(p.Center, axis)
	pts := make([]numeric.Vec2, p.Sides)
	for i := 0; i < p.Sides; i++ {
		th := 2 * math.Pi * float64(i) / float64(p.Sides)
		pts[i] = numeric.Vec2{X: p.CircumRadius * math.Cos(th), Y: p.CircumRadius * math.Sin(th)}
	}
	curves := make([]geom.Curve2D, p.Sides)
	for i := range pts {
		curves[i] = geom.Line2D{P0: pts[i], P1: pts[(i+1)%p.Sides]}
	}
	loop := sketch.Loop{Curves: curves, IsOuter: true}
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
