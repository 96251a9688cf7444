package sketch

import (
	"math"
	"testing"

	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectLoop(w, h float64, outer bool) Loop {
	p := func(x, y float64) numeric.Vec2 { return numeric.Vec2{X: x, Y: y} }
	pts := [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}
	var curves []geom.Curve2D
	for i := 0; i < 4; i++ {
		a := p(pts[i][0], pts[i][1])
		b := p(pts[(i+1)%4][0], pts[(i+1)%4][1])
		curves = append(curves, geom.Line2D{P0: a, P1: b})
	}
	return Loop{Curves: curves, IsOuter: outer}
}

func TestNewProfileReordersWinding(t *testing.T) {
	// Build the rectangle clockwise on purpose; New must flip it CCW.
	p := func(x, y float64) numeric.Vec2 { return numeric.Vec2{X: x, Y: y} }
	pts := [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	var curves []geom.Curve2D
	for i := 0; i < 4; i++ {
		a := p(pts[i][0], pts[i][1])
		b := p(pts[(i+1)%4][0], pts[(i+1)%4][1])
		curves = append(curves, geom.Line2D{P0: a, P1: b})
	}
	loop := Loop{Curves: curves, IsOuter: true}
	require.Less(t, loop.signedArea(), 0.0)

	plane := geom.NewPlaneDeterministic(numeric.Vec3{}, numeric.UnitZ)
	profile, err := New(plane, []Loop{loop}, numeric.DefaultContext())
	require.NoError(t, err)
	require.Greater(t, profile.Loops[0].signedArea(), 0.0)
}

func TestNewProfileRejectsOpenLoop(t *testing.T) {
	curves := []geom.Curve2D{
		geom.Line2D{P0: numeric.Vec2{X: 0, Y: 0}, P1: numeric.Vec2{X: 10, Y: 0}},
		geom.Line2D{P0: numeric.Vec2{X: 10, Y: 1}, P1: numeric.Vec2{X: 0, Y: 10}}, // gap
	}
	plane := geom.NewPlaneDeterministic(numeric.Vec3{}, numeric.UnitZ)
	_, err := New(plane, []Loop{{Curves: curves, IsOuter: true}}, numeric.DefaultContext())
	require.Error(t, err)
}

func TestSampleForExtrudeLineOneSegment(t *testing.T) {
	loop := rectLoop(10, 5, true)
	sampled := loop.SampleForExtrude()
	assert.Len(t, sampled.Segments, 4)
	for _, s := range sampled.Segments {
		assert.Equal(t, geom.Curve2DLine, s.SourceKind)
	}
}

func TestSampleForExtrudeArcSubdivides(t *testing.T) {
	arc := geom.Arc2D{Center: numeric.Vec2{}, Radius: 5, StartAngle: 0, EndAngle: math.Pi, CCW: true}
	loop := Loop{Curves: []geom.Curve2D{arc}, IsOuter: true}
	sampled := loop.SampleForExtrude()
	assert.GreaterOrEqual(t, len(sampled.Segments), 6)
	for _, s := range sampled.Segments {
		assert.Equal(t, geom.Curve2DArc, s.SourceKind)
	}
}

func TestHoleWindsOpposite(t *testing.T) {
	outer := rectLoop(10, 10, true)
	hole := rectLoop(2, 2, false)
	plane := geom.NewPlaneDeterministic(numeric.Vec3{}, numeric.UnitZ)
	profile, err := New(plane, []Loop{outer, hole}, numeric.DefaultContext())
	require.NoError(t, err)
	require.Greater(t, profile.Loops[0].signedArea(), 0.0)
	require.Less(t, profile.Loops[1].signedArea(), 0.0)
}
