package svgpreview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareProfile(t *testing.T) sketch.Profile {
	t.Helper()
	p := func(x, y float64) numeric.Vec2 { return numeric.Vec2{X: x, Y: y} }
	outer := []geom.Curve2D{
		geom.Line2D{P0: p(0, 0), P1: p(10, 0)},
		geom.Line2D{P0: p(10, 0), P1: p(10, 10)},
		geom.Line2D{P0: p(10, 10), P1: p(0, 10)},
		geom.Line2D{P0: p(0, 10), P1: p(0, 0)},
	}
	hole := []geom.Curve2D{
		geom.Line2D{P0: p(3, 3), P1: p(6, 3)},
		geom.Line2D{P0: p(6, 3), P1: p(6, 6)},
		geom.Line2D{P0: p(6, 6), P1: p(3, 6)},
		geom.Line2D{P0: p(3, 6), P1: p(3, 3)},
	}
	plane := geom.NewPlaneDeterministic(numeric.Vec3{}, numeric.UnitZ)
	profile, err := sketch.New(plane, []sketch.Loop{
		{Curves: outer, IsOuter: true},
		{Curves: hole, IsOuter: false},
	}, numeric.DefaultContext())
	require.NoError(t, err)
	return profile
}

func TestProfileRendersSVGWithBothLoops(t *testing.T) {
	profile := squareProfile(t)
	var buf bytes.Buffer
	Profile(&buf, profile, 400, 400, 20)

	out := buf.String()
	assert.True(t, strings.Contains(out, "<svg"))
	assert.True(t, strings.Contains(out, "polygon"))
	assert.Equal(t, 2, strings.Count(out, "<polygon"), "outer + hole loop each render one polygon")
}

func TestClassificationRendersTintedSamples(t *testing.T) {
	outline := []numeric.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	points := []ClassificationPoint{
		{U: 1, V: 1, Verdict: "inside"},
		{U: 11, V: 1, Verdict: "outside"},
		{U: 5, V: 0, Verdict: "boundary"},
	}
	var buf bytes.Buffer
	Classification(&buf, outline, points, 300, 300, 10)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "<circle"))
	assert.True(t, strings.Contains(out, "seagreen"))
	assert.True(t, strings.Contains(out, "steelblue"))
	assert.True(t, strings.Contains(out, "goldenrod"))
}
