package feature

import (
	"math"
	"testing"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectProfile(t *testing.T, w, h float64) sketch.Profile {
	t.Helper()
	p := func(x, y float64) numeric.Vec2 { return numeric.Vec2{X: x, Y: y} }
	pts := [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}
	var curves []geom.Curve2D
	for i := 0; i < 4; i++ {
		a := p(pts[i][0], pts[i][1])
		b := p(pts[(i+1)%4][0], pts[(i+1)%4][1])
		curves = append(curves, geom.Line2D{P0: a, P1: b})
	}
	plane := geom.NewPlaneDeterministic(numeric.Vec3{}, numeric.UnitZ)
	profile, err := sketch.New(plane, []sketch.Loop{{Curves: curves, IsOuter: true}}, numeric.DefaultContext())
	require.NoError(t, err)
	return profile
}

func TestExtrudeRectangleTopology(t *testing.T) {
	m := brep.NewModel()
	ctx := numeric.DefaultContext()
	profile := rectProfile(t, 10, 5)

	result, err := Extrude(m, ExtrudeParams{Profile: profile, Distance: 3}, ctx)
	require.NoError(t, err)
	require.True(t, result.Success)

	report := m.Validate(ctx, brep.DefaultValidateOptions())
	for _, issue := range report.Issues {
		assert.NotEqual(t, brep.SeverityError, issue.Severity, issue.Message)
	}

	b, ok := m.Body(result.Body)
	require.True(t, ok)
	require.Len(t, b.Shells, 1)
	shell, _ := m.Shell(b.Shells[0])
	assert.True(t, shell.Closed)
	// 2 caps + 4 sides = 6 faces, like the primitive box.
	assert.Len(t, shell.Faces, 6)
}

func TestExtrudeRejectsTinyDistance(t *testing.T) {
	m := brep.NewModel()
	ctx := numeric.DefaultContext()
	profile := rectProfile(t, 10, 5)
	_, err := Extrude(m, ExtrudeParams{Profile: profile, Distance: ctx.Length / 2}, ctx)
	require.Error(t, err)
}

func TestExtrudeRegistersNaming(t *testing.T) {
	m := brep.NewModel()
	ctx := numeric.DefaultContext()
	profile := rectProfile(t, 10, 5)
	tracker := naming.NewTracker(20)
	fid := tracker.AllocateFeatureID()

	result, err := Extrude(m, ExtrudeParams{Profile: profile, Distance: 3, Tracker: tracker, FeatureID: fid}, ctx)
	require.NoError(t, err)
	require.Len(t, result.Refs.Side, 4)
	require.Len(t, result.Refs.TopCap, 1)
	require.Len(t, result.Refs.BottomCap, 1)

	resolved := tracker.Resolve(result.Refs.TopCap[0])
	assert.Equal(t, naming.ResolveFound, resolved.Status)
}

func TestBoxPrimitiveRegistersSixFaces(t *testing.T) {
	m := brep.NewModel()
	tracker := naming.NewTracker(10)
	fid := tracker.AllocateFeatureID()
	res := Box(m, BoxParams{Size: numeric.Vec3{X: 1, Y: 1, Z: 1}, Tracker: tracker, FeatureID: fid})
	assert.Len(t, res.Refs, 6)
}

func TestCylinderExtrudeBuilds(t *testing.T) {
	m := brep.NewModel()
	ctx := numeric.DefaultContext()
	tracker := naming.NewTracker(10)
	fid := tracker.AllocateFeatureID()
	result, err := Cylinder(m, CylinderParams{Radius: 2, Height: 5, Tracker: tracker, FeatureID: fid}, ctx)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Len(t, result.Refs.Side, 36, "one side face per 10-degree segment of the full circle")
}

func TestPrismRejectsTooFewSides(t *testing.T) {
	m := brep.NewModel()
	ctx := numeric.DefaultContext()
	_, err := Prism(m, PrismParams{Sides: 2, CircumRadius: 1, Height: 1}, ctx)
	require.Error(t, err)
}

func TestRevolvePartial90Degrees(t *testing.T) {
	m := brep.NewModel()
	ctx := numeric.DefaultContext()
	profile := rectProfile(t, 2, 1) // offset rectangle away from the Z axis
	for i := range profile.Loops[0].Curves {
		line := profile.Loops[0].Curves[i].(geom.Line2D)
		profile.Loops[0].Curves[i] = geom.Line2D{
			P0: numeric.Vec2{X: line.P0.X + 3, Y: line.P0.Y},
			P1: numeric.Vec2{X: line.P1.X + 3, Y: line.P1.Y},
		}
	}

	result, err := Revolve(m, RevolveParams{
		Profile:       profile,
		AxisOrigin:    numeric.Vec3{},
		AxisDirection: numeric.UnitY,
		AngleDegrees:  90,
	}, ctx)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.Refs.StartCap, 1)
	require.Len(t, result.Refs.EndCap, 1)
	require.Len(t, result.Refs.Side, 4)

	b, _ := m.Body(result.Body)
	shell, _ := m.Shell(b.Shells[0])
	assert.Len(t, shell.Faces, 6)
}

func TestRevolveRejectsDegenerateAxis(t *testing.T) {
	m := brep.NewModel()
	ctx := numeric.DefaultContext()
	profile := rectProfile(t, 2, 1)
	_, err := Revolve(m, RevolveParams{Profile: profile, AngleDegrees: 90}, ctx)
	require.Error(t, err)
}

func TestConeHalfAngleMatchesSlope(t *testing.T) {
	cone := geom.NewCone(numeric.Vec3{}, numeric.UnitZ, math.Pi/6)
	pt := cone.Eval(0, 10)
	_, h, ok := cone.Project(pt)
	require.True(t, ok)
	assert.InDelta(t, 10, h, 1e-9)
}
