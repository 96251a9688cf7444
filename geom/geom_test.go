package geom

import (
	"math"
	"testing"

	"github.com/brepkit/kernel/numeric"
	"github.com/stretchr/testify/assert"
)

func TestLine2DEval(t *testing.T) {
	l := Line2D{P0: numeric.Vec2{X: 0, Y: 0}, P1: numeric.Vec2{X: 10, Y: 0}}
	mid := l.Eval(0.5)
	assert.InDelta(t, 5, mid.X, 1e-9)
}

func TestArc2DSpanCCW(t *testing.T) {
	a := Arc2D{Center: numeric.Vec2{}, Radius: 1, StartAngle: 0, EndAngle: math.Pi / 2, CCW: true}
	p := a.Eval(1)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 1, p.Y, 1e-9)
}

func TestArc2DSpanWrapsPositive(t *testing.T) {
	// end < start but CCW: span must still be positive (wraps through 2pi)
	a := Arc2D{Center: numeric.Vec2{}, Radius: 1, StartAngle: math.Pi, EndAngle: math.Pi / 2, CCW: true}
	assert.Greater(t, a.span(), 0.0)
}

func TestPlaneRoundTrip(t *testing.T) {
	p := NewPlaneDeterministic(numeric.Vec3{X: 1, Y: 2, Z: 3}, numeric.Vec3{Z: 1})
	pt := p.Eval(2, 3)
	u, v, ok := p.Project(pt)
	assert.True(t, ok)
	assert.InDelta(t, 2, u, 1e-9)
	assert.InDelta(t, 3, v, 1e-9)
}

func TestPlaneFlippedReversesNormal(t *testing.T) {
	p := NewPlaneDeterministic(numeric.Vec3{}, numeric.UnitZ)
	f := p.Flipped()
	assert.InDelta(t, -1, f.Normal.Dot(p.Normal), 1e-9)
}

func TestCylinderEvalAndProject(t *testing.T) {
	c := NewCylinder(numeric.Vec3{}, numeric.UnitZ, 5)
	pt := c.Eval(math.Pi/3, 10)
	theta, h, ok := c.Project(pt)
	assert.True(t, ok)
	assert.InDelta(t, 10, h, 1e-9)
	// theta may differ by 2pi*k but cos/sin must match
	assert.InDelta(t, math.Cos(math.Pi/3), math.Cos(theta), 1e-9)
	assert.InDelta(t, math.Sin(math.Pi/3), math.Sin(theta), 1e-9)
}

func TestTorusEvalAndProject(t *testing.T) {
	tor := NewTorus(numeric.Vec3{}, numeric.UnitZ, 10, 3)
	pt := tor.Eval(0.3, 1.1)
	theta, phi, ok := tor.Project(pt)
	assert.True(t, ok)
	back := tor.Eval(theta, phi)
	assert.InDelta(t, 0, pt.Distance(back), 1e-6)
}

func TestArcSegmentCount(t *testing.T) {
	assert.Equal(t, 36, ArcSegmentCount(2*math.Pi))
	assert.GreaterOrEqual(t, ArcSegmentCount(math.Pi/2), 9)
}
