package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrient2D(t *testing.T) {
	cases := []struct {
		name    string
		a, b, c Vec2
		want    int
	}{
		{"left turn", Vec2{0, 0}, Vec2{1, 0}, Vec2{1, 1}, 1},
		{"right turn", Vec2{0, 0}, Vec2{1, 0}, Vec2{1, -1}, -1},
		{"collinear", Vec2{0, 0}, Vec2{1, 0}, Vec2{2, 0}, 0},
		{"collinear reversed", Vec2{0, 0}, Vec2{2, 0}, Vec2{1, 0}, 0},
		{"near-collinear large coords", Vec2{1e8, 1e8}, Vec2{1e8 + 1, 1e8 + 1}, Vec2{1e8 + 2, 1e8 + 2}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Orient2D(c.a, c.b, c.c)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestSegSegHitCross(t *testing.T) {
	hit := SegSegHit(Vec2{0, 0}, Vec2{2, 2}, Vec2{0, 2}, Vec2{2, 0})
	require.Equal(t, SegHitPoint, hit.Kind)
	assert.InDelta(t, 1, hit.Point.X, 1e-9)
	assert.InDelta(t, 1, hit.Point.Y, 1e-9)
}

func TestSegSegHitOverlap(t *testing.T) {
	hit := SegSegHit(Vec2{0, 0}, Vec2{4, 0}, Vec2{2, 0}, Vec2{6, 0})
	require.Equal(t, SegHitOverlap, hit.Kind)
	assert.InDelta(t, 0.5, hit.T1Start, 1e-9)
	assert.InDelta(t, 1.0, hit.T1End, 1e-9)
}

func TestSegSegHitNone(t *testing.T) {
	hit := SegSegHit(Vec2{0, 0}, Vec2{1, 0}, Vec2{0, 1}, Vec2{1, 1})
	assert.Equal(t, SegHitNone, hit.Kind)
}

func TestSegSegHitTouchingEndpoint(t *testing.T) {
	hit := SegSegHit(Vec2{0, 0}, Vec2{1, 0}, Vec2{1, 0}, Vec2{2, 0})
	require.Equal(t, SegHitPoint, hit.Kind)
	assert.InDelta(t, 1, hit.T1, 1e-9)
}

func TestContextIsZero(t *testing.T) {
	ctx := DefaultContext()
	assert.True(t, ctx.IsZero(1e-8))
	assert.False(t, ctx.IsZero(1e-3))
}

func TestWidePlaneTolerance(t *testing.T) {
	ctx := NewContext(1e-7, 1e-6)
	assert.InDelta(t, 1e-4, ctx.WidePlaneTolerance(), 1e-12)
	ctx2 := NewContext(1, 1e-6)
	assert.InDelta(t, 1e6, ctx2.WidePlaneTolerance(), 1e-6)
}

func TestVec3ArbitraryPerp(t *testing.T) {
	for _, axis := range []Vec3{UnitX, UnitY, UnitZ, {1, 1, 1}} {
		p := ArbitraryPerp(axis)
		assert.InDelta(t, 0, p.Dot(axis.Normalize()), 1e-9)
		assert.InDelta(t, 1, p.Length(), 1e-9)
	}
}
