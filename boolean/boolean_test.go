package boolean

import (
	"testing"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBox(t *testing.T, m *brep.Model, center numeric.Vec3, size float64) brep.BodyID {
	t.Helper()
	return brep.BuildBox(m, center, numeric.Vec3{X: size, Y: size, Z: size})
}

func TestBooleanDisjointUnionPassesThrough(t *testing.T) {
	m := brep.NewModel()
	a := unitBox(t, m, numeric.Vec3{}, 1)
	b := unitBox(t, m, numeric.Vec3{X: 10}, 1)

	res, err := Boolean(m, numeric.DefaultContext(), Params{BodyA: a, BodyB: b, Operation: OpUnion})
	require.NoError(t, err)
	assert.True(t, res.Success)

	faces := m.BodyFaces(res.Body)
	assert.Len(t, faces, 12, "two disjoint boxes should carry all 12 faces through unchanged")
	for _, h := range res.FaceHistory {
		assert.Equal(t, naming.TagUnchanged, h.Tag)
	}

	report := m.Validate(numeric.DefaultContext(), brep.DefaultValidateOptions())
	assert.True(t, report.Clean(), "disjoint union result should validate clean: %+v", report.Issues)
}

func TestBooleanOverlappingUnionMergesSharedFace(t *testing.T) {
	m := brep.NewModel()
	// Two unit boxes sharing the +X/-X face exactly: touching, not overlapping.
	a := unitBox(t, m, numeric.Vec3{}, 1)
	b := unitBox(t, m, numeric.Vec3{X: 1}, 1)

	res, err := Boolean(m, numeric.DefaultContext(), Params{BodyA: a, BodyB: b, Operation: OpUnion})
	require.NoError(t, err)
	require.True(t, res.Success)

	faces := m.BodyFaces(res.Body)
	assert.Len(t, faces, 10, "the two coincident touching faces should both drop, leaving 10 of 12")

	report := m.Validate(numeric.DefaultContext(), brep.DefaultValidateOptions())
	assert.True(t, report.Clean(), "merged union result should validate clean: %+v", report.Issues)
}

func TestBooleanOverlappingIntersect(t *testing.T) {
	m := brep.NewModel()
	a := unitBox(t, m, numeric.Vec3{}, 2)
	b := unitBox(t, m, numeric.Vec3{X: 1}, 2)

	res, err := Boolean(m, numeric.DefaultContext(), Params{BodyA: a, BodyB: b, Operation: OpIntersect})
	require.NoError(t, err)
	require.True(t, res.Success)

	report := m.Validate(numeric.DefaultContext(), brep.DefaultValidateOptions())
	assert.True(t, report.Clean(), "intersect result should validate clean: %+v", report.Issues)

	for _, fid := range m.BodyFaces(res.Body) {
		pts := m.FaceVertices(fid)
		for _, p := range pts {
			assert.InDelta(t, 0.5, p.X, 1.0, "intersect volume should sit in the overlap region")
		}
	}
}

func TestBooleanSubtractNotchesCorner(t *testing.T) {
	m := brep.NewModel()
	a := unitBox(t, m, numeric.Vec3{}, 2)
	tool := unitBox(t, m, numeric.Vec3{X: 1, Y: 1, Z: 1}, 1)

	res, err := Boolean(m, numeric.DefaultContext(), Params{BodyA: a, BodyB: tool, Operation: OpSubtract})
	require.NoError(t, err)
	require.True(t, res.Success)

	faces := m.BodyFaces(res.Body)
	assert.Greater(t, len(faces), 6, "notching a corner should introduce new faces beyond the original 6")

	report := m.Validate(numeric.DefaultContext(), brep.DefaultValidateOptions())
	assert.True(t, report.Clean(), "subtract result should validate clean: %+v", report.Issues)
}

func TestBooleanRecordsNamingHistory(t *testing.T) {
	m := brep.NewModel()
	a := unitBox(t, m, numeric.Vec3{}, 2)
	tool := unitBox(t, m, numeric.Vec3{X: 1, Y: 1, Z: 1}, 1)

	tracker := naming.NewTracker(1.0)
	step := tracker.AllocateStepID()

	res, err := Boolean(m, numeric.DefaultContext(), Params{
		BodyA: a, BodyB: tool, Operation: OpSubtract,
		Tracker: tracker, StepID: step,
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	var sawSplit, sawUnchanged bool
	for _, h := range res.FaceHistory {
		switch h.Tag {
		case naming.TagSplit, naming.TagModify:
			sawSplit = true
		case naming.TagUnchanged:
			sawUnchanged = true
		}
	}
	assert.True(t, sawSplit, "at least one face should be cut by the notch tool")
	assert.True(t, sawUnchanged, "at least one face of the larger box should survive untouched")
}

func TestBooleanMissingBody(t *testing.T) {
	m := brep.NewModel()
	a := unitBox(t, m, numeric.Vec3{}, 1)

	_, err := Boolean(m, numeric.DefaultContext(), Params{BodyA: a, BodyB: brep.BodyID(99), Operation: OpUnion})
	assert.Error(t, err)
}
