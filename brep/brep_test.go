package brep

import (
	"testing"

	"github.com/brepkit/kernel/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBoxTopology(t *testing.T) {
	m := NewModel()
	body := BuildBox(m, numeric.Vec3{}, numeric.Vec3{X: 1, Y: 1, Z: 1})

	assert.Equal(t, 8, m.LiveVertexCount())
	assert.Equal(t, 12, m.LiveEdgeCount())
	assert.Equal(t, 6, m.LiveFaceCount())

	b, ok := m.Body(body)
	require.True(t, ok)
	require.Len(t, b.Shells, 1)
	shell, ok := m.Shell(b.Shells[0])
	require.True(t, ok)
	assert.True(t, shell.Closed)
	assert.Len(t, shell.Faces, 6)

	assert.Equal(t, 2, m.EulerCharacteristic(body))
}

func TestBuildBoxValidates(t *testing.T) {
	m := NewModel()
	BuildBox(m, numeric.Vec3{}, numeric.Vec3{X: 2, Y: 3, Z: 4})
	ctx := numeric.DefaultContext()
	report := m.Validate(ctx, DefaultValidateOptions())
	for _, iss := range report.Issues {
		t.Logf("%s %s: %s", iss.Severity, iss.Kind, iss.Message)
	}
	assert.True(t, report.Clean())
}

func TestTwinPairingSymmetric(t *testing.T) {
	m := NewModel()
	BuildBox(m, numeric.Vec3{}, numeric.Vec3{X: 1, Y: 1, Z: 1})
	for i := 1; i <= m.NumHalfEdges(); i++ {
		he := HalfEdgeID(i)
		h, ok := m.HalfEdge(he)
		require.True(t, ok)
		require.True(t, h.Twin.Valid(), "half-edge %d should have a twin in a closed box", he)
		tw, ok := m.HalfEdge(h.Twin)
		require.True(t, ok)
		assert.Equal(t, he, tw.Twin)
		assert.NotEqual(t, h.Direction, tw.Direction)
		assert.NotEqual(t, h.Loop, tw.Loop)
	}
}

func TestSameParameterOnBox(t *testing.T) {
	m := NewModel()
	BuildBox(m, numeric.Vec3{}, numeric.Vec3{X: 1, Y: 1, Z: 1})
	ctx := numeric.DefaultContext()
	results, err := m.CheckSameParameterAll(ctx)
	require.NoError(t, err)
	for _, r := range results {
		assert.True(t, r.OK, "half-edge %d deviation %g", r.HalfEdge, r.MaxDeviation)
	}
}

func TestValidateDetectsNonManifoldEdge(t *testing.T) {
	m := NewModel()
	v0 := m.AddVertex(numeric.Vec3{})
	v1 := m.AddVertex(numeric.Vec3{X: 1})
	e := m.AddEdge(v0, v1, nil, 0, 1)
	he1 := m.AddHalfEdge(e, 1)
	he2 := m.AddHalfEdge(e, -1)
	he3 := m.AddHalfEdge(e, 1)
	_ = he1
	_ = he2
	_ = he3

	report := m.Validate(numeric.DefaultContext(), DefaultValidateOptions())
	found := false
	for _, iss := range report.Issues {
		if iss.Kind == IssueNonManifoldEdge {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSetHalfEdgeTwinRejectsDoubleBinding(t *testing.T) {
	m := NewModel()
	v0 := m.AddVertex(numeric.Vec3{})
	v1 := m.AddVertex(numeric.Vec3{X: 1})
	e := m.AddEdge(v0, v1, nil, 0, 1)
	a := m.AddHalfEdge(e, 1)
	b := m.AddHalfEdge(e, -1)
	c := m.AddHalfEdge(e, -1)
	require.NoError(t, m.SetHalfEdgeTwin(a, b))
	err := m.SetHalfEdgeTwin(a, c)
	assert.Error(t, err)
}
