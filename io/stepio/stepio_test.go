package stepio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportBodyWritesFacetedBrep(t *testing.T) {
	m := brep.NewModel()
	body := brep.BuildBox(m, numeric.Vec3{}, numeric.Vec3{X: 2, Y: 2, Z: 2})
	ctx := numeric.DefaultContext()

	path := filepath.Join(t.TempDir(), "box.step")
	err := ExportBody(m, ctx, body, "unit-box", path, Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "ISO-10303-21;"))
	assert.True(t, strings.Contains(out, "FILE_SCHEMA(('AUTOMOTIVE_DESIGN'));"))
	assert.True(t, strings.Contains(out, "MANIFOLD_SOLID_BREP"))
	assert.Equal(t, 12, strings.Count(out, "ADVANCED_FACE("), "6 box faces x 2 triangles each")
	assert.True(t, strings.Contains(out, "END-ISO-10303-21;"))
}

func TestExportBodyMissingBody(t *testing.T) {
	m := brep.NewModel()
	ctx := numeric.DefaultContext()
	path := filepath.Join(t.TempDir(), "missing.step")
	err := ExportBody(m, ctx, brep.BodyID(99), "nope", path, Options{})
	assert.Error(t, err)
}
