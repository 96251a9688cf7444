package stepio

import (
	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/tess"
)

// ExportBody tessellates body and writes it to path as a faceted STEP
// AP214 BREP in one call, the adapter's main entry point for callers
// that don't need direct access to the intermediate tess.Mesh.
func ExportBody(m *brep.Model, ctx numeric.Context, body brep.BodyID, name, path string, opts Options) error {
	mesh, err := tess.Tessellate(m, ctx, tess.Params{Body: body})
	if err != nil {
		return err
	}
	return Write(path, mesh, name, ctx.Length, opts)
}

// ExportBodyWithHistory is ExportBody plus an explicit naming-history
// payload carried in Options, for callers that already have the
// mappings on hand (e.g. right after a boolean.Boolean call) and
// don't want to re-derive them from a naming.Tracker.
func ExportBodyWithHistory(m *brep.Model, ctx numeric.Context, body brep.BodyID, name, path string, history []naming.EvolutionMapping, opts Options) error {
	opts.History = history
	return ExportBody(m, ctx, body, name, path, opts)
}
