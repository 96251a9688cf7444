// Package stepio is a host-side adapter, outside the transactional
// core, that serializes a tessellated body to STEP AP214 as a
// faceted ADVANCED_BREP (every analytic surface replaced by its
// triangle facets) — the interchange format CAD viewers and other
// kernels can open even though it loses the original surface types
// (SPEC_FULL.md "io/stepio").
package stepio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/tess"
)

// Options controls the STEP header fields and the naming-history
// sidecar; the zero value is a reasonable default.
type Options struct {
	Author       string
	Organization string
	// History, if non-empty, is embedded in the PRODUCT description as a
	// hint that the naming-history sidecar (see naming.EvolutionMapping)
	// should be consulted for PersistentRef resolution; stepio itself
	// does not serialize the mappings (STEP has no natural slot for
	// them) — pair a Write call with an io/threemf export when both a
	// CAD-native and a naming-carrying interchange are needed.
	History []naming.EvolutionMapping
	Logger  func(string, ...any)
}

// Write serializes mesh as a STEP AP214 faceted BREP to path.
func Write(path string, mesh tess.Mesh, name string, lengthTol float64, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if mesh.TriangleCount() == 0 {
		return kerr.New(kerr.KindInvalidInput, "stepio: mesh has no triangles")
	}

	f, err := os.Create(path)
	if err != nil {
		return kerr.New(kerr.KindInvalidInput, "stepio: "+err.Error())
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	c := newConverter()
	c.Logger = opts.Logger
	entities := c.convertMesh(mesh, name, lengthTol, opts.History)

	author := opts.Author
	if author == "" {
		author = "brepkit"
	}
	org := opts.Organization
	if org == "" {
		org = "brepkit"
	}
	if err := writeHeader(w, filepath.Base(path), author, org); err != nil {
		return err
	}
	if err := writeData(w, entities); err != nil {
		return err
	}
	if _, err := w.WriteString("END-ISO-10303-21;\n"); err != nil {
		return kerr.New(kerr.KindInvalidInput, "stepio: "+err.Error())
	}
	if err := w.Flush(); err != nil {
		return kerr.New(kerr.KindInvalidInput, "stepio: "+err.Error())
	}
	opts.Logger("stepio: wrote %s (%d entities)", path, len(entities))
	return nil
}

func writeHeader(w *bufio.Writer, fileName, author, org string) error {
	lines := []string{
		"ISO-10303-21;",
		"HEADER;",
		"FILE_DESCRIPTION(('STEP AP214'),'1');",
		fmt.Sprintf("FILE_NAME('%s','%s',('%s'),('%s'),'brepkit/kernel stepio','brepkit','');",
			fileName, time.Now().Format("2006-01-02T15:04:05"), author, org),
		"FILE_SCHEMA(('AUTOMOTIVE_DESIGN'));",
		"ENDSEC;",
	}
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return kerr.New(kerr.KindInvalidInput, "stepio: "+err.Error())
		}
	}
	return nil
}

func writeData(w *bufio.Writer, entities []Entity) error {
	if _, err := w.WriteString("DATA;\n"); err != nil {
		return kerr.New(kerr.KindInvalidInput, "stepio: "+err.Error())
	}
	for _, e := range entities {
		str := e.String()
		for _, line := range strings.Split(str, "\n") {
			if _, err := w.WriteString(line + "\n"); err != nil {
				return kerr.New(kerr.KindInvalidInput, "stepio: "+err.Error())
			}
		}
	}
	_, err := w.WriteString("ENDSEC;\n")
	if err != nil {
		return kerr.New(kerr.KindInvalidInput, "stepio: "+err.Error())
	}
	return nil
}
