package brep

import (
	"fmt"

	"github.com/brepkit/kernel/numeric"
)

// Severity classifies a validation Issue.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// IssueKind names the specific check an Issue came from.
type IssueKind string

const (
	IssueInvalidHandle       IssueKind = "invalid_handle"
	IssueBrokenCycle         IssueKind = "broken_cycle"
	IssueTwinMismatch        IssueKind = "twin_mismatch"
	IssueTwinDirection       IssueKind = "twin_direction_mismatch"
	IssueZeroLengthEdge      IssueKind = "zero_length_edge"
	IssueShortEdge           IssueKind = "short_edge"
	IssueDuplicateVertex     IssueKind = "duplicate_vertex"
	IssueNonManifoldEdge     IssueKind = "non_manifold_edge"
	IssueBoundaryInClosed    IssueKind = "boundary_edge_in_closed_shell"
	IssueBackRefMismatch     IssueKind = "back_reference_mismatch"
	IssueSliverFace          IssueKind = "sliver_face"
	IssueSameParameter       IssueKind = "same_parameter_violation"
	IssueHoleWindingMismatch IssueKind = "hole_winding_mismatch"
)

// Issue is one finding from Validate, carrying enough context (spec
// §4.C "enough context to locate it") to point a host at the offending
// entities.
type Issue struct {
	Severity    Severity
	Kind        IssueKind
	Message     string
	LocationIDs []int
}

// ValidationReport is the §6.2 "Validation report" output: an ordered
// list of Issues, plus a convenience flag for "no errors" (warnings and
// info issues may still be present).
type ValidationReport struct {
	Issues []Issue
}

// Clean reports whether the report has zero SeverityError issues.
func (r ValidationReport) Clean() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return false
		}
	}
	return true
}

// ValidateOptions tunes the validation battery's thresholds.
type ValidateOptions struct {
	// ShortEdgeMultiple: an edge shorter than this multiple of
	// ctx.Length is flagged as IssueShortEdge (warning).
	ShortEdgeMultiple float64
	// MinSliverAspectRatio: a face whose outer-loop bounding aspect
	// ratio (longest side / shortest extent) exceeds this is flagged
	// IssueSliverFace (warning).
	MinSliverAspectRatio float64
}

// DefaultValidateOptions returns the thresholds the kernel uses unless
// a caller overrides them.
func DefaultValidateOptions() ValidateOptions {
	return ValidateOptions{ShortEdgeMultiple: 10, MinSliverAspectRatio: 1000}
}

// Validate runs the full invariant battery of spec §3.3/§4.C over every
// live entity in m, using ctx for tolerance-sensitive checks.
func (m *Model) Validate(ctx numeric.Context, opts ValidateOptions) ValidationReport {
	var rep ValidationReport
	add := func(sev Severity, kind IssueKind, msg string, ids ...int) {
		rep.Issues = append(rep.Issues, Issue{Severity: sev, Kind: kind, Message: msg, LocationIDs: ids})
	}

	m.validateHalfEdgesAndTwins(ctx, add)
	m.validateLoopCycles(add)
	m.validateFacesAndHoles(ctx, add)
	m.validateShellsClosed(add)
	m.validateEdgeLengths(ctx, opts, add)
	m.validateDuplicateVertices(ctx, add)
	m.validateBackReferences(add)
	m.validateSliverFaces(opts, add)
	m.validateSameParameter(ctx, add)

	return rep
}

type issueAdder func(sev Severity, kind IssueKind, msg string, ids ...int)

// validateHalfEdgesAndTwins checks invariants 1 and 2 (spec §3.3): a
// non-boundary edge is referenced by exactly two half-edges with
// opposite Direction, and twin(twin(h)) == h.
func (m *Model) validateHalfEdgesAndTwins(ctx numeric.Context, add issueAdder) {
	byEdge := make(map[EdgeID][]HalfEdgeID)
	for i := 1; i <= m.NumHalfEdges(); i++ {
		id := HalfEdgeID(i)
		h, ok := m.HalfEdge(id)
		if !ok || h.Deleted {
			continue
		}
		byEdge[h.Edge] = append(byEdge[h.Edge], id)

		if h.Twin.Valid() {
			tw, ok := m.HalfEdge(h.Twin)
			if !ok {
				add(SeverityError, IssueTwinMismatch, fmt.Sprintf("half-edge %d twin %d does not exist", id, h.Twin), int(id), int(h.Twin))
				continue
			}
			if tw.Twin != id {
				add(SeverityError, IssueTwinMismatch, fmt.Sprintf("half-edge %d <-> %d twin link is not symmetric", id, h.Twin), int(id), int(h.Twin))
			}
			if tw.Direction == h.Direction {
				add(SeverityError, IssueTwinDirection, fmt.Sprintf("half-edge %d and twin %d have matching direction, expected opposite", id, h.Twin), int(id), int(h.Twin))
			}
			if tw.Loop == h.Loop && h.Loop.Valid() {
				add(SeverityError, IssueTwinMismatch, fmt.Sprintf("half-edge %d and its twin %d belong to the same loop", id, h.Twin), int(id), int(h.Twin))
			}
		}
	}

	for edge, group := range byEdge {
		if len(group) > 2 {
			ids := make([]int, 0, len(group)+1)
			ids = append(ids, int(edge))
			for _, g := range group {
				ids = append(ids, int(g))
			}
			add(SeverityError, IssueNonManifoldEdge, fmt.Sprintf("edge %d used by %d half-edges, manifold topology allows at most 2", edge, len(group)), ids...)
		}
	}
}

// validateLoopCycles checks invariant 3: next/prev form a closed cycle
// equal in length to Count, and each half-edge's end vertex equals the
// next one's start vertex.
func (m *Model) validateLoopCycles(add issueAdder) {
	for i := 1; i <= m.NumLoops(); i++ {
		id := LoopID(i)
		l, ok := m.Loop(id)
		if !ok || l.Deleted {
			continue
		}
		walked := m.LoopHalfEdges(id)
		if len(walked) != l.Count {
			add(SeverityError, IssueBrokenCycle, fmt.Sprintf("loop %d declares count %d but walk visited %d half-edges", id, l.Count, len(walked)), int(id))
			continue
		}
		for i, he := range walked {
			next := walked[(i+1)%len(walked)]
			endV := m.HalfEdgeEnd(he)
			startV := m.HalfEdgeStart(next)
			if endV != startV {
				add(SeverityError, IssueBrokenCycle, fmt.Sprintf("loop %d: half-edge %d end vertex %d does not match next half-edge %d start vertex %d", id, he, endV, next, startV), int(id), int(he), int(next))
			}
			h, ok := m.HalfEdge(he)
			if ok && h.Prev != walked[(i-1+len(walked))%len(walked)] {
				add(SeverityError, IssueBrokenCycle, fmt.Sprintf("loop %d: half-edge %d prev pointer inconsistent with walk order", id, he), int(id), int(he))
			}
		}
	}
}

// validateFacesAndHoles checks invariant 4: each face has >=1 loop
// (first = outer), and hole loops wind opposite the outer loop in the
// face's (u,v) parameter space.
func (m *Model) validateFacesAndHoles(ctx numeric.Context, add issueAdder) {
	for i := 1; i <= m.NumFaces(); i++ {
		id := FaceID(i)
		f, ok := m.Face(id)
		if !ok || f.Deleted {
			continue
		}
		if len(f.Loops) == 0 {
			add(SeverityError, IssueBrokenCycle, fmt.Sprintf("face %d has no loops", id), int(id))
			continue
		}
		outerArea := m.loopParamSignedArea(f.OuterLoop())
		for _, hole := range f.HoleLoops() {
			holeArea := m.loopParamSignedArea(hole)
			if sameSign(outerArea, holeArea) {
				add(SeverityWarning, IssueHoleWindingMismatch, fmt.Sprintf("face %d hole loop %d winds the same direction as the outer loop", id, hole), int(id), int(hole))
			}
		}
	}
}

func sameSign(a, b float64) bool {
	if a == 0 || b == 0 {
		return false
	}
	return (a > 0) == (b > 0)
}

// loopParamSignedArea computes the signed area of a loop's half-edges'
// p-curve 2D endpoints (shoelace formula). Returns 0 if any half-edge
// lacks a p-curve.
func (m *Model) loopParamSignedArea(loop LoopID) float64 {
	hes := m.LoopHalfEdges(loop)
	if len(hes) == 0 {
		return 0
	}
	var pts []numeric.Vec2
	for _, he := range hes {
		h, ok := m.HalfEdge(he)
		if !ok || h.PCurve == nil {
			return 0
		}
		pts = append(pts, h.PCurve.Curve2D.Start())
	}
	return signedArea2D(pts)
}

func signedArea2D(pts []numeric.Vec2) float64 {
	n := len(pts)
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}

// validateShellsClosed checks invariant 6: a shell marked closed has no
// boundary half-edges.
func (m *Model) validateShellsClosed(add issueAdder) {
	for i := 1; i <= m.NumShells(); i++ {
		id := ShellID(i)
		s, ok := m.Shell(id)
		if !ok || s.Deleted || !s.Closed {
			continue
		}
		for _, fid := range s.Faces {
			for _, he := range m.FaceHalfEdges(fid) {
				h, ok := m.HalfEdge(he)
				if ok && !h.Twin.Valid() {
					add(SeverityError, IssueBoundaryInClosed, fmt.Sprintf("shell %d is closed but half-edge %d (face %d) has no twin", id, he, fid), int(id), int(he), int(fid))
				}
			}
		}
	}
}

func (m *Model) validateEdgeLengths(ctx numeric.Context, opts ValidateOptions, add issueAdder) {
	for i := 1; i <= m.NumEdges(); i++ {
		id := EdgeID(i)
		e, ok := m.Edge(id)
		if !ok || e.Deleted {
			continue
		}
		vs, ok1 := m.Vertex(e.StartVertex)
		ve, ok2 := m.Vertex(e.EndVertex)
		if !ok1 || !ok2 {
			add(SeverityError, IssueInvalidHandle, fmt.Sprintf("edge %d references a missing vertex", id), int(id))
			continue
		}
		length := vs.Position.Distance(ve.Position)
		if ctx.IsZero(length) {
			add(SeverityError, IssueZeroLengthEdge, fmt.Sprintf("edge %d has zero length", id), int(id))
		} else if length < opts.ShortEdgeMultiple*ctx.Length {
			add(SeverityWarning, IssueShortEdge, fmt.Sprintf("edge %d length %g is below %gx tolerance", id, length, opts.ShortEdgeMultiple), int(id))
		}
	}
}

func (m *Model) validateDuplicateVertices(ctx numeric.Context, add issueAdder) {
	for i := 1; i <= m.NumVertices(); i++ {
		for j := i + 1; j <= m.NumVertices(); j++ {
			vi, oki := m.Vertex(VertexID(i))
			vj, okj := m.Vertex(VertexID(j))
			if !oki || !okj || vi.Deleted || vj.Deleted {
				continue
			}
			if vi.Position.Equal(vj.Position, ctx) {
				add(SeverityInfo, IssueDuplicateVertex, fmt.Sprintf("vertices %d and %d coincide within tolerance", i, j), i, j)
			}
		}
	}
}

// validateBackReferences checks that Face.Shell, Shell.Body, and
// Loop.Face back-pointers agree with the forward ownership lists.
func (m *Model) validateBackReferences(add issueAdder) {
	for i := 1; i <= m.NumShells(); i++ {
		id := ShellID(i)
		s, ok := m.Shell(id)
		if !ok || s.Deleted {
			continue
		}
		for _, fid := range s.Faces {
			f, ok := m.Face(fid)
			if ok && f.Shell != id {
				add(SeverityError, IssueBackRefMismatch, fmt.Sprintf("face %d back-reference shell %d does not match owning shell %d", fid, f.Shell, id), int(fid), int(f.Shell), int(id))
			}
		}
	}
	for i := 1; i <= m.NumBodies(); i++ {
		id := BodyID(i)
		b, ok := m.Body(id)
		if !ok || b.Deleted {
			continue
		}
		for _, sid := range b.Shells {
			s, ok := m.Shell(sid)
			if ok && s.Body != id {
				add(SeverityError, IssueBackRefMismatch, fmt.Sprintf("shell %d back-reference body %d does not match owning body %d", sid, s.Body, id), int(sid), int(s.Body), int(id))
			}
		}
	}
	for i := 1; i <= m.NumFaces(); i++ {
		id := FaceID(i)
		f, ok := m.Face(id)
		if !ok || f.Deleted {
			continue
		}
		for _, lid := range f.Loops {
			l, ok := m.Loop(lid)
			if ok && l.Face != id {
				add(SeverityError, IssueBackRefMismatch, fmt.Sprintf("loop %d back-reference face %d does not match owning face %d", lid, l.Face, id), int(lid), int(l.Face), int(id))
			}
		}
	}
}

// validateSliverFaces flags faces whose outer-loop bounding extents
// have an aspect ratio beyond the configured threshold.
func (m *Model) validateSliverFaces(opts ValidateOptions, add issueAdder) {
	for i := 1; i <= m.NumFaces(); i++ {
		id := FaceID(i)
		f, ok := m.Face(id)
		if !ok || f.Deleted {
			continue
		}
		verts := m.FaceVertices(id)
		if len(verts) < 3 {
			continue
		}
		minV, maxV := verts[0], verts[0]
		for _, v := range verts[1:] {
			minV = numeric.Vec3{X: minf(minV.X, v.X), Y: minf(minV.Y, v.Y), Z: minf(minV.Z, v.Z)}
			maxV = numeric.Vec3{X: maxf(maxV.X, v.X), Y: maxf(maxV.Y, v.Y), Z: maxf(maxV.Z, v.Z)}
		}
		ext := maxV.Sub(minV)
		longest := maxf(maxf(ext.X, ext.Y), ext.Z)
		shortestNonzero := longest
		for _, e := range []float64{ext.X, ext.Y, ext.Z} {
			if e > 1e-12 && e < shortestNonzero {
				shortestNonzero = e
			}
		}
		if shortestNonzero <= 0 {
			continue
		}
		ratio := longest / shortestNonzero
		if ratio > opts.MinSliverAspectRatio {
			add(SeverityWarning, IssueSliverFace, fmt.Sprintf("face %d has bounding aspect ratio %.1f, exceeds %.1f", id, ratio, opts.MinSliverAspectRatio), int(id))
		}
	}
}

func (m *Model) validateSameParameter(ctx numeric.Context, add issueAdder) {
	results, err := m.CheckSameParameterAll(ctx)
	if err != nil {
		add(SeverityError, IssueSameParameter, err.Error())
		return
	}
	for _, r := range results {
		if !r.OK {
			add(SeverityError, IssueSameParameter,
				fmt.Sprintf("half-edge %d: SameParameter deviation %g exceeds tolerance at t=%.3f", r.HalfEdge, r.MaxDeviation, r.FirstViolationT),
				int(r.HalfEdge))
		}
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// EulerCharacteristic returns V - E + F for a body's live vertices,
// edges, and faces, restricted to the entities reachable from body
// (spec §8.1.4).
func (m *Model) EulerCharacteristic(body BodyID) int {
	faces := m.BodyFaces(body)
	vertexSet := make(map[VertexID]bool)
	edgeSet := make(map[EdgeID]bool)
	for _, fid := range faces {
		for _, he := range m.FaceHalfEdges(fid) {
			h, ok := m.HalfEdge(he)
			if !ok {
				continue
			}
			edgeSet[h.Edge] = true
			vertexSet[m.HalfEdgeStart(he)] = true
		}
	}
	return len(vertexSet) - len(edgeSet) + len(faces)
}
