package boolean

import (
	"sort"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
)

// faceDecision is what Boolean decided to do with one source face
// before any topology is touched — computed for every live face of
// both operands up front, so "does my neighbor survive" is always
// answerable while re-sewing the result.
type faceDecision struct {
	face     brep.FaceID
	body     brep.BodyID
	whole    bool // true: reuse the face as-is; false: rebuild from pieces
	keep     bool // for whole faces: keep (true) or drop (TagDeath, false)
	reversed bool // flip winding when rebuilding (subtract's tool side)
	pieces   []polygon
}

// Boolean computes bodyA `op` bodyB per spec §4.F and returns the
// merged result body plus a per-source-face evolution history. Both
// operand bodies are consumed: their faces are either moved into the
// result shell unchanged, rebuilt as new sub-faces, or dropped, and the
// original bodies are marked deleted.
func Boolean(m *brep.Model, ctx numeric.Context, p Params) (Result, error) {
	ba, okA := m.Body(p.BodyA)
	bb, okB := m.Body(p.BodyB)
	if !okA || ba.Deleted {
		return Result{}, kerr.New(kerr.KindInvalidInput, "boolean: body A not found", int(p.BodyA))
	}
	if !okB || bb.Deleted {
		return Result{}, kerr.New(kerr.KindInvalidInput, "boolean: body B not found", int(p.BodyB))
	}

	tol := ctx.WidePlaneTolerance()
	pad := tol
	queryB := newFaceQuerier(m, p.BodyB, pad)
	queryA := newFaceQuerier(m, p.BodyA, pad)

	// Fast path: disjoint bounding boxes mean nothing can intersect;
	// every face of both operands is kept or dropped whole by
	// keepWholeRule as lying outside the other body, without any
	// face-pair or ray-cast work.
	disjoint := !bodiesMayIntersect(m, p.BodyA, p.BodyB, pad)

	decisions := make([]faceDecision, 0, len(m.BodyFaces(p.BodyA))+len(m.BodyFaces(p.BodyB)))
	decisions = append(decisions, decideFaces(m, p.BodyA, p.BodyB, queryB, p.Operation, true, ctx, tol, disjoint)...)
	decisions = append(decisions, decideFaces(m, p.BodyB, p.BodyA, queryA, p.Operation, false, ctx, tol, disjoint)...)

	keptWhole := make(map[brep.FaceID]bool, len(decisions))
	for _, d := range decisions {
		if d.whole && d.keep {
			keptWhole[d.face] = true
		}
	}

	result := m.AddBody()
	shell := m.AddShell(false)
	m.AddShellToBody(result, shell)

	reg := newVertexRegistry(m, ctx.Length)
	pool := newEdgePool(m)

	var history []FaceHistoryEntry
	var tracker *naming.Tracker
	var stepFeature naming.FeatureID
	if p.Tracker != nil {
		tracker = p.Tracker
		stepFeature = tracker.AllocateFeatureID()
	}

	// Whole-kept faces go first so their vertices and boundary
	// half-edges are already in reg and pool when a rebuilt face that
	// shares their boundary looks them up.
	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].whole && decisions[i].keep && !(decisions[j].whole && decisions[j].keep)
	})

	for _, d := range decisions {
		switch {
		case d.whole && d.keep:
			m.AddFaceToShell(shell, d.face)
			for _, he := range m.FaceHalfEdges(d.face) {
				sv := m.HalfEdgeStart(he)
				if vx, ok := m.Vertex(sv); ok {
					reg.seed(sv, vx.Position)
				}
				h, _ := m.HalfEdge(he)
				if h.Twin.Valid() && keptWhole[twinFace(m, h.Twin)] {
					continue // internal edge between two whole-kept faces, untouched
				}
				if h.Twin.Valid() {
					m.ClearHalfEdgeTwin(he)
				}
				pool.seed(he)
			}
			history = append(history, FaceHistoryEntry{
				OldFace: d.face, OldBody: d.body,
				NewFaces: []brep.FaceID{d.face}, Tag: naming.TagUnchanged,
			})

		case d.whole && !d.keep:
			m.DeleteFace(d.face)
			history = append(history, FaceHistoryEntry{OldFace: d.face, OldBody: d.body, Tag: naming.TagDeath})

		default: // split / rebuilt
			m.DeleteFace(d.face)
			var newFaces []brep.FaceID
			for i, piece := range d.pieces {
				if len(piece) < 3 {
					continue
				}
				nf := buildFaceFromPolygon(m, pool, reg, piece, d.reversed)
				m.AddFaceToShell(shell, nf)
				newFaces = append(newFaces, nf)
				if tracker != nil {
					selKind := naming.SelBooleanFaceFromA
					if d.body == p.BodyB {
						selKind = naming.SelBooleanFaceFromB
					}
					sel := naming.Selector{Kind: selKind, Data: map[string]int{"sourceFace": int(d.face), "piece": i}}
					ref := naming.SubshapeRef{Kind: naming.KindFace, Body: int(result), ID: int(nf)}
					tracker.RecordBirth(stepFeature, sel, ref, faceFingerprint(m, nf))
				}
			}
			tag := naming.TagModify
			if len(newFaces) > 1 {
				tag = naming.TagSplit
			} else if len(newFaces) == 0 {
				tag = naming.TagDeath
			}
			history = append(history, FaceHistoryEntry{OldFace: d.face, OldBody: d.body, NewFaces: newFaces, Tag: tag})
		}
	}

	if err := pool.pairAll(); err != nil {
		return Result{}, err
	}

	closed := true
	for _, he := range pool.all {
		h, _ := m.HalfEdge(he)
		if !h.Twin.Valid() {
			closed = false
			break
		}
	}
	m.SetShellClosed(shell, closed)

	m.DeleteBody(p.BodyA)
	m.DeleteBody(p.BodyB)
	if tracker != nil {
		tracker.UpdateBodyMapping(int(p.BodyA), int(result))
		tracker.UpdateBodyMapping(int(p.BodyB), int(result))
		if p.StepID != 0 || len(history) > 0 {
			tracker.RecordStep(p.StepID, faceHistoryToMappings(history, int(result)))
		}
	}

	if len(m.BodyFaces(result)) == 0 {
		return Result{}, kerr.New(kerr.KindDegenerate, "boolean: result body has no surviving faces")
	}

	return Result{Success: true, Body: result, FaceHistory: history}, nil
}

// twinFace returns the face a half-edge belongs to via its loop.
func twinFace(m *brep.Model, he brep.HalfEdgeID) brep.FaceID {
	h, ok := m.HalfEdge(he)
	if !ok {
		return brep.InvalidFaceID
	}
	l, ok := m.Loop(h.Loop)
	if !ok {
		return brep.InvalidFaceID
	}
	return l.Face
}

// decideFaces classifies every live face of body against otherBody and
// the requested operation (spec §4.F's "Shell assembly per operation"
// table). Classification and splitting both go through otherBody's
// actual boundary — pointInBody for a whole face's inside/outside
// call, facePairHalfSpaces (built from real plane-plane intersections
// with otherQuery's candidate faces) for a face that needs splitting —
// so the result is correct whether or not otherBody happens to be
// convex.
func decideFaces(m *brep.Model, body, otherBody brep.BodyID, otherQuery faceQuerier, op Operation, isA bool, ctx numeric.Context, tol float64, disjoint bool) []faceDecision {
	var out []faceDecision
	for _, fid := range m.BodyFaces(body) {
		f, ok := m.Face(fid)
		if !ok {
			continue
		}
		surf, ok := m.Surface(f.Surface)
		if !ok {
			continue
		}

		if disjoint {
			keep, reversed := keepWholeRule(op, isA, false)
			out = append(out, faceDecision{face: fid, body: body, whole: true, keep: keep, reversed: reversed})
			continue
		}

		if surf.Kind() != geom.SurfacePlane {
			pts := polygon(m.FaceVertices(fid))
			insideOther := pointInBody(m, otherBody, centroid(pts), ctx)
			keep, reversed := keepWholeRule(op, isA, insideOther)
			out = append(out, faceDecision{face: fid, body: body, whole: true, keep: keep, reversed: reversed})
			continue
		}

		poly := polygon(m.FaceVertices(fid))
		if len(poly) < 3 {
			continue
		}
		localSpaces := facePairHalfSpaces(m, poly, otherQuery, otherBody, ctx, tol)
		if len(localSpaces) == 0 {
			insideOther := pointInBody(m, otherBody, centroid(poly), ctx)
			keep, reversed := keepWholeRule(op, isA, insideOther)
			out = append(out, faceDecision{face: fid, body: body, whole: true, keep: keep, reversed: reversed})
			continue
		}
		r := splitAgainstHalfSpaces(poly, localSpaces, tol)
		if whole, insideOther := r.isWhole(); whole {
			keep, reversed := keepWholeRule(op, isA, insideOther)
			out = append(out, faceDecision{face: fid, body: body, whole: true, keep: keep, reversed: reversed})
			continue
		}
		pieces, reversed := keepSplitRule(op, isA, r)
		out = append(out, faceDecision{face: fid, body: body, whole: false, pieces: pieces, reversed: reversed})
	}
	return out
}

// keepWholeRule implements spec §4.F's per-operation keep/drop table
// for a face that the other operand does not actually cut.
func keepWholeRule(op Operation, isA bool, insideOther bool) (keep bool, reversed bool) {
	switch op {
	case OpUnion:
		return !insideOther, false
	case OpIntersect:
		return insideOther, false
	case OpSubtract:
		if isA {
			return !insideOther, false
		}
		return insideOther, true
	default:
		return false, false
	}
}

// keepSplitRule selects which clipped pieces survive a split face,
// mirroring keepWholeRule's per-operation logic over polygon sets
// instead of a single whole/drop bit.
func keepSplitRule(op Operation, isA bool, r splitResult) (pieces []polygon, reversed bool) {
	switch op {
	case OpUnion:
		return r.outsideAny, false
	case OpIntersect:
		return r.insideAll, false
	case OpSubtract:
		if isA {
			return r.outsideAny, false
		}
		return r.insideAll, true
	default:
		return nil, false
	}
}

// buildFaceFromPolygon constructs a brand-new planar face from a
// clipped (or whole-but-reversed) polygon, routing its boundary
// half-edges through pool so a segment shared with a neighboring
// whole-kept face or another new face reuses the same Edge record
// instead of duplicating it (spec §4.F "re-sewn... twin links
// re-established").
func buildFaceFromPolygon(m *brep.Model, pool *edgePool, reg *vertexRegistry, poly polygon, reversed bool) brep.FaceID {
	pts := poly
	if reversed {
		pts = reversePolygon(poly)
	}
	normal := polygonNormal(pts)
	surf := geom.NewPlaneDeterministic(pts[0], normal)
	sid := m.AddSurface(surf)
	face := m.AddFace(sid, false)

	n := len(pts)
	vids := make([]brep.VertexID, n)
	for i, p := range pts {
		vids[i] = reg.get(p)
	}
	hes := make([]brep.HalfEdgeID, n)
	for i := 0; i < n; i++ {
		a, b := vids[i], vids[(i+1)%n]
		he := pool.getOrMake(a, b)
		hes[i] = he
		u0, v0, _ := surf.Project(pts[i])
		u1, v1, _ := surf.Project(pts[(i+1)%n])
		m.SetHalfEdgePCurve(he, sid, geom.Line2D{P0: numeric.Vec2{X: u0, Y: v0}, P1: numeric.Vec2{X: u1, Y: v1}})
	}
	loop := m.AddLoop(hes)
	m.AddLoopToFace(face, loop)
	return face
}

func reversePolygon(poly polygon) polygon {
	out := make(polygon, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

// faceHistoryToMappings turns the engine's FaceHistory into the
// EvolutionMappings the tracker expects (spec §3.5), rewriting every
// surviving face's body to the result body so a ref born under the old
// body resolves directly without relying solely on UpdateBodyMapping.
func faceHistoryToMappings(history []FaceHistoryEntry, resultBody int) []naming.EvolutionMapping {
	mappings := make([]naming.EvolutionMapping, 0, len(history))
	for _, h := range history {
		old := naming.SubshapeRef{Kind: naming.KindFace, Body: int(h.OldBody), ID: int(h.OldFace)}
		news := make([]naming.SubshapeRef, 0, len(h.NewFaces))
		for _, nf := range h.NewFaces {
			news = append(news, naming.SubshapeRef{Kind: naming.KindFace, Body: resultBody, ID: int(nf)})
		}
		mappings = append(mappings, naming.EvolutionMapping{Old: old, News: news, Tag: h.Tag})
	}
	return mappings
}
