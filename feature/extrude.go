// Package feature implements the extrude/revolve/primitive constructors
// of spec §4.E: sweeping a sketch profile into a closed shell of
// brep.Model entities, pairing twins, and registering persistent-naming
// births.
package feature

import (
	"fmt"

	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/naming"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/sketch"
)

// Operation is add or cut (spec §4.E); cut is an add followed by a
// boolean subtract on the target body, which the caller (not this
// package) drives with the boolean package.
type Operation int

const (
	OpAdd Operation = iota
	OpCut
)

// ExtrudeParams are the inputs to Extrude (spec §4.E).
type ExtrudeParams struct {
	Profile   sketch.Profile
	Operation Operation
	Distance  float64
	// Direction defaults to Profile.Plane.Normal when the zero vector.
	Direction numeric.Vec3
	Symmetric bool

	// Tracker and FeatureID are optional; when Tracker is nil no
	// persistent-naming births are recorded.
	Tracker   *naming.Tracker
	FeatureID naming.FeatureID
}

// ExtrudeRefs collects the persistent-naming refs an extrude produces,
// grouped by selector category (spec §4.E output shape).
type ExtrudeRefs struct {
	TopCap    []naming.PersistentRef
	BottomCap []naming.PersistentRef
	Side      []naming.PersistentRef
	SideEdge  []naming.PersistentRef
	TopEdge   []naming.PersistentRef
	BottomEdge []naming.PersistentRef
}

// ExtrudeResult is the extrude output (spec §4.E).
type ExtrudeResult struct {
	Success   bool
	Body      brep.BodyID
	FeatureID naming.FeatureID
	Refs      ExtrudeRefs
}

// loopRing is the per-loop working state threaded through Extrude's
// steps: the sampled 2D polyline plus its bottom/top 3D vertices.
type loopRing struct {
	sampled    sketch.SampledLoop
	bottom, top []brep.VertexID
}

// Extrude sweeps profile into a new body per spec §4.E. Distances at or
// below ctx.Length are rejected as InvalidInput, matching §8.3's
// "extrude distance of exactly ctx.tol.length/2 is rejected".
func Extrude(m *brep.Model, p ExtrudeParams, ctx numeric.Context) (ExtrudeResult, error) {
	if len(p.Profile.Loops) == 0 {
		return ExtrudeResult{}, kerr.New(kerr.KindInvalidInput, "extrude: empty profile")
	}
	if p.Distance <= ctx.Length {
		return ExtrudeResult{}, kerr.New(kerr.KindInvalidInput,
			fmt.Sprintf("extrude: distance %g too small (tolerance %g)", p.Distance, ctx.Length))
	}

	dir := p.Direction
	if dir.IsZero(ctx) {
		dir = p.Profile.Plane.Normal
	}
	dir = dir.Normalize()

	startOff, endOff := 0.0, p.Distance
	if p.Symmetric {
		startOff, endOff = -p.Distance/2, p.Distance/2
	}

	plane := p.Profile.Plane
	toPoint := func(v numeric.Vec2, offset float64) numeric.Vec3 {
		return plane.Eval(v.X, v.Y).Add(dir.Scale(offset))
	}

	rings := make([]loopRing, len(p.Profile.Loops))
	for i, loop := range p.Profile.Loops {
		sampled := loop.SampleForExtrude()
		verts := sampled.Vertices2D()
		bottom := make([]brep.VertexID, len(verts))
		top := make([]brep.VertexID, len(verts))
		for j, v := range verts {
			bottom[j] = m.AddVertex(toPoint(v, startOff))
			top[j] = m.AddVertex(toPoint(v, endOff))
		}
		rings[i] = loopRing{sampled: sampled, bottom: bottom, top: top}
	}

	pool := newHalfEdgePool(m)
	body := m.AddBody()
	shell := m.AddShell(true)
	m.AddShellToBody(body, shell)

	var tracker *naming.Tracker
	fid := p.FeatureID
	if p.Tracker != nil {
		tracker = p.Tracker
	}

	var refs ExtrudeRefs

	// Bottom cap: one face, outer loop reversed, hole loops forward
	// (spec §4.E step 5).
	bottomSurf := geom.NewPlane(plane.Origin.Add(dir.Scale(startOff)), dir.Negate(), plane.XDir)
	bottomSurfID := m.AddSurface(bottomSurf)
	bottomFace := m.AddFace(bottomSurfID, false)
	for i, r := range rings {
		n := len(r.bottom)
		hes := make([]brep.HalfEdgeID, n)
		for j := 0; j < n; j++ {
			k := (j + 1) % n
			if r.sampled.IsOuter {
				hes[j] = pool.get(r.bottom[k], r.bottom[j])
			} else {
				hes[j] = pool.get(r.bottom[j], r.bottom[k])
			}
		}
		if r.sampled.IsOuter {
			// reverse order so the cycle still chains end-to-start.
			for a, b := 0, n-1; a < b; a, b = a+1, b-1 {
				hes[a], hes[b] = hes[b], hes[a]
			}
		}
		loop := m.AddLoop(hes)
		m.AddLoopToFace(bottomFace, loop)
		if tracker != nil {
			ref := naming.SubshapeRef{Kind: naming.KindFace, Body: int(body), ID: int(bottomFace)}
			sel := naming.Selector{Kind: naming.SelExtrudeBottomCap, Data: map[string]int{"loop": i}}
			tracker.RecordBirth(fid, sel, ref, faceFingerprint(m, bottomFace))
			refs.BottomCap = append(refs.BottomCap, naming.PersistentRef{OriginFeatureID: fid, Selector: sel, ExpectedType: naming.KindFace})
		}
	}
	m.AddFaceToShell(shell, bottomFace)

	// Top cap: one face, outer forward; hole loops reversed so their
	// side-wall half-edges can still pair as twins (see DESIGN.md: the
	// top-cap-hole-reversal decision).
	topSurf := geom.NewPlane(plane.Origin.Add(dir.Scale(endOff)), dir, plane.XDir)
	topSurfID := m.AddSurface(topSurf)
	topFace := m.AddFace(topSurfID, false)
	for i, r := range rings {
		n := len(r.top)
		hes := make([]brep.HalfEdgeID, n)
		for j := 0; j < n; j++ {
			k := (j + 1) % n
			if r.sampled.IsOuter {
				hes[j] = pool.get(r.top[j], r.top[k])
			} else {
				hes[j] = pool.get(r.top[k], r.top[j])
			}
		}
		if !r.sampled.IsOuter {
			for a, b := 0, n-1; a < b; a, b = a+1, b-1 {
				hes[a], hes[b] = hes[b], hes[a]
			}
		}
		loop := m.AddLoop(hes)
		m.AddLoopToFace(topFace, loop)
		if tracker != nil {
			ref := naming.SubshapeRef{Kind: naming.KindFace, Body: int(body), ID: int(topFace)}
			sel := naming.Selector{Kind: naming.SelExtrudeTopCap, Data: map[string]int{"loop": i}}
			tracker.RecordBirth(fid, sel, ref, faceFingerprint(m, topFace))
			refs.TopCap = append(refs.TopCap, naming.PersistentRef{OriginFeatureID: fid, Selector: sel, ExpectedType: naming.KindFace})
		}
	}
	m.AddFaceToShell(shell, topFace)

	// Side faces: one per sampled segment of every loop (spec §4.E
	// step 7).
	for li, r := range rings {
		n := len(r.sampled.Segments)
		for si, seg := range r.sampled.Segments {
			j := (si + 1) % n
			var hes []brep.HalfEdgeID
			if r.sampled.IsOuter {
				hes = []brep.HalfEdgeID{
					pool.get(r.bottom[si], r.bottom[j]),
					pool.get(r.bottom[j], r.top[j]),
					pool.get(r.top[j], r.top[si]),
					pool.get(r.top[si], r.bottom[si]),
				}
			} else {
				// inverted for inner loops (spec §4.E step 7).
				hes = []brep.HalfEdgeID{
					pool.get(r.bottom[si], r.top[si]),
					pool.get(r.top[si], r.top[j]),
					pool.get(r.top[j], r.bottom[j]),
					pool.get(r.bottom[j], r.bottom[si]),
				}
			}

			var surf geom.Surface
			reversed := !r.sampled.IsOuter
			switch seg.SourceKind {
			case geom.Curve2DArc:
				arc := seg.SourceCurve.(geom.Arc2D)
				center3 := plane.Eval(arc.Center.X, arc.Center.Y).Add(dir.Scale(startOff))
				surf = geom.NewCylinder(center3, dir, arc.Radius)
			default:
				edgeDir2 := seg.P1.Sub(seg.P0)
				edgeDir3 := plane.XDir.Scale(edgeDir2.X).Add(plane.YDir.Scale(edgeDir2.Y)).Normalize()
				normal := dir.Cross(edgeDir3)
				if !r.sampled.IsOuter {
					normal = normal.Negate()
				}
				origin := plane.Eval(seg.P0.X, seg.P0.Y).Add(dir.Scale(startOff))
				surf = geom.NewPlane(origin, normal, edgeDir3)
			}
			surfID := m.AddSurface(surf)
			face := m.AddFace(surfID, reversed)
			loop := m.AddLoop(hes)
			m.AddLoopToFace(face, loop)
			m.AddFaceToShell(shell, face)

			if tracker != nil {
				ref := naming.SubshapeRef{Kind: naming.KindFace, Body: int(body), ID: int(face)}
				sel := naming.Selector{Kind: naming.SelExtrudeSide, Data: map[string]int{"loop": li, "segment": si}}
				tracker.RecordBirth(fid, sel, ref, faceFingerprint(m, face))
				refs.Side = append(refs.Side, naming.PersistentRef{OriginFeatureID: fid, Selector: sel, ExpectedType: naming.KindFace})
			}
		}
	}

	if err := pool.pairAll(); err != nil {
		return ExtrudeResult{}, err
	}

	registerEdgeRefs(tracker, fid, body, rings, pool, &refs)

	return ExtrudeResult{Success: true, Body: body, FeatureID: fid, Refs: refs}, nil
}

// registerEdgeRefs records the sideEdge/topEdge/bottomEdge selectors
// (spec §4.E step 9: "every top/bottom/side edge").
func registerEdgeRefs(tracker *naming.Tracker, fid naming.FeatureID, body brep.BodyID, rings []loopRing, pool *halfEdgePool, refs *ExtrudeRefs) {
	if tracker == nil {
		return
	}
	for li, r := range rings {
		n := len(r.bottom)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			register := func(kind string, a, b brep.VertexID, dest *[]naming.PersistentRef) {
				he := pool.peek(a, b)
				if !he.Valid() {
					return
				}
				edgeID, ok := edgeOfHalfEdge(pool, he)
				if !ok {
					return
				}
				ref := naming.SubshapeRef{Kind: naming.KindEdge, Body: int(body), ID: int(edgeID)}
				sel := naming.Selector{Kind: kind, Data: map[string]int{"loop": li, "segment": i}}
				tracker.RecordBirth(fid, sel, ref, edgeFingerprint(pool.model, edgeID))
				*dest = append(*dest, naming.PersistentRef{OriginFeatureID: fid, Selector: sel, ExpectedType: naming.KindEdge})
			}
			register(naming.SelExtrudeBottomEdge, r.bottom[i], r.bottom[j], &refs.BottomEdge)
			register(naming.SelExtrudeTopEdge, r.top[i], r.top[j], &refs.TopEdge)
			register(naming.SelExtrudeSideEdge, r.bottom[i], r.top[i], &refs.SideEdge)
		}
	}
}

// edgeOfHalfEdge resolves the underlying EdgeID for a half-edge tracked
// by pool, used only to register edge-selector births against the edge
// table rather than a particular directed half-edge.
func edgeOfHalfEdge(pool *halfEdgePool, he brep.HalfEdgeID) (brep.EdgeID, bool) {
	h, ok := pool.model.HalfEdge(he)
	if !ok {
		return brep.InvalidEdgeID, false
	}
	return h.Edge, true
}
