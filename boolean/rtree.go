package boolean

import (
	"github.com/brepkit/kernel/brep"
	"github.com/brepkit/kernel/geom"
	"github.com/dhconnelly/rtreego"
)

// faceBox adapts a face's 3D bounding box to rtreego.Spatial so the
// engine can prune face pairs that cannot possibly intersect before
// paying for the full half-space clip (spec §4.F implies an
// O(F_A·F_B) face-pair search; an R-tree over each body's face boxes
// keeps that tractable for bodies with many faces).
type faceBox struct {
	face brep.FaceID
	rect rtreego.Rect
}

func (fb *faceBox) Bounds() rtreego.Rect { return fb.rect }

// boundingRect builds an rtreego.Rect around poly, padded by pad on
// every side so coincident/touching faces still register as
// overlapping candidates.
func boundingRect(poly polygon, pad float64) (rtreego.Rect, bool) {
	if len(poly) == 0 {
		return rtreego.Rect{}, false
	}
	min := [3]float64{poly[0].X, poly[0].Y, poly[0].Z}
	max := min
	for _, p := range poly[1:] {
		if p.X < min[0] {
			min[0] = p.X
		}
		if p.Y < min[1] {
			min[1] = p.Y
		}
		if p.Z < min[2] {
			min[2] = p.Z
		}
		if p.X > max[0] {
			max[0] = p.X
		}
		if p.Y > max[1] {
			max[1] = p.Y
		}
		if p.Z > max[2] {
			max[2] = p.Z
		}
	}
	if pad < 1e-9 {
		pad = 1e-9
	}
	origin := rtreego.Point{min[0] - pad, min[1] - pad, min[2] - pad}
	lengths := []float64{
		(max[0] - min[0]) + 2*pad,
		(max[1] - min[1]) + 2*pad,
		(max[2] - min[2]) + 2*pad,
	}
	rect, err := rtreego.NewRect(origin, lengths)
	if err != nil {
		return rtreego.Rect{}, false
	}
	return rect, true
}

// buildFaceTree indexes every live face of body by its padded 3D
// bounding box.
func buildFaceTree(m *brep.Model, body brep.BodyID, pad float64) *rtreego.Rtree {
	tree := rtreego.NewTree(3, 4, 16)
	for _, fid := range m.BodyFaces(body) {
		poly := polygon(m.FaceVertices(fid))
		rect, ok := boundingRect(poly, pad)
		if !ok {
			continue
		}
		tree.Insert(&faceBox{face: fid, rect: rect})
	}
	return tree
}

// anyOverlap reports whether any face of tree's body overlaps query.
func anyOverlap(tree *rtreego.Rtree, query rtreego.Rect) bool {
	return len(tree.SearchIntersect(query)) > 0
}

// faceQuerier narrows a face-pair search down to the other body's
// faces whose padded bounding box actually overlaps the query face,
// instead of walking every face of the other body (spec §4.F's
// O(F_A*F_B) face-pair search — see facePairHalfSpaces).
type faceQuerier interface {
	candidatePolygons(poly polygon, pad float64) []polygon
}

// faceTreeQuerier adapts an *rtreego.Rtree of faceBox entries (built by
// buildFaceTree) plus the model it was built from to faceQuerier.
type faceTreeQuerier struct {
	m    *brep.Model
	tree *rtreego.Rtree
}

func (q faceTreeQuerier) candidatePolygons(poly polygon, pad float64) []polygon {
	rect, ok := boundingRect(poly, pad)
	if !ok {
		return nil
	}
	hits := q.tree.SearchIntersect(rect)
	out := make([]polygon, 0, len(hits))
	for _, sp := range hits {
		fb, ok := sp.(*faceBox)
		if !ok {
			continue
		}
		f, ok := q.m.Face(fb.face)
		if !ok {
			continue
		}
		surf, ok := q.m.Surface(f.Surface)
		if !ok || surf.Kind() != geom.SurfacePlane {
			continue // curved candidates never contribute a clipping plane
		}
		out = append(out, polygon(q.m.FaceVertices(fb.face)))
	}
	return out
}

// bodiesMayIntersect does a whole-body bounding-box overlap check
// before either operand's faces are walked at all: when the two
// bodies' overall boxes (already padded by the tolerance used for
// per-face pruning) don't overlap, neither body can affect the other
// and every face of both passes through untouched.
func bodiesMayIntersect(m *brep.Model, a, b brep.BodyID, pad float64) bool {
	treeA := buildFaceTree(m, a, pad)
	var allB polygon
	for _, fid := range m.BodyFaces(b) {
		allB = append(allB, m.FaceVertices(fid)...)
	}
	rectB, ok := boundingRect(allB, pad)
	if !ok {
		return false
	}
	return anyOverlap(treeA, rectB)
}
