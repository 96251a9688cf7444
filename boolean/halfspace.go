package boolean

import (
	"github.com/brepkit/kernel/brep"
)

// newFaceQuerier wraps body's face R-tree as a faceQuerier so
// facePairHalfSpaces can look up, for any single face, the candidate
// faces of body whose bounding box might actually intersect it,
// instead of the whole-body "intersection of half-spaces" shortcut
// this package used before: that shortcut only describes a convex
// body's interior correctly, and the result of a prior boolean (an
// L-shaped subtract result used as input to a further cut, for
// instance) is routinely non-convex.
func newFaceQuerier(m *brep.Model, body brep.BodyID, pad float64) faceQuerier {
	return faceTreeQuerier{m: m, tree: buildFaceTree(m, body, pad)}
}
