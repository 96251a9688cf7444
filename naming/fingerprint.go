package naming

import (
	"math"

	"github.com/brepkit/kernel/numeric"
	"gonum.org/v1/gonum/mat"
)

// ComputeFingerprint builds a Fingerprint from a sub-shape's boundary
// points. It uses a gonum/mat dense 3x3 covariance matrix to derive a
// characteristic extent (the sqrt of the covariance trace, a
// rotation-invariant spread measure) rather than a single bounding-box
// diagonal, so the fingerprint is stable under the face/edge
// re-parameterizations a boolean step can introduce. normal is nil for
// edges/vertices, non-nil for faces.
func ComputeFingerprint(points []numeric.Vec3, normal *numeric.Vec3, adjacentCount int, adjacencyHash uint64) Fingerprint {
	n := len(points)
	if n == 0 {
		return Fingerprint{}
	}
	var cx, cy, cz float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
		cz += p.Z
	}
	centroid := numeric.Vec3{X: cx / float64(n), Y: cy / float64(n), Z: cz / float64(n)}

	cov := mat.NewDense(3, 3, nil)
	for _, p := range points {
		d := p.Sub(centroid)
		dv := []float64{d.X, d.Y, d.Z}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov.Set(i, j, cov.At(i, j)+dv[i]*dv[j])
			}
		}
	}
	trace := (cov.At(0, 0) + cov.At(1, 1) + cov.At(2, 2)) / float64(n)
	extent := math.Sqrt(math.Max(trace, 0))

	fp := Fingerprint{Centroid: centroid, Extent: extent, Normal: normal}
	if adjacentCount >= 0 {
		ac := adjacentCount
		fp.AdjacentCount = &ac
	}
	if adjacencyHash != 0 {
		ah := adjacencyHash
		fp.AdjacencyHash = &ah
	}
	return fp
}

// Weights configures FingerprintDistance's weighted-sum terms (spec
// §4.G: "weighted sum; centroid distance normalized by characteristic
// length; magnitude ratio symmetric; normal cosine term; adjacency-hash
// equality as a tiebreaker"). This is the concrete, testable answer to
// the Open Question spec §9.2 leaves unresolved; see DESIGN.md.
type Weights struct {
	Centroid  float64
	Magnitude float64
	Normal    float64
	Adjacency float64
}

// DefaultWeights favors centroid proximity, the dominant discriminator
// for split/merge disambiguation, with magnitude and normal as
// secondary terms and adjacency purely as a tiebreaker.
func DefaultWeights() Weights {
	return Weights{Centroid: 1.0, Magnitude: 0.5, Normal: 0.3, Adjacency: 0.1}
}

// FingerprintDistance computes the weighted distance between two
// fingerprints, normalizing centroid distance by charLength (a
// caller-supplied characteristic length of the body being resolved,
// so the same weights work across wildly different model scales).
func FingerprintDistance(a, b Fingerprint, w Weights, charLength float64) float64 {
	if charLength <= 0 {
		charLength = 1
	}
	d := 0.0
	d += w.Centroid * (a.Centroid.Distance(b.Centroid) / charLength)

	if a.Extent > 0 && b.Extent > 0 {
		d += w.Magnitude * math.Abs(math.Log(a.Extent/b.Extent))
	} else if a.Extent != b.Extent {
		d += w.Magnitude
	}

	if a.Normal != nil && b.Normal != nil {
		cos := a.Normal.Normalize().Dot(b.Normal.Normalize())
		d += w.Normal * (1 - cos) / 2
	}

	if a.AdjacencyHash != nil && b.AdjacencyHash != nil && *a.AdjacencyHash != *b.AdjacencyHash {
		d += w.Adjacency
	}

	return d
}
