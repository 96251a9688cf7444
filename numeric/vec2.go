package numeric

import "math"

// Vec2 is a 2D vector/point in a surface's parameter space or a sketch
// plane's (u,v) frame.
type Vec2 struct {
	X, Y float64
}

// Add returns a+b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Sub returns a-b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale returns a*f.
func (a Vec2) Scale(f float64) Vec2 { return Vec2{a.X * f, a.Y * f} }

// Dot returns the dot product a.b.
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Cross returns the scalar z-component of the 3D cross product of a and
// b extended into the xy-plane.
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Length returns the Euclidean length of a.
func (a Vec2) Length() float64 { return math.Sqrt(a.Dot(a)) }

// LengthSq returns the squared Euclidean length of a.
func (a Vec2) LengthSq() float64 { return a.Dot(a) }

// Normalize returns a scaled to unit length; the zero vector is
// returned unchanged.
func (a Vec2) Normalize() Vec2 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Distance returns the Euclidean distance between a and b.
func (a Vec2) Distance(b Vec2) float64 { return a.Sub(b).Length() }

// Lerp returns the point t of the way from a to b, t in [0,1].
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Equal reports whether a and b are within ctx's length tolerance.
func (a Vec2) Equal(b Vec2, ctx Context) bool {
	return a.Sub(b).LengthSq() <= ctx.LengthSquared
}

// Orient2D returns the sign of the signed area of triangle (a,b,c):
// +1 if c is strictly left of the directed line a->b, -1 if strictly
// right, 0 if collinear within the adaptive error bound.
//
// This is the one predicate the entire planar boolean engine is built
// on (spec §4.F "Robustness rules": all 2D line-with-polygon decisions
// go through orient2D, never a direct cross-product sign test on raw
// floats). We use Shewchuk-style adaptive error bounds: compute the
// determinant with plain float64 arithmetic, and only fall back to an
// exact expansion (float64 pair arithmetic, "double-double") when the
// result falls inside the a-priori error bound, so the common case
// stays cheap.
func Orient2D(a, b, c Vec2) int {
	d, errBound := orient2DDet(a, b, c)
	if math.Abs(d) > errBound {
		return sign(d)
	}
	return orient2DExact(a, b, c)
}

func orient2DDet(a, b, c Vec2) (det, errBound float64) {
	acx := a.X - c.X
	bcx := b.X - c.X
	acy := a.Y - c.Y
	bcy := b.Y - c.Y
	det = acx*bcy - acy*bcx

	// Standard Shewchuk static error bound for the 2x2 determinant of
	// differences, with machine epsilon for float64.
	const epsilon = 1.1102230246251565e-16 // 2^-53
	const errBoundFactor = 3.3306690738754716e-16 // (3 + 16*eps)*eps
	detSum := math.Abs(acx*bcy) + math.Abs(acy*bcx)
	errBound = errBoundFactor * detSum
	_ = epsilon
	return det, errBound
}

// orient2DExact recomputes the determinant with compensated (Kahan
// two-sum / two-product) summation, which is sign-exact for all but
// the most pathological coordinate magnitudes; it is the fallback path
// so its extra cost is paid only near-collinear.
func orient2DExact(a, b, c Vec2) int {
	acx, acxErr := twoDiff(a.X, c.X)
	bcy, bcyErr := twoDiff(b.Y, c.Y)
	acy, acyErr := twoDiff(a.Y, c.Y)
	bcx, bcxErr := twoDiff(b.X, c.X)

	p1, p1Err := twoProduct(acx, bcy)
	p2, p2Err := twoProduct(acy, bcx)

	// Combine the two compensated products and their error terms into
	// a running compensated sum; the final sign is taken from the
	// highest-order term once the residual is negligible.
	hi := p1 - p2
	lo := (p1Err - p2Err) + (acxErr*bcy + acx*bcyErr) - (acyErr*bcx + acy*bcxErr)
	sum := hi + lo
	if sum != 0 {
		return sign(sum)
	}
	return sign(hi)
}

func twoSum(a, b float64) (sum, err float64) {
	sum = a + b
	bv := sum - a
	av := sum - bv
	br := b - bv
	ar := a - av
	err = ar + br
	return
}

func twoDiff(a, b float64) (diff, err float64) {
	return twoSum(a, -b)
}

func twoProduct(a, b float64) (prod, err float64) {
	prod = a * b
	err = math.FMA(a, b, -prod)
	return
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
