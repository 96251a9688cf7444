package numeric

import "math"

// Vec3 is a 3D point or direction.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns a*f.
func (a Vec3) Scale(f float64) Vec3 { return Vec3{a.X * f, a.Y * f, a.Z * f} }

// Dot returns the dot product a.b.
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns the cross product a x b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean length of a.
func (a Vec3) Length() float64 { return math.Sqrt(a.Dot(a)) }

// LengthSq returns the squared Euclidean length of a.
func (a Vec3) LengthSq() float64 { return a.Dot(a) }

// Normalize returns a scaled to unit length; the zero vector is
// returned unchanged.
func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Distance returns the Euclidean distance between a and b.
func (a Vec3) Distance(b Vec3) float64 { return a.Sub(b).Length() }

// Lerp returns the point t of the way from a to b, t in [0,1].
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Equal reports whether a and b are within ctx's length tolerance.
func (a Vec3) Equal(b Vec3, ctx Context) bool {
	return a.Sub(b).LengthSq() <= ctx.LengthSquared
}

// Negate returns -a.
func (a Vec3) Negate() Vec3 { return Vec3{-a.X, -a.Y, -a.Z} }

// IsZero reports whether a is within ctx's length tolerance of the
// origin.
func (a Vec3) IsZero(ctx Context) bool { return a.LengthSq() <= ctx.LengthSquared }

// Zero3 is the origin / zero vector.
var Zero3 = Vec3{}

// UnitX, UnitY, UnitZ are the standard basis directions.
var (
	UnitX = Vec3{X: 1}
	UnitY = Vec3{Y: 1}
	UnitZ = Vec3{Z: 1}
)

// ArbitraryPerp returns a unit vector perpendicular to a, using a
// deterministic choice of reference axis (UnitX, or UnitY when a lies
// mostly along X) so the result is a pure function of a, not of call order — this
// is what gives cylinder/torus surfaces a stable reference frame
// (spec §3.2 "deterministic reference frame perpendicular to the
// axis").
func ArbitraryPerp(a Vec3) Vec3 {
	n := a.Normalize()
	ref := UnitX
	if math.Abs(n.X) > math.Abs(n.Y) && math.Abs(n.X) > math.Abs(n.Z) {
		ref = UnitY
	}
	perp := ref.Sub(n.Scale(ref.Dot(n)))
	return perp.Normalize()
}
