package numeric

import "math"

// RotateAboutAxis rotates point p by angle radians (right-hand rule)
// about the line through axisOrigin in direction axisDir, using
// Rodrigues' rotation formula. axisDir need not be unit length.
func RotateAboutAxis(p, axisOrigin, axisDir Vec3, angle float64) Vec3 {
	k := axisDir.Normalize()
	v := p.Sub(axisOrigin)
	cosT, sinT := math.Cos(angle), math.Sin(angle)
	rotated := v.Scale(cosT).
		Add(k.Cross(v).Scale(sinT)).
		Add(k.Scale(k.Dot(v) * (1 - cosT)))
	return axisOrigin.Add(rotated)
}
