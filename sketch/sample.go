package sketch

import (
	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/numeric"
)

// Segment is one polyline edge of a sampled loop: its two sampled
// endpoints plus the original curve it was sampled from (spec §4.D:
// "each resulting polyline edge remembers the source curve, so feature
// operators know which side faces are cylindrical"). For a curve
// sampled into multiple segments (an arc), every segment sharing that
// arc carries the same SourceCurve and SourceKind, so the feature
// builder can reconstruct one cylindrical surface per segment using
// the arc's own center and radius.
type Segment struct {
	P0, P1      numeric.Vec2
	SourceKind  geom.Curve2DKind
	SourceCurve geom.Curve2D
}

// SampledLoop is a loop reduced to a closed polyline for extrude (spec
// §4.D).
type SampledLoop struct {
	Segments []Segment
	IsOuter  bool
}

// SampleForExtrude converts every curve in the loop into one or more
// polyline segments: a line becomes exactly one segment, an arc is
// subdivided per geom.ArcSegmentCount (minimum 12 per full circle, one
// per ~10 degrees of span).
func (l Loop) SampleForExtrude() SampledLoop {
	var segs []Segment
	for _, c := range l.Curves {
		switch c.Kind() {
		case geom.Curve2DLine:
			segs = append(segs, Segment{P0: c.Start(), P1: c.End(), SourceKind: geom.Curve2DLine, SourceCurve: c})
		case geom.Curve2DArc:
			arc := c.(geom.Arc2D)
			n := geom.ArcSegmentCount(arcSpan(arc))
			pts := geom.SampleCurve2D(c, n)
			for i := 0; i < n; i++ {
				segs = append(segs, Segment{P0: pts[i], P1: pts[i+1], SourceKind: geom.Curve2DArc, SourceCurve: c})
			}
		default:
			segs = append(segs, Segment{P0: c.Start(), P1: c.End(), SourceKind: c.Kind(), SourceCurve: c})
		}
	}
	return SampledLoop{Segments: segs, IsOuter: l.IsOuter}
}

// arcSpan recomputes the normalized angular span of an arc, mirroring
// Arc2D's unexported span() so the sampler can size its subdivision
// without depending on geom internals.
func arcSpan(a geom.Arc2D) float64 {
	d := a.EndAngle - a.StartAngle
	twoPi := 2 * 3.141592653589793
	if a.CCW {
		for d <= 0 {
			d += twoPi
		}
	} else {
		for d >= 0 {
			d -= twoPi
		}
	}
	return d
}

// Vertices2D returns the sampled loop's distinct vertices in order
// (P0 of every segment; the final segment's P1 closes back to the
// first vertex and is not repeated).
func (s SampledLoop) Vertices2D() []numeric.Vec2 {
	out := make([]numeric.Vec2, len(s.Segments))
	for i, seg := range s.Segments {
		out[i] = seg.P0
	}
	return out
}
