// Package sketch converts a solved 2D sketch (spec §3.4/§4.D) into
// Profile loops usable by the feature operators. The sketch constraint
// solver itself is an external collaborator (spec §1); this package
// only specifies and validates the shape it must hand the core.
package sketch

import (
	"fmt"

	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/kerr"
	"github.com/brepkit/kernel/numeric"
)

// Loop is an ordered list of 2D curves (lines and arcs) whose
// endpoints chain end-to-start, closing back to the first curve's
// start (spec §3.4). IsOuter distinguishes outer boundary from holes.
type Loop struct {
	Curves  []geom.Curve2D
	IsOuter bool
}

// Profile is (plane, loops[]) per spec §3.4.
type Profile struct {
	Plane geom.Plane
	Loops []Loop
}

// windingSamplesPerCurve is how many points signedArea takes along each
// curve; signedArea returns the shoelace signed area in the plane's
// (u,v) frame: positive is CCW.
const windingSamplesPerCurve = 16

func (l Loop) signedArea() float64 {
	var pts []numeric.Vec2
	for _, c := range l.Curves {
		pts = append(pts, geom.SampleCurve2D(c, windingSamplesPerCurve)[:windingSamplesPerCurve]...)
	}
	n := len(pts)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}

// reoriented returns l with its curve order and direction reversed so
// its winding matches the expected sign: positive (CCW) for an outer
// loop, negative (CW) for a hole (spec §4.D).
func (l Loop) reoriented() Loop {
	area := l.signedArea()
	wantPositive := l.IsOuter
	if (area > 0) == wantPositive || area == 0 {
		return l
	}
	reversed := make([]geom.Curve2D, len(l.Curves))
	n := len(l.Curves)
	for i, c := range l.Curves {
		reversed[n-1-i] = c.Reversed()
	}
	return Loop{Curves: reversed, IsOuter: l.IsOuter}
}

// closureGap returns the distance between the end of the loop's last
// curve and the start of its first — zero for a properly closed loop.
func (l Loop) closureGap() float64 {
	if len(l.Curves) == 0 {
		return 0
	}
	last := l.Curves[len(l.Curves)-1]
	first := l.Curves[0]
	return last.End().Sub(first.Start()).Length()
}

// chainGaps returns, for each consecutive curve pair, the distance
// between one curve's end and the next curve's start.
func (l Loop) chainGaps() []float64 {
	gaps := make([]float64, len(l.Curves))
	for i := range l.Curves {
		next := l.Curves[(i+1)%len(l.Curves)]
		gaps[i] = l.Curves[i].End().Sub(next.Start()).Length()
	}
	return gaps
}

// New builds a Profile from plane + loops, reorienting every loop's
// winding (spec §4.D) and rejecting loops that do not close within
// ctx.Length (spec §6.1 "the core rejects non-closed loops within
// tolerance").
func New(plane geom.Plane, loops []Loop, ctx numeric.Context) (Profile, error) {
	if len(loops) == 0 {
		return Profile{}, kerr.New(kerr.KindInvalidInput, "sketch profile has no loops")
	}
	out := make([]Loop, len(loops))
	for i, l := range loops {
		if len(l.Curves) == 0 {
			return Profile{}, kerr.New(kerr.KindDegenerate, fmt.Sprintf("loop %d has no curves", i))
		}
		for _, gap := range l.chainGaps() {
			if gap > ctx.Length {
				return Profile{}, kerr.New(kerr.KindDegenerate, fmt.Sprintf("loop %d: open loop, gap %g exceeds tolerance %g", i, gap, ctx.Length))
			}
		}
		out[i] = l.reoriented()
	}
	hasOuter := false
	for _, l := range out {
		if l.IsOuter {
			hasOuter = true
		}
	}
	if !hasOuter {
		return Profile{}, kerr.New(kerr.KindInvalidInput, "sketch profile has no outer loop")
	}
	return Profile{Plane: plane, Loops: out}, nil
}

// OuterLoops returns the profile's outer-boundary loops (there may be
// more than one for disjoint regions, spec §3.4).
func (p Profile) OuterLoops() []Loop {
	var out []Loop
	for _, l := range p.Loops {
		if l.IsOuter {
			out = append(out, l)
		}
	}
	return out
}

// HoleLoopsFor returns the hole loops of p (spec §3.4's single-region
// "one outer plus holes" focus: every hole in the profile is treated
// as belonging to the (sole) outer region a feature operator is
// building).
func (p Profile) HoleLoopsFor() []Loop {
	var out []Loop
	for _, l := range p.Loops {
		if !l.IsOuter {
			out = append(out, l)
		}
	}
	return out
}
