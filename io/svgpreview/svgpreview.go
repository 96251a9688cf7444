// Package svgpreview renders sketch profiles and classification
// diagnostics to SVG for headless debugging and golden-mesh
// snapshotting (SPEC_FULL.md "io/svgpreview"), using the same scale
// and loop-walking conventions sketch.Profile already establishes.
package svgpreview

import (
	"fmt"
	"io"

	"github.com/brepkit/kernel/geom"
	"github.com/brepkit/kernel/numeric"
	"github.com/brepkit/kernel/sketch"
	svg "github.com/ajstarks/svgo"
)

const samplesPerCurve = 24

// Profile renders profile's loops to w as an SVG document: the outer
// loop solid, hole loops dashed, scaled and translated to fit a
// width x height canvas with margin px of padding on every side.
func Profile(w io.Writer, profile sketch.Profile, width, height, margin int) {
	minU, maxU, minV, maxV := profileBounds(profile)
	toPx := pixelMapper(minU, maxU, minV, maxV, width, height, margin)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for _, loop := range profile.Loops {
		xs, ys := samplePoints(loop, toPx)
		style := "fill:none;stroke:black;stroke-width:2"
		if !loop.IsOuter {
			style = "fill:none;stroke:firebrick;stroke-width:1.5;stroke-dasharray:4,3"
		}
		canvas.Polygon(xs, ys, style)
	}
	canvas.End()
}

// ClassificationPoint is one sample a boolean-engine diagnostic wants
// plotted: a 2D (plane-projected) position tagged with its
// inside/outside/boundary verdict against the other operand.
type ClassificationPoint struct {
	U, V     float64
	Verdict  string // "inside", "outside", or "boundary"
}

// Classification renders a set of classification samples over an
// outline (typically a face's projected outer loop), tinting each
// sample by verdict — a diagnostic for the golden mesh suite, not a
// core output.
func Classification(w io.Writer, outline []numeric.Vec2, points []ClassificationPoint, width, height, margin int) {
	minU, maxU, minV, maxV := boundsOf(outline)
	for _, p := range points {
		minU, maxU = minF(minU, p.U), maxF(maxU, p.U)
		minV, maxV = minF(minV, p.V), maxF(maxV, p.V)
	}
	toPx := pixelMapper(minU, maxU, minV, maxV, width, height, margin)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	xs := make([]int, len(outline))
	ys := make([]int, len(outline))
	for i, p := range outline {
		xs[i], ys[i] = toPx(p.X, p.Y)
	}
	canvas.Polygon(xs, ys, "fill:none;stroke:black;stroke-width:2")

	for _, p := range points {
		x, y := toPx(p.U, p.V)
		color := "gray"
		switch p.Verdict {
		case "inside":
			color = "seagreen"
		case "outside":
			color = "steelblue"
		case "boundary":
			color = "goldenrod"
		}
		canvas.Circle(x, y, 3, fmt.Sprintf("fill:%s;stroke:none", color))
	}
	canvas.End()
}

func samplePoints(loop sketch.Loop, toPx func(u, v float64) (int, int)) (xs, ys []int) {
	for _, c := range loop.Curves {
		pts := geom.SampleCurve2D(c, samplesPerCurve)
		for _, p := range pts[:len(pts)-1] {
			x, y := toPx(p.X, p.Y)
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}

func profileBounds(profile sketch.Profile) (minU, maxU, minV, maxV float64) {
	minU, maxU, minV, maxV = 1e300, -1e300, 1e300, -1e300
	for _, loop := range profile.Loops {
		for _, c := range loop.Curves {
			for _, p := range geom.SampleCurve2D(c, samplesPerCurve) {
				minU, maxU = minF(minU, p.X), maxF(maxU, p.X)
				minV, maxV = minF(minV, p.Y), maxF(maxV, p.Y)
			}
		}
	}
	return
}

func boundsOf(pts []numeric.Vec2) (minU, maxU, minV, maxV float64) {
	minU, maxU, minV, maxV = 1e300, -1e300, 1e300, -1e300
	for _, p := range pts {
		minU, maxU = minF(minU, p.X), maxF(maxU, p.X)
		minV, maxV = minF(minV, p.Y), maxF(maxV, p.Y)
	}
	return
}

// pixelMapper returns a function mapping (u,v) model coordinates into
// pixel coordinates that fit width x height with margin px of padding,
// preserving aspect ratio and flipping v (model-up) to screen-down.
func pixelMapper(minU, maxU, minV, maxV float64, width, height, margin int) func(u, v float64) (int, int) {
	spanU := maxU - minU
	spanV := maxV - minV
	if spanU <= 0 {
		spanU = 1
	}
	if spanV <= 0 {
		spanV = 1
	}
	availW := float64(width - 2*margin)
	availH := float64(height - 2*margin)
	scale := availW / spanU
	if s := availH / spanV; s < scale {
		scale = s
	}
	return func(u, v float64) (int, int) {
		x := margin + int((u-minU)*scale)
		y := margin + int(availH-(v-minV)*scale)
		return x, y
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
