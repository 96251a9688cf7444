package brep

import (
	"fmt"

	"github.com/brepkit/kernel/numeric"
)

// SameParameterSamples is N in spec §4.C / §8.1.2: the sample count the
// SameParameter validator uses along each half-edge.
const SameParameterSamples = 10

// SameParameterResult is the outcome of checking one half-edge's
// SameParameter discipline: the 3D edge curve and the surface
// evaluated at the half-edge's p-curve must agree pointwise within
// tolerance at every sampled parameter.
type SameParameterResult struct {
	HalfEdge     HalfEdgeID
	MaxDeviation float64
	// FirstViolationT is the first sampled t (in [0,1]) where deviation
	// exceeded tolerance; -1 if none did.
	FirstViolationT float64
	OK              bool
}

// CheckSameParameter samples a half-edge's p-curve at N points,
// evaluates the edge curve and surface(pcurve(s)) at each, and reports
// the maximum deviation and the first violating sample (spec §4.C,
// §8.1.2). A half-edge with no p-curve trivially passes (there is
// nothing to compare against).
func (m *Model) CheckSameParameter(he HalfEdgeID, ctx numeric.Context) (SameParameterResult, error) {
	h, ok := m.HalfEdge(he)
	if !ok {
		return SameParameterResult{}, fmt.Errorf("brep: half-edge %d not found", he)
	}
	res := SameParameterResult{HalfEdge: he, FirstViolationT: -1, OK: true}
	if h.PCurve == nil {
		return res, nil
	}
	surf, ok := m.Surface(h.PCurve.Surface)
	if !ok {
		return SameParameterResult{}, fmt.Errorf("brep: half-edge %d p-curve references missing surface %d", he, h.PCurve.Surface)
	}

	for i := 0; i < SameParameterSamples; i++ {
		s := float64(i) / float64(SameParameterSamples-1)
		edgePt, ok := m.EvalHalfEdgeCurve(he, s)
		if !ok {
			return SameParameterResult{}, fmt.Errorf("brep: half-edge %d has no edge curve to evaluate", he)
		}
		uv := h.PCurve.Curve2D.Eval(s)
		surfPt := surf.Eval(uv.X, uv.Y)
		dev := edgePt.Distance(surfPt)
		if dev > res.MaxDeviation {
			res.MaxDeviation = dev
		}
		if dev > ctx.Length && res.OK {
			res.OK = false
			res.FirstViolationT = s
		}
	}
	return res, nil
}

// CheckSameParameterAll runs CheckSameParameter over every live
// half-edge carrying a p-curve and returns the results in half-edge id
// order (deterministic, per spec §5 "Ordering guarantees").
func (m *Model) CheckSameParameterAll(ctx numeric.Context) ([]SameParameterResult, error) {
	var out []SameParameterResult
	for i := 1; i <= m.NumHalfEdges(); i++ {
		id := HalfEdgeID(i)
		h, ok := m.HalfEdge(id)
		if !ok || h.Deleted || h.PCurve == nil {
			continue
		}
		r, err := m.CheckSameParameter(id, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// MaxSameParameterDeviation is a convenience used by tests and by the
// invariant-checking property in spec §8.1.2.
func MaxSameParameterDeviation(results []SameParameterResult) float64 {
	max := 0.0
	for _, r := range results {
		if r.MaxDeviation > max {
			max = r.MaxDeviation
		}
	}
	return max
}
