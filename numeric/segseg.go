package numeric

// SegHitKind classifies a 2D segment-segment intersection result.
type SegHitKind int

const (
	// SegHitNone: the segments do not intersect.
	SegHitNone SegHitKind = iota
	// SegHitPoint: the segments cross or touch at a single point.
	SegHitPoint
	// SegHitOverlap: the segments are collinear and overlap on a
	// nonzero interval.
	SegHitOverlap
)

// SegHit is the result of SegSegHit. Parameterization is always on
// segment 1 (p1->p2); T1Start/T1End bound the overlap and are set only
// for SegHitOverlap. T1 and T2 (the hit's parameter on segment 2) are
// only meaningful for a point hit.
type SegHit struct {
	Kind            SegHitKind
	Point           Vec2
	T1, T2          float64
	T1Start, T1End  float64
}

// SegSegHit classifies the intersection of segments p1->p2 and q1->q2.
// Endpoints are included. Overlaps require a nonzero-length collinear
// shared interval; touching collinear segments at a single shared
// endpoint report SegHitPoint, not SegHitOverlap.
func SegSegHit(p1, p2, q1, q2 Vec2) SegHit {
	d1 := p2.Sub(p1)
	d2 := q2.Sub(q1)
	denom := d1.Cross(d2)

	if denom == 0 {
		// Parallel. Collinear iff q1 lies on the line through p1,p2.
		if Orient2D(p1, p2, q1) != 0 {
			return SegHit{Kind: SegHitNone}
		}
		return collinearOverlap(p1, p2, q1, q2)
	}

	diff := q1.Sub(p1)
	t1 := diff.Cross(d2) / denom
	t2 := diff.Cross(d1) / denom

	const eps = 1e-12
	if t1 < -eps || t1 > 1+eps || t2 < -eps || t2 > 1+eps {
		return SegHit{Kind: SegHitNone}
	}
	t1 = clamp01(t1)
	t2 = clamp01(t2)
	return SegHit{
		Kind:  SegHitPoint,
		Point: p1.Lerp(p2, t1),
		T1:    t1,
		T2:    t2,
	}
}

// collinearOverlap computes the overlap of two collinear segments by
// projecting both onto the direction of segment 1 and intersecting the
// resulting 1D intervals.
func collinearOverlap(p1, p2, q1, q2 Vec2) SegHit {
	d1 := p2.Sub(p1)
	len2 := d1.LengthSq()
	if len2 == 0 {
		// Degenerate segment 1: treat as a point test.
		if q1.Equal(p1, DefaultContext()) {
			return SegHit{Kind: SegHitPoint, Point: p1, T1: 0, T2: 0}
		}
		if q2.Equal(p1, DefaultContext()) {
			return SegHit{Kind: SegHitPoint, Point: p1, T1: 0, T2: 1}
		}
		return SegHit{Kind: SegHitNone}
	}

	project := func(p Vec2) float64 { return p.Sub(p1).Dot(d1) / len2 }
	tq1, tq2 := project(q1), project(q2)
	if tq1 > tq2 {
		tq1, tq2 = tq2, tq1
	}

	lo := math64max(0, tq1)
	hi := math64min(1, tq2)
	if lo > hi {
		return SegHit{Kind: SegHitNone}
	}
	if lo == hi {
		pt := p1.Lerp(p2, lo)
		t2 := 0.0
		if d2 := q2.Sub(q1); d2.LengthSq() > 0 {
			t2 = pt.Sub(q1).Dot(d2) / d2.LengthSq()
		}
		return SegHit{Kind: SegHitPoint, Point: pt, T1: lo, T2: t2}
	}
	return SegHit{
		Kind:    SegHitOverlap,
		T1Start: lo,
		T1End:   hi,
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func math64max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func math64min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
