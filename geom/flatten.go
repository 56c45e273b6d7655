package geom

import "math"

// maxSubdivisionDepth bounds the recursive subdivision of curved
// segments. Hitting the bound is a recoverable degradation: the best
// approximation achieved so far is kept and the caller is told.
const maxSubdivisionDepth = 24

// Flatten approximates seg with a polyline whose maximum deviation from
// the true curve is at most eps. The returned points follow seg.Start(),
// which is deliberately not repeated so that consecutive segments of a
// path concatenate without duplicate joints. exhausted reports that the
// subdivision depth limit was reached before the tolerance was met.
//
// The output is deterministic: identical segments and tolerances produce
// bit-for-bit identical point sequences.
func Flatten(seg Segment, eps float64) (points []Point, exhausted bool) {
	switch s := seg.(type) {
	case Line:
		return []Point{s.To}, false
	case CubicBezier:
		var out []Point
		exhausted = flattenCubic(s.From, s.Control1, s.Control2, s.To, eps, 0, &out)
		return out, exhausted
	case Arc:
		return flattenArc(s, eps), false
	default:
		// Unknown segment kinds degrade to their chord.
		return []Point{seg.End()}, false
	}
}

// flattenCubic recursively subdivides a cubic Bezier with de Casteljau
// until both control points lie within eps of the chord. The curve is
// contained in the convex hull of its control points, so the flatness
// test bounds the true deviation.
func flattenCubic(p0, p1, p2, p3 Point, eps float64, depth int, out *[]Point) bool {
	d1 := distToLine(p1, p0, p3)
	d2 := distToLine(p2, p0, p3)
	if d1 <= eps && d2 <= eps {
		*out = append(*out, p3)
		return false
	}
	if depth >= maxSubdivisionDepth {
		*out = append(*out, p3)
		return true
	}

	m01 := lerp(p0, p1, 0.5)
	m12 := lerp(p1, p2, 0.5)
	m23 := lerp(p2, p3, 0.5)
	m012 := lerp(m01, m12, 0.5)
	m123 := lerp(m12, m23, 0.5)
	m0123 := lerp(m012, m123, 0.5)

	a := flattenCubic(p0, m01, m012, m0123, eps, depth+1, out)
	b := flattenCubic(m0123, m123, m23, p3, eps, depth+1, out)
	return a || b
}

// flattenArc samples an arc with a closed-form chord count derived from
// the sagitta bound: a chord spanning angle t deviates from the circle by
// r*(1-cos(t/2)), so the largest admissible span is 2*acos(1-eps/r).
func flattenArc(a Arc, eps float64) []Point {
	if a.Degenerate() {
		return []Point{a.To}
	}
	c, start, sweep := a.center()
	r := math.Hypot(a.From.X-c.X, a.From.Y-c.Y)

	maxSpan := 2 * math.Pi
	if eps < 2*r {
		maxSpan = 2 * math.Acos(1-eps/r)
	}
	n := int(math.Ceil(math.Abs(sweep) / maxSpan))
	if n < 1 {
		n = 1
	}

	pts := make([]Point, 0, n)
	for i := 1; i < n; i++ {
		t := start + sweep*float64(i)/float64(n)
		pts = append(pts, Point{
			X: c.X + r*math.Cos(t),
			Y: c.Y + r*math.Sin(t),
		})
	}
	// Land exactly on the declared end point regardless of rounding.
	return append(pts, a.To)
}

// distToLine returns the perpendicular distance from p to the infinite
// line through a and b, or the distance to a when the line is degenerate.
func distToLine(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	px := a.X + t*dx
	py := a.Y + t*dy
	return math.Hypot(p.X-px, p.Y-py)
}
