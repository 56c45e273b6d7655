package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// distToPolyline returns the minimum distance from p to any segment of
// the polyline.
func distToPolyline(p Point, pts []Point) float64 {
	min := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		t := 0.0
		if dx != 0 || dy != 0 {
			t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
			t = math.Max(0, math.Min(1, t))
		}
		d := p.Distance(Point{X: a.X + t*dx, Y: a.Y + t*dy})
		if d < min {
			min = d
		}
	}
	return min
}

func cubicAt(c CubicBezier, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*u*c.From.X + 3*u*u*t*c.Control1.X + 3*u*t*t*c.Control2.X + t*t*t*c.To.X,
		Y: u*u*u*c.From.Y + 3*u*u*t*c.Control1.Y + 3*u*t*t*c.Control2.Y + t*t*t*c.To.Y,
	}
}

func TestFlattenLine(t *testing.T) {
	l := Line{From: Point{X: 1, Y: 2}, To: Point{X: 5, Y: 6}}
	pts, exhausted := Flatten(l, 0.1)
	require.False(t, exhausted)
	require.Equal(t, []Point{{X: 5, Y: 6}}, pts)
}

func TestFlattenCubicAccuracy(t *testing.T) {
	c := CubicBezier{
		From:     Point{X: 0, Y: 0},
		Control1: Point{X: 30, Y: 90},
		Control2: Point{X: 70, Y: -40},
		To:       Point{X: 100, Y: 10},
	}
	for _, eps := range []float64{1.0, 0.1, 0.01} {
		pts, exhausted := Flatten(c, eps)
		require.False(t, exhausted)
		require.True(t, pts[len(pts)-1].Equal(c.To, 1e-12))

		poly := append([]Point{c.From}, pts...)
		for i := 0; i <= 1000; i++ {
			p := cubicAt(c, float64(i)/1000)
			d := distToPolyline(p, poly)
			require.LessOrEqualf(t, d, eps, "eps %v: curve point %v deviates %v", eps, p, d)
		}
	}
}

func TestFlattenCubicMonotoneTolerance(t *testing.T) {
	c := CubicBezier{
		From:     Point{X: 0, Y: 0},
		Control1: Point{X: 0, Y: 100},
		Control2: Point{X: 100, Y: 100},
		To:       Point{X: 100, Y: 0},
	}
	coarse, _ := Flatten(c, 1.0)
	fine, _ := Flatten(c, 0.01)
	require.Greater(t, len(fine), len(coarse))
}

func TestFlattenDeterminism(t *testing.T) {
	segs := []Segment{
		Line{From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 10}},
		CubicBezier{
			From:     Point{X: 0, Y: 0},
			Control1: Point{X: 10, Y: 30},
			Control2: Point{X: 20, Y: -30},
			To:       Point{X: 30, Y: 0},
		},
		Arc{From: Point{X: 10, Y: 0}, To: Point{X: -10, Y: 0}, Radius: 10},
	}
	for _, seg := range segs {
		a, _ := Flatten(seg, 0.05)
		b, _ := Flatten(seg, 0.05)
		require.Equal(t, a, b)
	}
}

func TestFlattenSubdivisionDepthCap(t *testing.T) {
	// At the depth limit the chord endpoint is kept and the exhaustion
	// is reported instead of recursing further.
	var out []Point
	exhausted := flattenCubic(
		Point{X: 0, Y: 0}, Point{X: 0, Y: 100}, Point{X: 100, Y: 100}, Point{X: 100, Y: 0},
		1e-9, maxSubdivisionDepth, &out)
	require.True(t, exhausted)
	require.Equal(t, []Point{{X: 100, Y: 0}}, out)
}

func TestFlattenExhaustionDegrades(t *testing.T) {
	// A curve whose extent dwarfs the tolerance cannot reach flatness
	// within the depth budget; the best approximation achieved is kept
	// and the caller is told.
	c := CubicBezier{
		From:     Point{X: 0, Y: 0},
		Control1: Point{X: 0, Y: 1e16},
		Control2: Point{X: 1e16, Y: 1e16},
		To:       Point{X: 1e16, Y: 0},
	}
	pts, exhausted := Flatten(c, 1e-9)
	require.True(t, exhausted)
	require.NotEmpty(t, pts)
	require.Equal(t, c.To, pts[len(pts)-1])
}

func TestFlattenArc(t *testing.T) {
	a := Arc{From: Point{X: 10, Y: 0}, To: Point{X: -10, Y: 0}, Radius: 10}
	eps := 0.01
	pts, exhausted := Flatten(a, eps)
	require.False(t, exhausted)
	require.True(t, pts[len(pts)-1].Equal(a.To, 1e-12))

	// Every vertex lies on the circle; every chord midpoint sags at
	// most eps below it.
	center := Point{X: 0, Y: 0}
	prev := a.From
	for _, p := range pts {
		require.InDelta(t, 10, center.Distance(p), 1e-9)
		mid := lerp(prev, p, 0.5)
		require.LessOrEqual(t, 10-center.Distance(mid), eps)
		prev = p
	}
}

func TestFlattenArcRadiusClamped(t *testing.T) {
	// Radius smaller than half the chord degrades to the semicircle.
	a := Arc{From: Point{X: 0, Y: 0}, To: Point{X: 20, Y: 0}, Radius: 1}
	pts, _ := Flatten(a, 0.01)
	require.True(t, pts[len(pts)-1].Equal(a.To, 1e-12))
	box := EmptyRect()
	for _, p := range pts {
		box = box.Add(p)
	}
	require.InDelta(t, 10, box.Height(), 0.05)
}
