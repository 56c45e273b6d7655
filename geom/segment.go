package geom

import "math"

// degenerateEps is the length below which a segment is considered
// zero-length and skipped by the planner.
const degenerateEps = 1e-9

// Segment is a typed curve primitive of a Path.
type Segment interface {
	// Start returns the first point of the segment.
	Start() Point
	// End returns the last point of the segment.
	End() Point
	// Degenerate reports whether the segment has no usable extent.
	Degenerate() bool
}

// Line is a straight segment between two points.
type Line struct {
	From, To Point
}

// Start implements Segment.
func (l Line) Start() Point { return l.From }

// End implements Segment.
func (l Line) End() Point { return l.To }

// Degenerate implements Segment.
func (l Line) Degenerate() bool {
	return l.From.Equal(l.To, degenerateEps)
}

// CubicBezier is a cubic Bezier curve with two control points.
type CubicBezier struct {
	From, Control1, Control2, To Point
}

// Start implements Segment.
func (c CubicBezier) Start() Point { return c.From }

// End implements Segment.
func (c CubicBezier) End() Point { return c.To }

// Degenerate implements Segment.
func (c CubicBezier) Degenerate() bool {
	return c.From.Equal(c.To, degenerateEps) &&
		c.From.Equal(c.Control1, degenerateEps) &&
		c.From.Equal(c.Control2, degenerateEps)
}

// Arc is a circular arc between two points. The arc is the minor arc on
// the side of the chord selected by the sweep direction; a radius smaller
// than half the chord is clamped up to the semicircle radius.
type Arc struct {
	From, To  Point
	Radius    float64
	Clockwise bool
}

// Start implements Segment.
func (a Arc) Start() Point { return a.From }

// End implements Segment.
func (a Arc) End() Point { return a.To }

// Degenerate implements Segment.
func (a Arc) Degenerate() bool {
	return a.From.Equal(a.To, degenerateEps) || a.Radius <= degenerateEps
}

// center returns the arc center and the start/sweep angles in radians.
// The sweep is positive for counterclockwise arcs and negative for
// clockwise ones.
func (a Arc) center() (c Point, start, sweep float64) {
	dx := a.To.X - a.From.X
	dy := a.To.Y - a.From.Y
	chord := math.Hypot(dx, dy)

	r := a.Radius
	if r < chord/2 {
		r = chord / 2
	}

	// Unit normal to the chord; the center sits on the side that keeps
	// the swept arc minor.
	nx, ny := -dy/chord, dx/chord
	if a.Clockwise {
		nx, ny = -nx, -ny
	}
	h := math.Sqrt(math.Max(0, r*r-(chord/2)*(chord/2)))

	c = Point{
		X: (a.From.X+a.To.X)/2 + nx*h,
		Y: (a.From.Y+a.To.Y)/2 + ny*h,
	}

	start = math.Atan2(a.From.Y-c.Y, a.From.X-c.X)
	end := math.Atan2(a.To.Y-c.Y, a.To.X-c.X)

	sweep = end - start
	if a.Clockwise {
		for sweep > 0 {
			sweep -= 2 * math.Pi
		}
	} else {
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
	}
	return c, start, sweep
}
