package geom

import "fmt"

// continuityEps is the maximum gap tolerated between the end of one
// segment and the start of the next.
const continuityEps = 1e-6

// Path is an ordered, non-empty sequence of segments whose consecutive
// endpoints are continuous. Paths are immutable snapshots; the compiler
// never mutates them.
type Path []Segment

// Start returns the first point of the path.
func (p Path) Start() Point { return p[0].Start() }

// End returns the last point of the path.
func (p Path) End() Point { return p[len(p)-1].End() }

// Closed reports whether the path ends where it started.
func (p Path) Closed() bool {
	return len(p) > 0 && p.Start().Equal(p.End(), continuityEps)
}

// Validate checks that the path is non-empty and continuous.
func (p Path) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("path has no segments")
	}
	for i := 1; i < len(p); i++ {
		if !p[i-1].End().Equal(p[i].Start(), continuityEps) {
			return fmt.Errorf("path is discontinuous between segment %d and %d", i-1, i)
		}
	}
	return nil
}

// Flatten approximates the whole path with a single polyline within eps,
// starting at p.Start(). Degenerate segments contribute no points. The
// returned flag reports that at least one curved segment hit the
// subdivision depth limit.
func (p Path) Flatten(eps float64) (points []Point, exhausted bool) {
	points = []Point{p.Start()}
	for _, seg := range p {
		if seg.Degenerate() {
			continue
		}
		pts, ex := Flatten(seg, eps)
		exhausted = exhausted || ex
		points = append(points, pts...)
	}
	return points, exhausted
}

// Bounds returns the bounding box of the path flattened at eps.
func (p Path) Bounds(eps float64) Rect {
	r := EmptyRect()
	pts, _ := p.Flatten(eps)
	for _, pt := range pts {
		r = r.Add(pt)
	}
	return r
}

// Layer is a named, ordered set of paths. The name may be empty for
// geometry that belongs to no declared layer.
type Layer struct {
	Name  string
	Paths []Path
}

// LayersBounds returns the bounding box of all geometry across layers,
// flattened at eps. This is the document extent used when the machine bed
// is derived from the drawing rather than configured.
func LayersBounds(layers []Layer, eps float64) Rect {
	r := EmptyRect()
	for _, l := range layers {
		for _, p := range l.Paths {
			r = r.Union(p.Bounds(eps))
		}
	}
	return r
}
