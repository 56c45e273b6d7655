package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	mt "github.com/rustyoz/Mtransform"

	"github.com/vasalvit/svg2gcode/geom"
)

// Rect is an SVG rect element. Rounded corners are ignored; the outline
// is the four straight edges.
type Rect struct {
	ID              string `xml:"id,attr"`
	TransformString string `xml:"transform,attr"`
	X               string `xml:"x,attr"`
	Y               string `xml:"y,attr"`
	Width           string `xml:"width,attr"`
	Height          string `xml:"height,attr"`
}

func (r *Rect) paths(parent mt.Transform) ([]geom.Path, error) {
	t, err := composeTransform(parent, r.TransformString)
	if err != nil {
		return nil, fmt.Errorf("rect %q: %w", r.ID, err)
	}
	x, err := parseShapeNumber(r.X, 0)
	if err != nil {
		return nil, fmt.Errorf("rect %q: %w", r.ID, err)
	}
	y, err := parseShapeNumber(r.Y, 0)
	if err != nil {
		return nil, fmt.Errorf("rect %q: %w", r.ID, err)
	}
	w, err := parseShapeNumber(r.Width, 0)
	if err != nil {
		return nil, fmt.Errorf("rect %q: %w", r.ID, err)
	}
	h, err := parseShapeNumber(r.Height, 0)
	if err != nil {
		return nil, fmt.Errorf("rect %q: %w", r.ID, err)
	}
	if w <= 0 || h <= 0 {
		return nil, nil
	}

	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y}}
	return []geom.Path{polylinePath(t, corners)}, nil
}

// Circle is an SVG circle element. The outline is represented as two
// semicircular arc segments.
type Circle struct {
	ID              string `xml:"id,attr"`
	TransformString string `xml:"transform,attr"`
	Cx              string `xml:"cx,attr"`
	Cy              string `xml:"cy,attr"`
	Radius          string `xml:"r,attr"`
}

func (c *Circle) paths(parent mt.Transform) ([]geom.Path, error) {
	t, err := composeTransform(parent, c.TransformString)
	if err != nil {
		return nil, fmt.Errorf("circle %q: %w", c.ID, err)
	}
	cx, err := parseShapeNumber(c.Cx, 0)
	if err != nil {
		return nil, fmt.Errorf("circle %q: %w", c.ID, err)
	}
	cy, err := parseShapeNumber(c.Cy, 0)
	if err != nil {
		return nil, fmt.Errorf("circle %q: %w", c.ID, err)
	}
	r, err := parseShapeNumber(c.Radius, 0)
	if err != nil {
		return nil, fmt.Errorf("circle %q: %w", c.ID, err)
	}
	if r <= 0 {
		return nil, nil
	}
	return []geom.Path{circlePath(t, cx, cy, r, r)}, nil
}

// Ellipse is an SVG ellipse element, flattened through the arc-to-cubic
// conversion.
type Ellipse struct {
	ID              string `xml:"id,attr"`
	TransformString string `xml:"transform,attr"`
	Cx              string `xml:"cx,attr"`
	Cy              string `xml:"cy,attr"`
	Rx              string `xml:"rx,attr"`
	Ry              string `xml:"ry,attr"`
}

func (e *Ellipse) paths(parent mt.Transform) ([]geom.Path, error) {
	t, err := composeTransform(parent, e.TransformString)
	if err != nil {
		return nil, fmt.Errorf("ellipse %q: %w", e.ID, err)
	}
	cx, err := parseShapeNumber(e.Cx, 0)
	if err != nil {
		return nil, fmt.Errorf("ellipse %q: %w", e.ID, err)
	}
	cy, err := parseShapeNumber(e.Cy, 0)
	if err != nil {
		return nil, fmt.Errorf("ellipse %q: %w", e.ID, err)
	}
	rx, err := parseShapeNumber(e.Rx, 0)
	if err != nil {
		return nil, fmt.Errorf("ellipse %q: %w", e.ID, err)
	}
	ry, err := parseShapeNumber(e.Ry, 0)
	if err != nil {
		return nil, fmt.Errorf("ellipse %q: %w", e.ID, err)
	}
	if rx <= 0 || ry <= 0 {
		return nil, nil
	}
	return []geom.Path{circlePath(t, cx, cy, rx, ry)}, nil
}

// Line is an SVG line element.
type Line struct {
	ID              string `xml:"id,attr"`
	TransformString string `xml:"transform,attr"`
	X1              string `xml:"x1,attr"`
	Y1              string `xml:"y1,attr"`
	X2              string `xml:"x2,attr"`
	Y2              string `xml:"y2,attr"`
}

func (l *Line) paths(parent mt.Transform) ([]geom.Path, error) {
	t, err := composeTransform(parent, l.TransformString)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", l.ID, err)
	}
	x1, err := parseShapeNumber(l.X1, 0)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", l.ID, err)
	}
	y1, err := parseShapeNumber(l.Y1, 0)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", l.ID, err)
	}
	x2, err := parseShapeNumber(l.X2, 0)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", l.ID, err)
	}
	y2, err := parseShapeNumber(l.Y2, 0)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", l.ID, err)
	}
	return []geom.Path{polylinePath(t, [][2]float64{{x1, y1}, {x2, y2}})}, nil
}

// PolyLine is an SVG polyline element: connected line segments that
// typically form an open shape.
type PolyLine struct {
	ID              string `xml:"id,attr"`
	TransformString string `xml:"transform,attr"`
	Points          string `xml:"points,attr"`
}

func (p *PolyLine) paths(parent mt.Transform) ([]geom.Path, error) {
	return pointListPaths(parent, p.TransformString, p.Points, false, "polyline", p.ID)
}

// Polygon is an SVG polygon element: a closed polyline.
type Polygon struct {
	ID              string `xml:"id,attr"`
	TransformString string `xml:"transform,attr"`
	Points          string `xml:"points,attr"`
}

func (p *Polygon) paths(parent mt.Transform) ([]geom.Path, error) {
	return pointListPaths(parent, p.TransformString, p.Points, true, "polygon", p.ID)
}

func pointListPaths(parent mt.Transform, transformAttr, pointsAttr string, closed bool, kind, id string) ([]geom.Path, error) {
	t, err := composeTransform(parent, transformAttr)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", kind, id, err)
	}
	pts, err := parsePointsList(pointsAttr)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", kind, id, err)
	}
	if len(pts) < 2 {
		return nil, nil
	}
	if closed {
		pts = append(pts, pts[0])
	}
	return []geom.Path{polylinePath(t, pts)}, nil
}

// polylinePath builds a line-segment path through the given user-space
// points under a transform.
func polylinePath(t mt.Transform, pts [][2]float64) geom.Path {
	segs := make([]geom.Segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		x0, y0 := applyTo(t, pts[i-1][0], pts[i-1][1])
		x1, y1 := applyTo(t, pts[i][0], pts[i][1])
		segs = append(segs, geom.Line{
			From: geom.Point{X: x0, Y: y0},
			To:   geom.Point{X: x1, Y: y1},
		})
	}
	return geom.Path(segs)
}

// circlePath builds the closed outline of a circle or ellipse. Uniform
// circles become two arc segments; ellipses and non-uniform transforms
// fall back to cubic approximation.
func circlePath(t mt.Transform, cx, cy, rx, ry float64) geom.Path {
	if rx == ry && uniformScale(t) {
		p0x, p0y := applyTo(t, cx+rx, cy)
		p1x, p1y := applyTo(t, cx-rx, cy)
		r := rx * scaleOf(t)
		return geom.Path{
			geom.Arc{From: geom.Point{X: p0x, Y: p0y}, To: geom.Point{X: p1x, Y: p1y}, Radius: r},
			geom.Arc{From: geom.Point{X: p1x, Y: p1y}, To: geom.Point{X: p0x, Y: p0y}, Radius: r},
		}
	}

	segs := arcSegments(cx+rx, cy, cx-rx, cy, rx, ry, 0, false, true)
	segs = append(segs, arcSegments(cx-rx, cy, cx+rx, cy, rx, ry, 0, false, true)...)
	var path []geom.Segment
	x, y := cx+rx, cy
	for _, s := range segs {
		fx, fy := applyTo(t, x, y)
		c1x, c1y := applyTo(t, s[0][0], s[0][1])
		c2x, c2y := applyTo(t, s[1][0], s[1][1])
		tx, ty := applyTo(t, s[2][0], s[2][1])
		path = append(path, geom.CubicBezier{
			From:     geom.Point{X: fx, Y: fy},
			Control1: geom.Point{X: c1x, Y: c1y},
			Control2: geom.Point{X: c2x, Y: c2y},
			To:       geom.Point{X: tx, Y: ty},
		})
		x, y = s[2][0], s[2][1]
	}
	return geom.Path(path)
}

// uniformScale reports whether a transform is a uniform scale plus
// translation, which preserves circles.
func uniformScale(t mt.Transform) bool {
	return t[0][1] == 0 && t[1][0] == 0 && math.Abs(t[0][0]) == math.Abs(t[1][1])
}

func scaleOf(t mt.Transform) float64 {
	return math.Abs(t[0][0])
}

func parseShapeNumber(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad coordinate %q", s)
	}
	return v, nil
}

// parsePointsList parses a polyline/polygon points attribute.
func parsePointsList(s string) ([][2]float64, error) {
	s = strings.ReplaceAll(s, ",", " ")
	fields := strings.Fields(s)
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in points list")
	}
	pts := make([][2]float64, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err1 := strconv.ParseFloat(fields[i], 64)
		y, err2 := strconv.ParseFloat(fields[i+1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid coordinate pair %q,%q", fields[i], fields[i+1])
		}
		pts = append(pts, [2]float64{x, y})
	}
	return pts, nil
}
