package svg

import (
	"fmt"
	"strconv"

	mt "github.com/rustyoz/Mtransform"
	gl "github.com/rustyoz/genericlexer"

	"github.com/vasalvit/svg2gcode/geom"
)

// Path is an SVG XML path element.
type Path struct {
	ID              string `xml:"id,attr"`
	D               string `xml:"d,attr"`
	TransformString string `xml:"transform,attr"`
}

// Tuple is an x,y coordinate pair as written in path data.
type Tuple [2]float64

// pathDescriptionParser walks the lexed path description and builds
// typed geometry segments. Coordinates are tracked in user space; the
// accumulated transform is applied when a segment is materialized.
type pathDescriptionParser struct {
	lex       gl.Lexer
	x, y      float64
	startX    float64
	startY    float64
	transform mt.Transform

	segments []geom.Segment
	paths    []geom.Path

	// lastControl is the previous cubic's second control point, used to
	// reflect smooth (S/s) continuations. Nil after any other command.
	lastControl *Tuple
}

func newPathDParse(t mt.Transform) *pathDescriptionParser {
	return &pathDescriptionParser{transform: t}
}

// paths implements element: it interprets the path description and
// transform attributes into drawing-space geometry. Each moveto opens a
// new path; closepath closes the current one back to its start.
func (p *Path) paths(parent mt.Transform) ([]geom.Path, error) {
	t, err := composeTransform(parent, p.TransformString)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", p.ID, err)
	}
	pdp := newPathDParse(t)
	l, _ := gl.Lex(fmt.Sprint(p.ID), p.D)
	pdp.lex = *l

	for {
		i := pdp.lex.NextItem()
		switch {
		case i.Type == gl.ItemError:
			return nil, fmt.Errorf("path %q: lexing error at %q", p.ID, i.Value)
		case i.Type == gl.ItemEOS:
			pdp.flush()
			return pdp.paths, nil
		case i.Type == gl.ItemLetter:
			if err := pdp.parseCommand(i); err != nil {
				return nil, fmt.Errorf("path %q: %w", p.ID, err)
			}
		}
	}
}

func (pdp *pathDescriptionParser) parseCommand(i gl.Item) error {
	var err error
	switch i.Value {
	case "M":
		err = pdp.parseMoveTo(false)
	case "m":
		err = pdp.parseMoveTo(true)
	case "L":
		err = pdp.parseLineTo(false)
	case "l":
		err = pdp.parseLineTo(true)
	case "H":
		err = pdp.parseHLineTo(false)
	case "h":
		err = pdp.parseHLineTo(true)
	case "V":
		err = pdp.parseVLineTo(false)
	case "v":
		err = pdp.parseVLineTo(true)
	case "C":
		err = pdp.parseCurveTo(false)
	case "c":
		err = pdp.parseCurveTo(true)
	case "S":
		err = pdp.parseSmoothCurveTo(false)
	case "s":
		err = pdp.parseSmoothCurveTo(true)
	case "Q":
		err = pdp.parseQuadTo(false)
	case "q":
		err = pdp.parseQuadTo(true)
	case "A":
		err = pdp.parseArcTo(false)
	case "a":
		err = pdp.parseArcTo(true)
	case "z", "Z":
		err = pdp.parseClose()
	default:
		err = fmt.Errorf("unsupported path command %q", i.Value)
	}
	return err
}

// point maps the current user-space coordinates through the transform.
func (pdp *pathDescriptionParser) point(x, y float64) geom.Point {
	tx, ty := applyTo(pdp.transform, x, y)
	return geom.Point{X: tx, Y: ty}
}

// flush finishes the current subpath, if any.
func (pdp *pathDescriptionParser) flush() {
	if len(pdp.segments) > 0 {
		pdp.paths = append(pdp.paths, geom.Path(pdp.segments))
	}
	pdp.segments = nil
}

func (pdp *pathDescriptionParser) lineSegment(toX, toY float64) {
	pdp.segments = append(pdp.segments, geom.Line{
		From: pdp.point(pdp.x, pdp.y),
		To:   pdp.point(toX, toY),
	})
	pdp.x, pdp.y = toX, toY
}

func (pdp *pathDescriptionParser) cubicSegment(c1, c2, to Tuple) {
	pdp.segments = append(pdp.segments, geom.CubicBezier{
		From:     pdp.point(pdp.x, pdp.y),
		Control1: pdp.point(c1[0], c1[1]),
		Control2: pdp.point(c2[0], c2[1]),
		To:       pdp.point(to[0], to[1]),
	})
	pdp.x, pdp.y = to[0], to[1]
	ctrl := c2
	pdp.lastControl = &ctrl
}

// tuples reads consecutive coordinate pairs until the next command
// letter.
func (pdp *pathDescriptionParser) tuples(command string) ([]Tuple, error) {
	var tuples []Tuple
	pdp.lex.ConsumeWhiteSpace()
	for pdp.lex.PeekItem().Type == gl.ItemNumber {
		t, err := parseTuple(&pdp.lex)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", command, err)
		}
		tuples = append(tuples, t)
		pdp.lex.ConsumeWhiteSpace()
		pdp.lex.ConsumeComma()
		pdp.lex.ConsumeWhiteSpace()
	}
	return tuples, nil
}

// numbers reads consecutive single coordinates until the next command
// letter.
func (pdp *pathDescriptionParser) numbers(command string) ([]float64, error) {
	var ns []float64
	pdp.lex.ConsumeWhiteSpace()
	for pdp.lex.PeekItem().Type == gl.ItemNumber {
		n, err := parseNumber(pdp.lex.NextItem())
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", command, err)
		}
		ns = append(ns, n)
		pdp.lex.ConsumeWhiteSpace()
		pdp.lex.ConsumeComma()
		pdp.lex.ConsumeWhiteSpace()
	}
	return ns, nil
}

func (pdp *pathDescriptionParser) parseMoveTo(rel bool) error {
	tuples, err := pdp.tuples("MoveTo")
	if err != nil {
		return err
	}
	if len(tuples) == 0 {
		return fmt.Errorf("error parsing MoveTo: expected at least one tuple")
	}

	pdp.flush()
	pdp.lastControl = nil
	if rel {
		pdp.x += tuples[0][0]
		pdp.y += tuples[0][1]
	} else {
		pdp.x = tuples[0][0]
		pdp.y = tuples[0][1]
	}
	pdp.startX, pdp.startY = pdp.x, pdp.y

	// Subsequent pairs after a moveto are implicit linetos.
	for _, t := range tuples[1:] {
		if rel {
			pdp.lineSegment(pdp.x+t[0], pdp.y+t[1])
		} else {
			pdp.lineSegment(t[0], t[1])
		}
	}
	return nil
}

func (pdp *pathDescriptionParser) parseLineTo(rel bool) error {
	tuples, err := pdp.tuples("LineTo")
	if err != nil {
		return err
	}
	pdp.lastControl = nil
	for _, t := range tuples {
		if rel {
			pdp.lineSegment(pdp.x+t[0], pdp.y+t[1])
		} else {
			pdp.lineSegment(t[0], t[1])
		}
	}
	return nil
}

func (pdp *pathDescriptionParser) parseHLineTo(rel bool) error {
	ns, err := pdp.numbers("HLineTo")
	if err != nil {
		return err
	}
	pdp.lastControl = nil
	for _, n := range ns {
		if rel {
			pdp.lineSegment(pdp.x+n, pdp.y)
		} else {
			pdp.lineSegment(n, pdp.y)
		}
	}
	return nil
}

func (pdp *pathDescriptionParser) parseVLineTo(rel bool) error {
	ns, err := pdp.numbers("VLineTo")
	if err != nil {
		return err
	}
	pdp.lastControl = nil
	for _, n := range ns {
		if rel {
			pdp.lineSegment(pdp.x, pdp.y+n)
		} else {
			pdp.lineSegment(pdp.x, n)
		}
	}
	return nil
}

func (pdp *pathDescriptionParser) parseCurveTo(rel bool) error {
	tuples, err := pdp.tuples("CurveTo")
	if err != nil {
		return err
	}
	if len(tuples)%3 != 0 || len(tuples) == 0 {
		return fmt.Errorf("error parsing CurveTo: expected groups of 3 tuples, got %d", len(tuples))
	}
	for j := 0; j < len(tuples)/3; j++ {
		c1, c2, to := tuples[j*3], tuples[j*3+1], tuples[j*3+2]
		if rel {
			c1 = Tuple{pdp.x + c1[0], pdp.y + c1[1]}
			c2 = Tuple{pdp.x + c2[0], pdp.y + c2[1]}
			to = Tuple{pdp.x + to[0], pdp.y + to[1]}
		}
		pdp.cubicSegment(c1, c2, to)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseSmoothCurveTo(rel bool) error {
	tuples, err := pdp.tuples("SmoothCurveTo")
	if err != nil {
		return err
	}
	if len(tuples)%2 != 0 || len(tuples) == 0 {
		return fmt.Errorf("error parsing SmoothCurveTo: expected groups of 2 tuples, got %d", len(tuples))
	}
	for j := 0; j < len(tuples)/2; j++ {
		c2, to := tuples[j*2], tuples[j*2+1]
		if rel {
			c2 = Tuple{pdp.x + c2[0], pdp.y + c2[1]}
			to = Tuple{pdp.x + to[0], pdp.y + to[1]}
		}
		// The first control point reflects the previous cubic's second
		// control point about the current point.
		c1 := Tuple{pdp.x, pdp.y}
		if pdp.lastControl != nil {
			c1 = Tuple{2*pdp.x - pdp.lastControl[0], 2*pdp.y - pdp.lastControl[1]}
		}
		pdp.cubicSegment(c1, c2, to)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseQuadTo(rel bool) error {
	tuples, err := pdp.tuples("QuadTo")
	if err != nil {
		return err
	}
	if len(tuples)%2 != 0 || len(tuples) == 0 {
		return fmt.Errorf("error parsing QuadTo: expected groups of 2 tuples, got %d", len(tuples))
	}
	for j := 0; j < len(tuples)/2; j++ {
		q, to := tuples[j*2], tuples[j*2+1]
		if rel {
			q = Tuple{pdp.x + q[0], pdp.y + q[1]}
			to = Tuple{pdp.x + to[0], pdp.y + to[1]}
		}
		// Exact degree elevation of the quadratic to a cubic.
		c1 := Tuple{pdp.x + 2*(q[0]-pdp.x)/3, pdp.y + 2*(q[1]-pdp.y)/3}
		c2 := Tuple{to[0] + 2*(q[0]-to[0])/3, to[1] + 2*(q[1]-to[1])/3}
		pdp.cubicSegment(c1, c2, to)
		pdp.lastControl = nil
	}
	return nil
}

func (pdp *pathDescriptionParser) parseArcTo(rel bool) error {
	ns, err := pdp.numbers("ArcTo")
	if err != nil {
		return err
	}
	if len(ns)%7 != 0 || len(ns) == 0 {
		return fmt.Errorf("error parsing ArcTo: expected groups of 7 numbers, got %d", len(ns))
	}
	pdp.lastControl = nil
	for j := 0; j < len(ns)/7; j++ {
		a := ns[j*7 : (j+1)*7]
		toX, toY := a[5], a[6]
		if rel {
			toX += pdp.x
			toY += pdp.y
		}
		segs := arcSegments(
			pdp.x, pdp.y, toX, toY,
			a[0], a[1], a[2],
			a[3] != 0, a[4] != 0,
		)
		for _, c := range segs {
			pdp.cubicSegment(c[0], c[1], c[2])
		}
		pdp.lastControl = nil
		pdp.x, pdp.y = toX, toY
	}
	return nil
}

func (pdp *pathDescriptionParser) parseClose() error {
	pdp.lex.ConsumeWhiteSpace()
	if len(pdp.segments) > 0 && (pdp.x != pdp.startX || pdp.y != pdp.startY) {
		pdp.lineSegment(pdp.startX, pdp.startY)
	}
	pdp.flush()
	pdp.lastControl = nil
	pdp.x, pdp.y = pdp.startX, pdp.startY
	return nil
}

func parseNumber(i gl.Item) (float64, error) {
	if i.Type != gl.ItemNumber {
		return 0, fmt.Errorf("expected number, got %q", i.Value)
	}
	n, err := strconv.ParseFloat(i.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing number %q: %w", i.Value, err)
	}
	return n, nil
}

func parseTuple(l *gl.Lexer) (Tuple, error) {
	t := Tuple{}
	l.ConsumeWhiteSpace()

	n, err := parseNumber(l.NextItem())
	if err != nil {
		return t, fmt.Errorf("expected tuple: %w", err)
	}
	t[0] = n

	l.ConsumeWhiteSpace()
	l.ConsumeComma()
	l.ConsumeWhiteSpace()

	n, err = parseNumber(l.NextItem())
	if err != nil {
		return t, fmt.Errorf("expected tuple: %w", err)
	}
	t[1] = n
	return t, nil
}
