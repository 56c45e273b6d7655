package gcode

import (
	"fmt"

	"github.com/vasalvit/svg2gcode/geom"
)

// planner turns selected geometry into an ordered instruction stream.
// Paths are processed in layer order, then original path order; the
// planner never reorders geometry, since path order reflects drawing
// intent.
type planner struct {
	cfg  Config
	prof Profile
	pipe pipeline

	instructions []Instruction
	warnings     []Warning
	bounds       geom.Rect

	// cur tracks the tool position for the duration estimate. The
	// machine is assumed parked at the origin before the job.
	cur     geom.Point
	minutes float64
}

func newPlanner(cfg Config, prof Profile, pipe pipeline) *planner {
	return &planner{
		cfg:    cfg,
		prof:   prof,
		pipe:   pipe,
		bounds: geom.EmptyRect(),
	}
}

func (pl *planner) warn(w Warning) {
	pl.warnings = append(pl.warnings, w)
}

func (pl *planner) travel(p geom.Point) {
	pl.instructions = append(pl.instructions, travelTo(p, pl.prof.TravelSpeed))
	pl.minutes += pl.cur.Distance(p) / pl.prof.TravelSpeed
	pl.cur = p
	pl.bounds = pl.bounds.Add(p)
}

func (pl *planner) cut(p geom.Point, depth float64) {
	pl.instructions = append(pl.instructions, cutTo(p, pl.prof.CuttingSpeed, depth))
	pl.minutes += pl.cur.Distance(p) / pl.prof.CuttingSpeed
	pl.cur = p
	pl.bounds = pl.bounds.Add(p)
}

func (pl *planner) engage() {
	pl.instructions = append(pl.instructions, toolOn(pl.prof.PowerCommand))
	if pl.prof.DwellTime > 0 {
		pl.instructions = append(pl.instructions, dwell(pl.prof.DwellTime))
		pl.minutes += pl.prof.DwellTime / 60000
	}
}

func (pl *planner) disengage() {
	pl.instructions = append(pl.instructions, toolOff(pl.prof.offCommand()))
}

// layer plans every path of a layer.
func (pl *planner) layer(l geom.Layer) {
	for i, p := range l.Paths {
		pl.path(l.Name, i, p)
	}
}

// path plans one path: a travel to its start, then Passes traversals of
// the flattened polyline with cumulative depth metadata, bracketed by
// exactly one tool engagement window (or one per pass when the profile
// retriggers).
func (pl *planner) path(layerName string, index int, p geom.Path) {
	if len(p) == 0 {
		pl.warn(warnf(GeometryWarning, "%s: path %d is empty, skipped",
			layerDesc(layerName), index))
		return
	}
	for _, seg := range p {
		if seg.Degenerate() {
			pl.warn(warnf(GeometryWarning, "%s: path %d contains a zero-length segment, skipped",
				layerDesc(layerName), index))
		}
	}

	flat, exhausted := p.Flatten(pl.cfg.Tolerance)
	if exhausted {
		pl.warn(warnf(GeometryWarning,
			"%s: path %d exceeded the curve subdivision depth, emitting best-effort approximation",
			layerDesc(layerName), index))
	}
	if len(flat) < 2 {
		pl.warn(warnf(GeometryWarning, "%s: path %d has no usable extent, skipped",
			layerDesc(layerName), index))
		return
	}

	// Transform the whole polyline up front; the passes reuse it.
	pts := make([]geom.Point, len(flat))
	for i, fp := range flat {
		pts[i] = pl.pipe.Apply(fp)
	}
	start := pts[0]

	// Distinct paths are never implicitly connected: each one begins
	// with a travel move to its start.
	pl.travel(start)

	for pass := 0; pass < pl.prof.Passes; pass++ {
		if pass > 0 {
			// The tool is at the path end; do not assume it is
			// positioned for the next pass.
			pl.travel(start)
		}
		if pl.prof.Passes > 1 {
			pl.instructions = append(pl.instructions, comment(fmt.Sprintf(
				"pass %d/%d depth %g", pass+1, pl.prof.Passes, pl.prof.PassDepth*float64(pass))))
		}
		if pass == 0 || pl.prof.RetriggerPerPass {
			pl.engage()
		}
		depth := pl.prof.PassDepth * float64(pass)
		for _, p := range pts[1:] {
			pl.cut(p, depth)
		}
		if pl.prof.RetriggerPerPass && pass < pl.prof.Passes-1 {
			pl.disengage()
		}
	}
	pl.disengage()
}

func layerDesc(name string) string {
	if name == "" {
		return "default layer"
	}
	return fmt.Sprintf("layer %q", name)
}
