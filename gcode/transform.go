package gcode

import (
	mt "github.com/rustyoz/Mtransform"

	"github.com/vasalvit/svg2gcode/geom"
)

// pipeline maps drawing-space points to machine-space and back. It is a
// pure function of the configuration and document bounds; both matrices
// are fixed at construction.
//
// The forward order is: unit normalization, scale, optional Y inversion,
// origin placement, offset translation.
type pipeline struct {
	fwd mt.Transform
	inv mt.Transform
}

func scaleMatrix(sx, sy float64) mt.Transform {
	m := mt.Identity()
	m[0][0] = sx
	m[1][1] = sy
	return m
}

func translateMatrix(tx, ty float64) mt.Transform {
	m := mt.Identity()
	m[0][2] = tx
	m[1][2] = ty
	return m
}

// mirrorYMatrix maps y to height-y, the bottom-left/top-left conversion.
func mirrorYMatrix(height float64) mt.Transform {
	m := mt.Identity()
	m[1][1] = -1
	m[1][2] = height
	return m
}

// newPipeline builds the transform for cfg. docBounds is the extent of
// the full input geometry in drawing space; it supplies the bed
// dimensions when UseDocumentSize is set.
func newPipeline(cfg Config, docBounds geom.Rect) pipeline {
	u := cfg.unitScale()

	bedW, bedH := cfg.BedWidth, cfg.BedHeight
	if cfg.UseDocumentSize {
		// The bed tracks the scaled document extent.
		bedW = docBounds.Width() * u * abs(cfg.ScaleX)
		bedH = docBounds.Height() * u * abs(cfg.ScaleY)
	}

	steps := []mt.Transform{
		scaleMatrix(u, u),
		scaleMatrix(cfg.ScaleX, cfg.ScaleY),
	}
	if cfg.InvertY {
		steps = append(steps, scaleMatrix(1, -1))
	}
	switch cfg.Origin {
	case OriginCenter:
		steps = append(steps, translateMatrix(-bedW/2, -bedH/2))
	case OriginTopLeft:
		steps = append(steps, mirrorYMatrix(bedH))
	}
	steps = append(steps, translateMatrix(cfg.OffsetX, cfg.OffsetY))

	// Compose so that steps[0] applies first, and build the algebraic
	// inverse by composing inverted steps in reverse order.
	fwd := mt.Identity()
	inv := mt.Identity()
	for _, s := range steps {
		fwd = mt.MultiplyTransforms(s, fwd)
	}
	for i := len(steps) - 1; i >= 0; i-- {
		inv = mt.MultiplyTransforms(invertStep(steps[i]), inv)
	}
	return pipeline{fwd: fwd, inv: inv}
}

// invertStep inverts one elementary pipeline matrix. Every step is
// either diagonal scaling, translation, or a Y mirror, all of which
// invert in closed form.
func invertStep(m mt.Transform) mt.Transform {
	r := mt.Identity()
	r[0][0] = 1 / m[0][0]
	r[1][1] = 1 / m[1][1]
	r[0][2] = -m[0][2] / m[0][0]
	r[1][2] = -m[1][2] / m[1][1]
	return r
}

// Apply maps a drawing-space point to machine space.
func (pl pipeline) Apply(p geom.Point) geom.Point {
	x, y := pl.fwd.Apply(p.X, p.Y)
	return geom.Point{X: x, Y: y}
}

// Invert maps a machine-space point back to drawing space.
func (pl pipeline) Invert(p geom.Point) geom.Point {
	x, y := pl.inv.Apply(p.X, p.Y)
	return geom.Point{X: x, Y: y}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
