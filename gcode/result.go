package gcode

import (
	"time"

	"github.com/vasalvit/svg2gcode/geom"
)

// Result is the fully materialized output of one compile run: the
// instruction stream, summary statistics, and the side-channel of
// accumulated warnings. A Result is immutable once returned; merging
// produces new values.
type Result struct {
	// Layer is the layer selection this run was compiled for ("" for
	// all layers).
	Layer string

	// Instructions is the ordered machine instruction stream.
	Instructions []Instruction

	// Bounds is the bounding box of all motion targets in machine
	// space.
	Bounds geom.Rect

	// Duration is the estimated execution time derived from move
	// distances, feed rates, and dwell pauses.
	Duration time.Duration

	// Warnings holds the recoverable conditions recorded during the
	// run. They never abort compilation.
	Warnings []Warning

	// Unit and Precision are the compatibility contract the stream was
	// emitted under; Merge refuses to combine results that disagree.
	Unit      Unit
	Precision int

	// Header and Footer are the verbatim line blocks bracketing the
	// stream when serialized.
	Header []string
	Footer []string

	// offCommand is the profile's tool-off command, kept so that Merge
	// can separate this block from a following one without borrowing
	// another profile's dialect.
	offCommand string
}

// Empty reports whether the stream contains no engaged motion. A run
// whose selection matched nothing, or whose layer held no usable paths,
// is empty even though header and footer would still serialize.
func (r *Result) Empty() bool {
	for _, in := range r.Instructions {
		if in.Kind == CutInstruction {
			return false
		}
	}
	return true
}
