package gcode

import (
	"fmt"

	"github.com/vasalvit/svg2gcode/geom"
)

// Merge combines two or more compile results into one ordered stream, in
// caller-specified order (e.g. engrave first, then cut). Per-block
// headers are deduplicated: only the first result's header (and zeroing)
// and the last result's footer survive, so machine initialization never
// repeats mid-job. Adjacent blocks are separated by exactly one ToolOff
// when the preceding block did not already end disengaged.
func Merge(results ...*Result) (*Result, error) {
	if len(results) == 0 {
		return nil, &MergeError{Reason: "no compile results supplied"}
	}

	first := results[0]
	for _, r := range results[1:] {
		if r.Unit != first.Unit {
			return nil, &MergeError{Reason: fmt.Sprintf(
				"results use incompatible units %q and %q", first.Unit, r.Unit)}
		}
		if r.Precision != first.Precision {
			return nil, &MergeError{Reason: fmt.Sprintf(
				"results use incompatible precisions %d and %d", first.Precision, r.Precision)}
		}
	}

	merged := &Result{
		Layer:      first.Layer,
		Bounds:     geom.EmptyRect(),
		Unit:       first.Unit,
		Precision:  first.Precision,
		Header:     first.Header,
		Footer:     results[len(results)-1].Footer,
		offCommand: results[len(results)-1].offCommand,
	}

	for i, r := range results {
		if i > 0 {
			prev := results[i-1]
			if !endsDisengaged(merged.Instructions) {
				merged.Instructions = append(merged.Instructions, toolOff(prev.offCommand))
			}
			merged.Instructions = append(merged.Instructions, comment(fmt.Sprintf(
				"layer transition: %s -> %s", blockName(prev), blockName(r))))
		}
		merged.Instructions = append(merged.Instructions, bodyOf(r, i == 0)...)
		merged.Bounds = merged.Bounds.Union(r.Bounds)
		merged.Duration += r.Duration
		merged.Warnings = append(merged.Warnings, r.Warnings...)
	}
	return merged, nil
}

// bodyOf returns a result's instructions with header-region zeroing
// stripped from every block but the first.
func bodyOf(r *Result, keepZero bool) []Instruction {
	ins := r.Instructions
	for !keepZero && len(ins) > 0 && ins[0].Kind == ZeroInstruction {
		ins = ins[1:]
	}
	return ins
}

// endsDisengaged reports whether the last instruction already turned the
// tool off; Merge must never double-toggle.
func endsDisengaged(ins []Instruction) bool {
	if len(ins) == 0 {
		return true
	}
	return ins[len(ins)-1].Kind == ToolOffInstruction
}

func blockName(r *Result) string {
	if r.Layer == "" {
		return "all layers"
	}
	return r.Layer
}
