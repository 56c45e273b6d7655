package gcode

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Emit serializes a result into the plain-text instruction stream, one
// instruction per line: the header block verbatim, the planned body, then
// the footer block verbatim. Output is deterministic across runs; the
// fixed coordinate precision is a compatibility contract with downstream
// controllers.
func Emit(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)
	for _, line := range r.Header {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	for _, in := range r.Instructions {
		if _, err := bw.WriteString(formatInstruction(in, r.Precision) + "\n"); err != nil {
			return err
		}
	}
	for _, line := range r.Footer {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Gcode returns the serialized stream as a string.
func (r *Result) Gcode() string {
	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = Emit(&sb, r)
	return sb.String()
}

func formatInstruction(in Instruction, precision int) string {
	switch in.Kind {
	case TravelInstruction:
		return "G0 X" + formatNumber(in.To.X, precision) +
			" Y" + formatNumber(in.To.Y, precision) +
			" F" + formatFeed(in.Feed) + ";"
	case CutInstruction:
		return "G1 X" + formatNumber(in.To.X, precision) +
			" Y" + formatNumber(in.To.Y, precision) +
			" F" + formatFeed(in.Feed) + ";"
	case ToolOnInstruction, ToolOffInstruction:
		// Opaque templates pass through untouched.
		return in.Command
	case DwellInstruction:
		return "G4 P" + formatFeed(in.Millis) + ";"
	case ZeroInstruction:
		return "G92 X0 Y0 Z0;"
	case CommentInstruction:
		return "; " + in.Text
	}
	return ";"
}

// formatNumber renders a coordinate with the configured fixed number of
// decimal places.
func formatNumber(v float64, precision int) string {
	// Avoid the "-0.000" artifact so identical geometry always
	// serializes identically.
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if s == "-0" || strings.HasPrefix(s, "-0.") && strings.Trim(s, "-0.") == "" {
		s = s[1:]
	}
	return s
}

// formatFeed renders feed rates and durations with their shortest exact
// representation.
func formatFeed(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
