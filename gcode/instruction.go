package gcode

import "github.com/vasalvit/svg2gcode/geom"

// InstructionKind tells the emitter which machine command an instruction
// maps to.
type InstructionKind int

// Instruction kinds. Ordering of the emitted stream is semantically
// significant: the machine executes sequentially and nothing may be
// reordered after planning.
const (
	TravelInstruction InstructionKind = iota
	CutInstruction
	ToolOnInstruction
	ToolOffInstruction
	DwellInstruction
	ZeroInstruction
	CommentInstruction
)

func (k InstructionKind) String() string {
	switch k {
	case TravelInstruction:
		return "travel"
	case CutInstruction:
		return "cut"
	case ToolOnInstruction:
		return "tool-on"
	case ToolOffInstruction:
		return "tool-off"
	case DwellInstruction:
		return "dwell"
	case ZeroInstruction:
		return "zero"
	case CommentInstruction:
		return "comment"
	}
	return "unknown"
}

// Instruction is one planned machine instruction. Only the fields
// relevant to the Kind are set.
type Instruction struct {
	Kind InstructionKind

	// To is the machine-space target of Travel and Cut moves.
	To *geom.Point

	// Feed annotates Travel and Cut moves with their rate in unit/min.
	Feed float64

	// Depth is the cumulative pass depth of a Cut move. It is metadata
	// for controllers that honor it, not a literal axis coordinate.
	Depth float64

	// Millis is the Dwell pause duration.
	Millis float64

	// Command is the verbatim controller command of ToolOn and ToolOff.
	Command string

	// Text is the Comment payload.
	Text string
}

func travelTo(p geom.Point, feed float64) Instruction {
	return Instruction{Kind: TravelInstruction, To: &p, Feed: feed}
}

func cutTo(p geom.Point, feed, depth float64) Instruction {
	return Instruction{Kind: CutInstruction, To: &p, Feed: feed, Depth: depth}
}

func toolOn(command string) Instruction {
	return Instruction{Kind: ToolOnInstruction, Command: command}
}

func toolOff(command string) Instruction {
	return Instruction{Kind: ToolOffInstruction, Command: command}
}

func dwell(ms float64) Instruction {
	return Instruction{Kind: DwellInstruction, Millis: ms}
}

func comment(text string) Instruction {
	return Instruction{Kind: CommentInstruction, Text: text}
}
