package gcode

import "fmt"

// Unit is the machine unit of measurement. All lengths in a Config and
// Profile are interpreted in this unit.
type Unit string

// Supported machine units.
const (
	Millimeters Unit = "mm"
	Inches      Unit = "in"
)

// mmPerInch converts drawing-space millimeters into inches during unit
// normalization.
const mmPerInch = 25.4

// Origin is the machine-space anchor that drawing-space (0,0) maps to.
type Origin string

// Supported machine origins.
const (
	OriginBottomLeft Origin = "bottom-left"
	OriginCenter     Origin = "center"
	OriginTopLeft    Origin = "top-left"
)

// DefaultPrecision is the number of decimal places used for emitted
// coordinates when none is configured.
const DefaultPrecision = 3

// Config is the validated transform and emitter configuration for one
// compile run. It replaces the loosely typed option bag of UI-driven
// converters: validation happens once in Validate, never in the pipeline.
type Config struct {
	Unit Unit

	// Additional scaling and translation applied in the transform
	// pipeline, on top of unit normalization.
	ScaleX  float64
	ScaleY  float64
	OffsetX float64
	OffsetY float64

	// InvertY flips the Y axis before origin placement.
	InvertY bool

	// Origin selects the machine-space anchor. Center and top-left
	// placement need the bed dimensions.
	Origin    Origin
	BedWidth  float64
	BedHeight float64

	// UseDocumentSize derives the bed dimensions from the bounding box
	// of the full input geometry instead of BedWidth/BedHeight.
	UseDocumentSize bool

	// Tolerance is the curve-flattening deviation bound. Must be > 0.
	Tolerance float64

	// Precision is the number of decimal places for emitted coordinates.
	Precision int

	// Header and Footer are opaque instruction lines inserted verbatim
	// at stream start and end. When empty, a minimal default block is
	// generated instead.
	Header []string
	Footer []string

	// ZeroMachine emits a coordinate-zeroing instruction immediately
	// after the header.
	ZeroMachine bool

	// ZAxisStart positions the Z axis once after the header when
	// SetZAxisStart is set.
	ZAxisStart    float64
	SetZAxisStart bool

	// MoveToOriginEnd returns the tool to (0,0) at the end of the job.
	MoveToOriginEnd bool

	// LaserOffStart and LaserOffEnd bracket the whole job with the
	// profile's off command.
	LaserOffStart bool
	LaserOffEnd   bool
}

// DefaultConfig returns the configuration matching the defaults of the
// original conversion tool: millimeters, unscaled, bottom-left origin,
// bed derived from the document, laser off before and after the job.
func DefaultConfig() Config {
	return Config{
		Unit:            Millimeters,
		ScaleX:          1,
		ScaleY:          1,
		Origin:          OriginBottomLeft,
		BedWidth:        200,
		BedHeight:       200,
		UseDocumentSize: true,
		Tolerance:       0.01,
		Precision:       DefaultPrecision,
		LaserOffStart:   true,
		LaserOffEnd:     true,
	}
}

// Validate checks the configuration and returns a ConfigError naming the
// offending parameter. It must pass before any instruction is emitted.
func (c Config) Validate() error {
	switch c.Unit {
	case Millimeters, Inches:
	default:
		return &ConfigError{Param: "unit", Reason: unknownValue(string(c.Unit), "mm", "in")}
	}
	switch c.Origin {
	case OriginBottomLeft, OriginCenter, OriginTopLeft:
	default:
		return &ConfigError{Param: "machine_origin", Reason: unknownValue(string(c.Origin), "bottom-left", "center", "top-left")}
	}
	if c.ScaleX == 0 {
		return &ConfigError{Param: "scaling_factor", Reason: "x scale factor must be non-zero"}
	}
	if c.ScaleY == 0 {
		return &ConfigError{Param: "scaling_factor", Reason: "y scale factor must be non-zero"}
	}
	if !c.UseDocumentSize {
		if c.BedWidth <= 0 {
			return &ConfigError{Param: "bed_width", Reason: "must be positive unless use_document_size is set"}
		}
		if c.BedHeight <= 0 {
			return &ConfigError{Param: "bed_height", Reason: "must be positive unless use_document_size is set"}
		}
	}
	if c.Tolerance <= 0 {
		return &ConfigError{Param: "approximation_tolerance", Reason: "must be greater than zero"}
	}
	if c.Precision < 0 {
		return &ConfigError{Param: "precision", Reason: "must not be negative"}
	}
	return nil
}

func unknownValue(got string, want ...string) string {
	s := fmt.Sprintf("unknown value %q, expected one of", got)
	for _, w := range want {
		s += fmt.Sprintf(" %q", w)
	}
	return s
}

// unitScale returns the factor converting drawing-space millimeters into
// the configured machine unit.
func (c Config) unitScale() float64 {
	if c.Unit == Inches {
		return 1 / mmPerInch
	}
	return 1
}
