package gcode

import "fmt"

// DefaultOffCommand is the tool-off command template used when a profile
// does not configure one. Like all command templates it is opaque to the
// compiler.
const DefaultOffCommand = "M5;"

// Profile is the operation profile bound to one layer selection for one
// compile run: feed rates, tool power, pass behavior. Profiles are pure
// values with no shared state.
type Profile struct {
	// TravelSpeed and CuttingSpeed are feed rates in unit/min.
	TravelSpeed  float64
	CuttingSpeed float64

	// PowerCommand and OffCommand are emitted verbatim for ToolOn and
	// ToolOff. The compiler performs no validation of their content so
	// that any controller dialect can be targeted.
	PowerCommand string
	OffCommand   string

	// Passes is the number of traversals of each path; PassDepth is the
	// cumulative depth step applied per repetition, carried as metadata
	// on Cut instructions.
	Passes    int
	PassDepth float64

	// DwellTime pauses for the given milliseconds after each ToolOn,
	// before the first cut.
	DwellTime float64

	// RetriggerPerPass brackets every pass with ToolOn/ToolOff instead
	// of the default single engagement window per path.
	RetriggerPerPass bool
}

// PowerCommandFor renders the default power command template for a
// 0-255 power level.
func PowerCommandFor(power int) string {
	return fmt.Sprintf("M3 S%d;", power)
}

// DefaultProfile returns an operation profile with the original tool's
// defaults for the given power level.
func DefaultProfile(cuttingSpeed float64, power int) Profile {
	return Profile{
		TravelSpeed:  3000,
		CuttingSpeed: cuttingSpeed,
		PowerCommand: PowerCommandFor(power),
		OffCommand:   DefaultOffCommand,
		Passes:       1,
		PassDepth:    1,
	}
}

// Validate checks the profile and returns a ConfigError naming the
// offending parameter.
func (p Profile) Validate() error {
	if p.TravelSpeed <= 0 {
		return &ConfigError{Param: "travel_speed", Reason: "must be positive"}
	}
	if p.CuttingSpeed <= 0 {
		return &ConfigError{Param: "cutting_speed", Reason: "must be positive"}
	}
	if p.Passes < 1 {
		return &ConfigError{Param: "passes", Reason: "must be at least 1"}
	}
	if p.DwellTime < 0 {
		return &ConfigError{Param: "dwell_time", Reason: "must not be negative"}
	}
	return nil
}

// offCommand returns the configured off command or the default.
func (p Profile) offCommand() string {
	if p.OffCommand == "" {
		return DefaultOffCommand
	}
	return p.OffCommand
}
