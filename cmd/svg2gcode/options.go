package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vasalvit/svg2gcode/gcode"
)

// machineOptions is the flag surface shared by the convert and combine
// commands: everything describing the machine, independent of which
// layer is being processed.
type machineOptions struct {
	unit            string
	origin          string
	scale           float64
	offsetX         float64
	offsetY         float64
	invertY         bool
	useDocumentSize bool
	bedWidth        float64
	bedHeight       float64
	tolerance       float64
	precision       int

	travelSpeed float64
	passes      int
	passDepth   float64
	dwellTime   float64
	offCommand  string

	zeroMachine     bool
	zAxisStart      float64
	doZAxisStart    bool
	moveToOriginEnd bool
	laserOffStart   bool
	laserOffEnd     bool

	headerFile string
	footerFile string
}

func (o *machineOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.unit, "unit", "mm", "machine unit (mm or in)")
	f.StringVar(&o.origin, "machine-origin", "bottom-left", "machine origin (bottom-left, center or top-left)")
	f.Float64Var(&o.scale, "scaling-factor", 1, "uniform scaling factor applied to the drawing")
	f.Float64Var(&o.offsetX, "horizontal-offset", 0, "horizontal machine-space offset")
	f.Float64Var(&o.offsetY, "vertical-offset", 0, "vertical machine-space offset")
	f.BoolVar(&o.invertY, "invert-y-axis", false, "flip the Y axis before origin placement")
	f.BoolVar(&o.useDocumentSize, "use-document-size", true, "derive the bed size from the drawing extent")
	f.Float64Var(&o.bedWidth, "bed-width", 200, "machine bed width")
	f.Float64Var(&o.bedHeight, "bed-height", 200, "machine bed height")
	f.Float64Var(&o.tolerance, "approximation-tolerance", 0.01, "maximum curve flattening deviation")
	f.IntVar(&o.precision, "precision", gcode.DefaultPrecision, "decimal places of emitted coordinates")

	f.Float64Var(&o.travelSpeed, "travel-speed", 3000, "rapid travel feed rate in unit/min")
	f.IntVar(&o.passes, "passes", 1, "number of passes over each path")
	f.Float64Var(&o.passDepth, "pass-depth", 1, "depth step per pass")
	f.Float64Var(&o.dwellTime, "dwell-time", 0, "milliseconds to pause after each tool-on")
	f.StringVar(&o.offCommand, "tool-off-command", gcode.DefaultOffCommand, "verbatim tool-off command")

	f.BoolVar(&o.zeroMachine, "zero-machine", false, "zero the machine coordinates after the header")
	f.Float64Var(&o.zAxisStart, "z-axis-start", 0, "initial Z axis position")
	f.BoolVar(&o.doZAxisStart, "do-z-axis-start", false, "position the Z axis after the header")
	f.BoolVar(&o.moveToOriginEnd, "move-to-origin-end", false, "return to the origin at the end of the job")
	f.BoolVar(&o.laserOffStart, "do-laser-off-start", true, "turn the laser off before the job")
	f.BoolVar(&o.laserOffEnd, "do-laser-off-end", true, "turn the laser off after the job")

	f.StringVar(&o.headerFile, "header-file", "", "file with verbatim header lines")
	f.StringVar(&o.footerFile, "footer-file", "", "file with verbatim footer lines")
}

// config materializes the options into a validated compiler
// configuration.
func (o *machineOptions) config() (gcode.Config, error) {
	cfg := gcode.DefaultConfig()
	cfg.Unit = gcode.Unit(o.unit)
	cfg.Origin = gcode.Origin(o.origin)
	cfg.ScaleX = o.scale
	cfg.ScaleY = o.scale
	cfg.OffsetX = o.offsetX
	cfg.OffsetY = o.offsetY
	cfg.InvertY = o.invertY
	cfg.UseDocumentSize = o.useDocumentSize
	cfg.BedWidth = o.bedWidth
	cfg.BedHeight = o.bedHeight
	cfg.Tolerance = o.tolerance
	cfg.Precision = o.precision
	cfg.ZeroMachine = o.zeroMachine
	cfg.ZAxisStart = o.zAxisStart
	cfg.SetZAxisStart = o.doZAxisStart
	cfg.MoveToOriginEnd = o.moveToOriginEnd
	cfg.LaserOffStart = o.laserOffStart
	cfg.LaserOffEnd = o.laserOffEnd

	var err error
	if cfg.Header, err = readLines(o.headerFile); err != nil {
		return cfg, fmt.Errorf("header file: %w", err)
	}
	if cfg.Footer, err = readLines(o.footerFile); err != nil {
		return cfg, fmt.Errorf("footer file: %w", err)
	}
	return cfg, cfg.Validate()
}

// profile materializes an operation profile for the given cutting speed
// and power level.
func (o *machineOptions) profile(cuttingSpeed float64, power int) gcode.Profile {
	return gcode.Profile{
		TravelSpeed:  o.travelSpeed,
		CuttingSpeed: cuttingSpeed,
		PowerCommand: gcode.PowerCommandFor(power),
		OffCommand:   o.offCommand,
		Passes:       o.passes,
		PassDepth:    o.passDepth,
		DwellTime:    o.dwellTime,
	}
}

// readLines loads a command file as verbatim lines, dropping trailing
// blank lines. An empty path yields nil, which selects the generated
// default block.
func readLines(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
