package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// combineJob is a YAML job file: persistent defaults for the combine
// command. Every field is optional; explicit command-line flags always
// win over job file values.
type combineJob struct {
	Unit             *string  `yaml:"unit"`
	MachineOrigin    *string  `yaml:"machine_origin"`
	ScalingFactor    *float64 `yaml:"scaling_factor"`
	HorizontalOffset *float64 `yaml:"horizontal_offset"`
	VerticalOffset   *float64 `yaml:"vertical_offset"`
	InvertYAxis      *bool    `yaml:"invert_y_axis"`
	UseDocumentSize  *bool    `yaml:"use_document_size"`
	BedWidth         *float64 `yaml:"bed_width"`
	BedHeight        *float64 `yaml:"bed_height"`
	Tolerance        *float64 `yaml:"approximation_tolerance"`
	Precision        *int     `yaml:"precision"`

	TravelSpeed *float64 `yaml:"travel_speed"`
	Passes      *int     `yaml:"passes"`
	PassDepth   *float64 `yaml:"pass_depth"`
	DwellTime   *float64 `yaml:"dwell_time"`
	OffCommand  *string  `yaml:"tool_off_command"`

	ZeroMachine     *bool    `yaml:"zero_machine"`
	ZAxisStart      *float64 `yaml:"z_axis_start"`
	DoZAxisStart    *bool    `yaml:"do_z_axis_start"`
	MoveToOriginEnd *bool    `yaml:"move_to_origin_end"`
	LaserOffStart   *bool    `yaml:"do_laser_off_start"`
	LaserOffEnd     *bool    `yaml:"do_laser_off_end"`

	HeaderFile *string `yaml:"header_file"`
	FooterFile *string `yaml:"footer_file"`

	EngraveLayer *string  `yaml:"engrave_layer"`
	CutLayer     *string  `yaml:"cut_layer"`
	EngraveSpeed *float64 `yaml:"engrave_cutting_speed"`
	EngravePower *int     `yaml:"engrave_power"`
	CutSpeed     *float64 `yaml:"cut_cutting_speed"`
	CutPower     *int     `yaml:"cut_power"`

	Output *string `yaml:"output"`
}

func loadJob(path string) (*combineJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	var job combineJob
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parsing job file %s: %w", path, err)
	}
	return &job, nil
}

// apply copies job file values into the combine options, skipping every
// option the user set explicitly on the command line.
func (j *combineJob) apply(cmd *cobra.Command) {
	o := &combineOpts

	setString(cmd, "unit", &o.unit, j.Unit)
	setString(cmd, "machine-origin", &o.origin, j.MachineOrigin)
	setFloat(cmd, "scaling-factor", &o.scale, j.ScalingFactor)
	setFloat(cmd, "horizontal-offset", &o.offsetX, j.HorizontalOffset)
	setFloat(cmd, "vertical-offset", &o.offsetY, j.VerticalOffset)
	setBool(cmd, "invert-y-axis", &o.invertY, j.InvertYAxis)
	setBool(cmd, "use-document-size", &o.useDocumentSize, j.UseDocumentSize)
	setFloat(cmd, "bed-width", &o.bedWidth, j.BedWidth)
	setFloat(cmd, "bed-height", &o.bedHeight, j.BedHeight)
	setFloat(cmd, "approximation-tolerance", &o.tolerance, j.Tolerance)
	setInt(cmd, "precision", &o.precision, j.Precision)

	setFloat(cmd, "travel-speed", &o.travelSpeed, j.TravelSpeed)
	setInt(cmd, "passes", &o.passes, j.Passes)
	setFloat(cmd, "pass-depth", &o.passDepth, j.PassDepth)
	setFloat(cmd, "dwell-time", &o.dwellTime, j.DwellTime)
	setString(cmd, "tool-off-command", &o.offCommand, j.OffCommand)

	setBool(cmd, "zero-machine", &o.zeroMachine, j.ZeroMachine)
	setFloat(cmd, "z-axis-start", &o.zAxisStart, j.ZAxisStart)
	setBool(cmd, "do-z-axis-start", &o.doZAxisStart, j.DoZAxisStart)
	setBool(cmd, "move-to-origin-end", &o.moveToOriginEnd, j.MoveToOriginEnd)
	setBool(cmd, "do-laser-off-start", &o.laserOffStart, j.LaserOffStart)
	setBool(cmd, "do-laser-off-end", &o.laserOffEnd, j.LaserOffEnd)

	setString(cmd, "header-file", &o.headerFile, j.HeaderFile)
	setString(cmd, "footer-file", &o.footerFile, j.FooterFile)

	setString(cmd, "engrave-layer", &o.engraveLayer, j.EngraveLayer)
	setString(cmd, "cut-layer", &o.cutLayer, j.CutLayer)
	setFloat(cmd, "engrave-cutting-speed", &o.engraveSpeed, j.EngraveSpeed)
	setInt(cmd, "engrave-power", &o.engravePower, j.EngravePower)
	setFloat(cmd, "cut-cutting-speed", &o.cutSpeed, j.CutSpeed)
	setInt(cmd, "cut-power", &o.cutPower, j.CutPower)

	setString(cmd, "output", &o.output, j.Output)
}

func setString(cmd *cobra.Command, flag string, dst *string, v *string) {
	if v != nil && !cmd.Flags().Changed(flag) {
		*dst = *v
	}
}

func setFloat(cmd *cobra.Command, flag string, dst *float64, v *float64) {
	if v != nil && !cmd.Flags().Changed(flag) {
		*dst = *v
	}
}

func setInt(cmd *cobra.Command, flag string, dst *int, v *int) {
	if v != nil && !cmd.Flags().Changed(flag) {
		*dst = *v
	}
}

func setBool(cmd *cobra.Command, flag string, dst *bool, v *bool) {
	if v != nil && !cmd.Flags().Changed(flag) {
		*dst = *v
	}
}
