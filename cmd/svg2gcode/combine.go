package main

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vasalvit/svg2gcode/gcode"
)

var combineCmd = &cobra.Command{
	Use:   "combine <input.svg>",
	Short: "Compile engrave and cut layers into one G-code file",
	Long: `combine compiles the engrave layer and the cut layer of a drawing as two
independent runs and merges them into a single job, engraving first so
the part cannot shift before it is marked.`,
	Example: `  svg2gcode combine drawing.svg -o drawing.gcode
  svg2gcode combine drawing.svg --engrave-power 75 --cut-power 255
  svg2gcode combine drawing.svg --job job.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCombine,
}

var combineOpts struct {
	machineOptions
	engraveLayer string
	cutLayer     string
	engraveSpeed float64
	engravePower int
	cutSpeed     float64
	cutPower     int
	jobFile      string
	output       string
}

func init() {
	combineOpts.addFlags(combineCmd)
	f := combineCmd.Flags()
	f.StringVar(&combineOpts.engraveLayer, "engrave-layer", "engrave", "layer holding engrave geometry")
	f.StringVar(&combineOpts.cutLayer, "cut-layer", "cut", "layer holding cut geometry")
	f.Float64Var(&combineOpts.engraveSpeed, "engrave-cutting-speed", 1000, "engrave feed rate in unit/min")
	f.IntVar(&combineOpts.engravePower, "engrave-power", 75, "engrave power level (0-255)")
	f.Float64Var(&combineOpts.cutSpeed, "cut-cutting-speed", 250, "cut feed rate in unit/min")
	f.IntVar(&combineOpts.cutPower, "cut-power", 255, "cut power level (0-255)")
	f.StringVar(&combineOpts.jobFile, "job", "", "YAML job file with option defaults")
	f.StringVarP(&combineOpts.output, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, args []string) error {
	if combineOpts.jobFile != "" {
		job, err := loadJob(combineOpts.jobFile)
		if err != nil {
			return err
		}
		job.apply(cmd)
	}

	pterm.Info.Printf("[1/3] reading %s\n", args[0])
	layers, err := loadLayers(args[0])
	if err != nil {
		return err
	}

	cfg, err := combineOpts.config()
	if err != nil {
		return err
	}

	// The two runs share no state, so they compile concurrently.
	pterm.Info.Printf("[2/3] compiling layers %q and %q\n",
		combineOpts.engraveLayer, combineOpts.cutLayer)
	var engrave, cut *gcode.Result
	var g errgroup.Group
	g.Go(func() error {
		var err error
		engrave, err = gcode.Compile(layers, combineOpts.engraveLayer, cfg,
			combineOpts.profile(combineOpts.engraveSpeed, combineOpts.engravePower))
		return err
	})
	g.Go(func() error {
		var err error
		cut, err = gcode.Compile(layers, combineOpts.cutLayer, cfg,
			combineOpts.profile(combineOpts.cutSpeed, combineOpts.cutPower))
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	reportWarnings(engrave.Warnings)
	reportWarnings(cut.Warnings)

	// A job without cut geometry is unusable; a missing engrave layer
	// just means there is nothing to mark.
	if cut.Empty() {
		pterm.Error.Printf("no geometry found in layer %q\n", combineOpts.cutLayer)
		printLayerHints(layers)
		return fmt.Errorf("layer %q produced no cuts", combineOpts.cutLayer)
	}
	if engrave.Empty() {
		pterm.Warning.Printf("layer %q produced no cuts, emitting cut layer only\n", combineOpts.engraveLayer)
	}

	// Engrave first, then cut.
	pterm.Info.Println("[3/3] merging")
	blocks := []*gcode.Result{engrave, cut}
	if engrave.Empty() {
		blocks = blocks[1:]
	}
	merged, err := gcode.Merge(blocks...)
	if err != nil {
		return err
	}

	if err := writeResult(merged, combineOpts.output); err != nil {
		return err
	}
	pterm.Success.Printf("estimated duration %s, bounds %s\n",
		merged.Duration.Round(time.Millisecond), boundsString(merged.Bounds, merged.Unit))
	return nil
}
