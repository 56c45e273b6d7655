package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/vasalvit/svg2gcode/gcode"
	"github.com/vasalvit/svg2gcode/geom"
	"github.com/vasalvit/svg2gcode/svg"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.svg>",
	Short: "Compile one layer selection into a G-code file",
	Example: `  svg2gcode convert drawing.svg -o drawing.gcode
  svg2gcode convert drawing.svg --layer cut --cutting-speed 250 --power 255`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var convertOpts struct {
	machineOptions
	layer        string
	cuttingSpeed float64
	power        int
	output       string
}

func init() {
	convertOpts.addFlags(convertCmd)
	f := convertCmd.Flags()
	f.StringVar(&convertOpts.layer, "layer", "", "layer to compile (empty for all layers)")
	f.Float64Var(&convertOpts.cuttingSpeed, "cutting-speed", 250, "cutting feed rate in unit/min")
	f.IntVar(&convertOpts.power, "power", 255, "tool power level (0-255)")
	f.StringVarP(&convertOpts.output, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	layers, err := loadLayers(args[0])
	if err != nil {
		return err
	}

	cfg, err := convertOpts.config()
	if err != nil {
		return err
	}
	prof := convertOpts.profile(convertOpts.cuttingSpeed, convertOpts.power)

	res, err := gcode.Compile(layers, convertOpts.layer, cfg, prof)
	if err != nil {
		return err
	}
	reportWarnings(res.Warnings)
	if res.Empty() {
		pterm.Warning.Println("the compiled stream contains no cuts")
		printLayerHints(layers)
	}

	if err := writeResult(res, convertOpts.output); err != nil {
		return err
	}
	pterm.Success.Printf("estimated duration %s, bounds %s\n",
		res.Duration.Round(time.Millisecond), boundsString(res.Bounds, res.Unit))
	return nil
}

// loadLayers parses an SVG file into drawing-space layers.
func loadLayers(path string) ([]geom.Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := svg.ParseSvgFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	layers, err := doc.Layers()
	if err != nil {
		return nil, fmt.Errorf("extracting geometry from %s: %w", path, err)
	}
	return layers, nil
}

// writeResult serializes a compile result to the output file, or stdout
// when no path is given.
func writeResult(res *gcode.Result, path string) error {
	if path == "" {
		return gcode.Emit(os.Stdout, res)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gcode.Emit(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func reportWarnings(warns []gcode.Warning) {
	for _, w := range warns {
		pterm.Warning.Println(w.String())
	}
}

// printLayerHints lists the layers the document actually contains, the
// usual cause of an empty compile.
func printLayerHints(layers []geom.Layer) {
	if len(layers) == 0 {
		pterm.Info.Println("the document contains no path geometry at all")
		return
	}
	pterm.Info.Println("layers found in the document:")
	for _, l := range layers {
		name := l.Name
		if name == "" {
			name = "(default)"
		}
		pterm.Info.Printf("  %s: %d paths\n", name, len(l.Paths))
	}
}

func boundsString(b geom.Rect, unit gcode.Unit) string {
	if b.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%.2fx%.2f %s", b.Width(), b.Height(), unit)
}
