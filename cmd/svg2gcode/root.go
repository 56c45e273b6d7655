package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "svg2gcode",
	Short: "Compile SVG drawings into G-code toolpaths",
	Long: `svg2gcode converts vector drawings into machine instruction streams for
laser cutters and plotters. Inkscape layers select which geometry each
operation applies to, so a single drawing can carry engrave and cut
geometry side by side.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of svg2gcode",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("svg2gcode version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
