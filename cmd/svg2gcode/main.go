// Command svg2gcode compiles SVG drawings into G-code toolpaths for
// laser cutters and plotters.
package main

func main() {
	Execute()
}
