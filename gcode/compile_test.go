package gcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vasalvit/svg2gcode/geom"
)

func squareLayer(name string, size float64) geom.Layer {
	return geom.Layer{Name: name, Paths: []geom.Path{{
		geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: size, Y: 0}},
		geom.Line{From: geom.Point{X: size, Y: 0}, To: geom.Point{X: size, Y: size}},
		geom.Line{From: geom.Point{X: size, Y: size}, To: geom.Point{X: 0, Y: size}},
		geom.Line{From: geom.Point{X: 0, Y: size}, To: geom.Point{X: 0, Y: 0}},
	}}}
}

func kindCounts(ins []Instruction) map[InstructionKind]int {
	counts := map[InstructionKind]int{}
	for _, in := range ins {
		counts[in.Kind]++
	}
	return counts
}

func TestCompileSquare(t *testing.T) {
	layers := []geom.Layer{squareLayer("cut", 10)}
	res, err := Compile(layers, "", DefaultConfig(), DefaultProfile(250, 255))
	require.NoError(t, err)
	require.Empty(t, res.Warnings)
	require.False(t, res.Empty())

	counts := kindCounts(res.Instructions)
	require.Equal(t, 1, counts[TravelInstruction])
	require.Equal(t, 4, counts[CutInstruction])
	require.Equal(t, 1, counts[ToolOnInstruction])
	require.Equal(t, 1, counts[ToolOffInstruction])

	// Travel, engage, cut the perimeter, disengage.
	require.Equal(t, TravelInstruction, res.Instructions[0].Kind)
	require.Equal(t, ToolOnInstruction, res.Instructions[1].Kind)
	require.Equal(t, ToolOffInstruction, res.Instructions[len(res.Instructions)-1].Kind)

	require.Equal(t, geom.Point{X: 0, Y: 0}, res.Bounds.Min)
	require.Equal(t, geom.Point{X: 10, Y: 10}, res.Bounds.Max)

	// 40mm perimeter at 250mm/min.
	want := time.Duration(40.0 / 250.0 * float64(time.Minute))
	require.InDelta(t, float64(want), float64(res.Duration), float64(time.Millisecond))
}

func TestCompileFeeds(t *testing.T) {
	layers := []geom.Layer{squareLayer("cut", 10)}
	prof := DefaultProfile(250, 255)
	res, err := Compile(layers, "", DefaultConfig(), prof)
	require.NoError(t, err)

	for _, in := range res.Instructions {
		switch in.Kind {
		case TravelInstruction:
			require.Equal(t, prof.TravelSpeed, in.Feed)
		case CutInstruction:
			require.Equal(t, prof.CuttingSpeed, in.Feed)
		}
	}
}

func TestCompilePassDepths(t *testing.T) {
	layers := []geom.Layer{squareLayer("cut", 10)}
	prof := DefaultProfile(250, 255)
	prof.Passes = 3
	prof.PassDepth = 0.5

	res, err := Compile(layers, "", DefaultConfig(), prof)
	require.NoError(t, err)

	var depths []float64
	for _, in := range res.Instructions {
		if in.Kind != CutInstruction {
			continue
		}
		if len(depths) == 0 || depths[len(depths)-1] != in.Depth {
			depths = append(depths, in.Depth)
		}
	}
	require.Equal(t, []float64{0, 0.5, 1.0}, depths)

	counts := kindCounts(res.Instructions)
	require.Equal(t, 12, counts[CutInstruction])
	// One engagement window for the whole path.
	require.Equal(t, 1, counts[ToolOnInstruction])
	require.Equal(t, 1, counts[ToolOffInstruction])
	// Travel to the start, plus a travel back before passes 2 and 3.
	require.Equal(t, 3, counts[TravelInstruction])
}

func TestCompileRetriggerPerPass(t *testing.T) {
	layers := []geom.Layer{squareLayer("cut", 10)}
	prof := DefaultProfile(250, 255)
	prof.Passes = 3
	prof.PassDepth = 0.5
	prof.RetriggerPerPass = true

	res, err := Compile(layers, "", DefaultConfig(), prof)
	require.NoError(t, err)

	counts := kindCounts(res.Instructions)
	require.Equal(t, 3, counts[ToolOnInstruction])
	require.Equal(t, 3, counts[ToolOffInstruction])
}

func TestCompileDwell(t *testing.T) {
	layers := []geom.Layer{squareLayer("cut", 10)}
	prof := DefaultProfile(250, 255)
	prof.DwellTime = 2000

	res, err := Compile(layers, "", DefaultConfig(), prof)
	require.NoError(t, err)

	for i, in := range res.Instructions {
		if in.Kind == ToolOnInstruction {
			require.Less(t, i+1, len(res.Instructions))
			next := res.Instructions[i+1]
			require.Equal(t, DwellInstruction, next.Kind)
			require.Equal(t, 2000.0, next.Millis)
		}
	}
	require.GreaterOrEqual(t, res.Duration, 2*time.Second)
}

func TestCompileTravelBetweenPaths(t *testing.T) {
	layer := squareLayer("cut", 10)
	second := geom.Path{
		geom.Line{From: geom.Point{X: 20, Y: 20}, To: geom.Point{X: 30, Y: 20}},
	}
	layer.Paths = append(layer.Paths, second)

	res, err := Compile([]geom.Layer{layer}, "", DefaultConfig(), DefaultProfile(250, 255))
	require.NoError(t, err)

	counts := kindCounts(res.Instructions)
	require.Equal(t, 2, counts[TravelInstruction])
	require.Equal(t, 2, counts[ToolOnInstruction])
	require.Equal(t, 2, counts[ToolOffInstruction])
}

func TestCompileLayerSelection(t *testing.T) {
	layers := []geom.Layer{
		squareLayer("engrave", 5),
		squareLayer("cut", 10),
	}

	res, err := Compile(layers, "cut", DefaultConfig(), DefaultProfile(250, 255))
	require.NoError(t, err)
	require.Empty(t, res.Warnings)
	require.Equal(t, "cut", res.Layer)
	require.Equal(t, geom.Point{X: 10, Y: 10}, res.Bounds.Max)

	// Case-sensitive exact match only.
	res, err = Compile(layers, "Cut", DefaultConfig(), DefaultProfile(250, 255))
	require.NoError(t, err)
	require.True(t, res.Empty())
	require.Len(t, res.Warnings, 1)
	require.Equal(t, SelectionWarning, res.Warnings[0].Kind)
	require.Empty(t, kindCounts(res.Instructions)[CutInstruction])
}

func TestCompileAllLayersOrder(t *testing.T) {
	layers := []geom.Layer{
		squareLayer("engrave", 5),
		squareLayer("cut", 10),
	}
	res, err := Compile(layers, "", DefaultConfig(), DefaultProfile(250, 255))
	require.NoError(t, err)

	// The first path cut ends at (0,5), the last at (0,10): layer
	// order is preserved.
	var cuts []geom.Point
	for _, in := range res.Instructions {
		if in.Kind == CutInstruction {
			cuts = append(cuts, *in.To)
		}
	}
	require.Len(t, cuts, 8)
	require.Equal(t, geom.Point{X: 0, Y: 0}, cuts[3])
	require.Equal(t, geom.Point{X: 5, Y: 0}, cuts[0])
	require.Equal(t, geom.Point{X: 10, Y: 0}, cuts[4])
}

func TestCompileZeroMachine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ZeroMachine = true
	res, err := Compile([]geom.Layer{squareLayer("cut", 10)}, "", cfg, DefaultProfile(250, 255))
	require.NoError(t, err)
	require.Equal(t, ZeroInstruction, res.Instructions[0].Kind)
}

func TestCompileWarnsOnDegenerateSegment(t *testing.T) {
	layer := geom.Layer{Name: "cut", Paths: []geom.Path{{
		geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 10, Y: 0}},
		geom.Line{From: geom.Point{X: 10, Y: 0}, To: geom.Point{X: 10, Y: 0}},
	}}}
	res, err := Compile([]geom.Layer{layer}, "", DefaultConfig(), DefaultProfile(250, 255))
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, GeometryWarning, res.Warnings[0].Kind)
	// The path still cuts its usable extent.
	require.False(t, res.Empty())
}

func TestCompileSubdivisionExhaustionWarns(t *testing.T) {
	// A curve far too large for the tolerance exhausts the subdivision
	// depth; the run degrades to the best-effort polyline instead of
	// failing.
	layer := geom.Layer{Name: "cut", Paths: []geom.Path{{
		geom.CubicBezier{
			From:     geom.Point{X: 0, Y: 0},
			Control1: geom.Point{X: 0, Y: 1e16},
			Control2: geom.Point{X: 1e16, Y: 1e16},
			To:       geom.Point{X: 1e16, Y: 0},
		},
	}}}
	cfg := DefaultConfig()
	cfg.Tolerance = 1e-9

	res, err := Compile([]geom.Layer{layer}, "", cfg, DefaultProfile(250, 255))
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	require.Equal(t, GeometryWarning, res.Warnings[0].Kind)
	require.Contains(t, res.Warnings[0].Message, "subdivision depth")

	// The degraded approximation still cuts and still ends on the
	// declared endpoint.
	require.False(t, res.Empty())
	last := res.Instructions[len(res.Instructions)-2]
	require.Equal(t, CutInstruction, last.Kind)
	require.Equal(t, geom.Point{X: 1e16, Y: 0}, *last.To)
}

func TestCompileInvalidInputs(t *testing.T) {
	layers := []geom.Layer{squareLayer("cut", 10)}

	cfg := DefaultConfig()
	cfg.Tolerance = 0
	_, err := Compile(layers, "", cfg, DefaultProfile(250, 255))
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)

	prof := DefaultProfile(250, 255)
	prof.Passes = 0
	_, err = Compile(layers, "", DefaultConfig(), prof)
	require.ErrorAs(t, err, &ce)
}

func TestCompileDefaultHeaderFooter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetZAxisStart = true
	cfg.ZAxisStart = 2.5
	cfg.MoveToOriginEnd = true

	res, err := Compile([]geom.Layer{squareLayer("cut", 10)}, "", cfg, DefaultProfile(250, 255))
	require.NoError(t, err)
	require.Equal(t, []string{"G90;", "M5;", "G21;", "G1 Z2.500;"}, res.Header)
	require.Equal(t, []string{"M5;", "G0 X0 Y0;"}, res.Footer)
}

func TestCompileCustomHeaderFooter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Header = []string{"M100;", "M101;"}
	cfg.Footer = []string{"M102;"}

	res, err := Compile([]geom.Layer{squareLayer("cut", 10)}, "", cfg, DefaultProfile(250, 255))
	require.NoError(t, err)
	require.Equal(t, []string{"M100;", "M101;"}, res.Header)
	require.Equal(t, []string{"M102;"}, res.Footer)
}
