package svg

import (
	"strings"
	"testing"

	"github.com/cheekybits/is"
	"github.com/stretchr/testify/require"

	"github.com/vasalvit/svg2gcode/geom"
)

const testSvg = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg version="1.1" id="Layer_1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" x="0px" y="0px"
	 width="595.201px" height="841.922px" viewBox="0 0 595.201 841.922" enable-background="new 0 0 595.201 841.922"
	 xml:space="preserve">
<rect x="207" y="53" fill="#009FE3" width="181.667" height="85.333"/>
<text transform="matrix(1 0 0 1 232.3306 107.5952)" fill="#FFFFFF" font-family="'ArialMT'" font-size="31.9752">PODIUM</text>
</svg>`

const inkscapeSvg = `<?xml version="1.0" encoding="UTF-8"?>
<svg width="100mm" height="100mm" viewBox="0 0 100 100"
     xmlns="http://www.w3.org/2000/svg"
     xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
  <title>two layer job</title>
  <g inkscape:groupmode="layer" inkscape:label="engrave" id="layer1">
    <path d="M10 10 L20 10"/>
  </g>
  <g inkscape:groupmode="layer" inkscape:label="cut" id="layer2">
    <rect x="0" y="0" width="50" height="40"/>
  </g>
</svg>`

func TestParse(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(testSvg)
	is.NoErr(err)
	is.NotNil(svg)

	svg, err = ParseSvgFromReader(strings.NewReader(testSvg))
	is.NoErr(err)
	is.NotNil(svg)
}

func TestInkscapeLayers(t *testing.T) {
	s, err := ParseSvg(inkscapeSvg)
	require.NoError(t, err)
	require.Equal(t, "two layer job", s.Title)

	layers, err := s.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 2)
	require.Equal(t, "engrave", layers[0].Name)
	require.Equal(t, "cut", layers[1].Name)

	require.Len(t, layers[0].Paths, 1)
	require.Len(t, layers[1].Paths, 1)

	// width 100mm over a 100 unit viewBox: user units are millimeters.
	b := geom.LayersBounds([]geom.Layer{layers[1]}, 0.1)
	require.InDelta(t, 50, b.Max.X, 1e-9)
	require.InDelta(t, 40, b.Max.Y, 1e-9)
}

func TestDefaultLayer(t *testing.T) {
	doc := `<svg viewBox="0 0 100 100">
	  <line x1="0" y1="0" x2="10" y2="0"/>
	  <g id="plain"><line x1="0" y1="5" x2="10" y2="5"/></g>
	  <g inkscape:groupmode="layer" inkscape:label="cut"
	     xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
	    <line x1="0" y1="9" x2="10" y2="9"/>
	  </g>
	</svg>`
	s, err := ParseSvg(doc)
	require.NoError(t, err)

	layers, err := s.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 2)

	// Loose elements and plain groups fall into the unnamed default
	// layer, which comes first.
	require.Equal(t, "", layers[0].Name)
	require.Len(t, layers[0].Paths, 2)
	require.Equal(t, "cut", layers[1].Name)
}

func TestLayerNameFallsBackToID(t *testing.T) {
	doc := `<svg viewBox="0 0 10 10" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">
	  <g inkscape:groupmode="layer" id="layer7"><line x1="0" y1="0" x2="1" y2="0"/></g>
	</svg>`
	s, err := ParseSvg(doc)
	require.NoError(t, err)

	layers, err := s.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 1)
	require.Equal(t, "layer7", layers[0].Name)
}

func TestUnitNormalization(t *testing.T) {
	// 10mm wide document over a 100 unit viewBox: a 100 unit line is
	// 10mm long.
	doc := `<svg width="10mm" height="10mm" viewBox="0 0 100 100">
	  <line x1="0" y1="0" x2="100" y2="0"/>
	</svg>`
	s, err := ParseSvg(doc)
	require.NoError(t, err)
	layers, err := s.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 1)
	require.InDelta(t, 10, layers[0].Paths[0].End().X, 1e-9)

	// A bare pixel width converts at 96 dpi.
	doc = `<svg width="96" height="96"><line x1="0" y1="0" x2="96" y2="0"/></svg>`
	s, err = ParseSvg(doc)
	require.NoError(t, err)
	layers, err = s.Layers()
	require.NoError(t, err)
	require.InDelta(t, 25.4, layers[0].Paths[0].End().X, 1e-9)
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"100mm", 100},
		{"10cm", 100},
		{"1in", 25.4},
		{"72pt", 25.4},
		{"96px", 25.4},
		{"96", 25.4},
	}
	for _, tc := range cases {
		got, ok := parseLength(tc.in)
		require.True(t, ok, tc.in)
		require.InDelta(t, tc.want, got, 1e-9, tc.in)
	}

	_, ok := parseLength("")
	require.False(t, ok)
	_, ok = parseLength("wide")
	require.False(t, ok)
}

func TestGroupTransformApplies(t *testing.T) {
	doc := `<svg viewBox="0 0 100 100">
	  <g transform="translate(5 5) scale(2)"><line x1="0" y1="0" x2="10" y2="0"/></g>
	</svg>`
	s, err := ParseSvg(doc)
	require.NoError(t, err)
	layers, err := s.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 1)

	p := layers[0].Paths[0]
	require.True(t, p.Start().Equal(geom.Point{X: 5, Y: 5}, 1e-9))
	require.True(t, p.End().Equal(geom.Point{X: 25, Y: 5}, 1e-9))
}
