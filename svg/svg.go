// Package svg parses SVG documents into the drawing-space layers the
// toolpath compiler consumes. Only geometry is extracted: paths and the
// basic shapes, organized by Inkscape layer labels. Paint and text are
// ignored.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	mt "github.com/rustyoz/Mtransform"

	"github.com/vasalvit/svg2gcode/geom"
)

// element is an SVG node that can contribute path geometry. The
// transform passed in is the accumulated parent transform; elements
// compose their own transform attribute onto it.
type element interface {
	paths(parent mt.Transform) ([]geom.Path, error)
}

// Svg represents a parsed SVG document: a number of groups (Inkscape
// layers among them) and loose top-level elements.
type Svg struct {
	Title    string
	Width    string
	Height   string
	ViewBox  string
	Groups   []*Group
	Elements []element

	// transform scales user units to drawing-space millimeters, derived
	// from width/height and the viewBox.
	transform mt.Transform
}

// Group represents an SVG 'g' element. Inkscape marks layers as groups
// with groupmode "layer" and carries the user-visible name in the label
// attribute.
type Group struct {
	ID              string
	Label           string
	GroupMode       string
	TransformString string
	Elements        []element
}

// IsLayer reports whether the group is an Inkscape layer.
func (g *Group) IsLayer() bool { return g.GroupMode == "layer" }

// LayerName returns the user-visible layer name, falling back to the
// element id.
func (g *Group) LayerName() string {
	if g.Label != "" {
		return g.Label
	}
	return g.ID
}

// UnmarshalXML implements the encoding/xml.Unmarshaler interface.
func (g *Group) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			g.ID = attr.Value
		case "label":
			g.Label = attr.Value
		case "groupmode":
			g.GroupMode = attr.Value
		case "transform":
			g.TransformString = attr.Value
		}
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			child, err := decodeElement(decoder, tok)
			if err != nil {
				return err
			}
			if child != nil {
				g.Elements = append(g.Elements, child)
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paths implements element for nested groups.
func (g *Group) paths(parent mt.Transform) ([]geom.Path, error) {
	t, err := composeTransform(parent, g.TransformString)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", g.ID, err)
	}
	var out []geom.Path
	for _, e := range g.Elements {
		ps, err := e.paths(t)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}

// decodeElement decodes one geometry-bearing child element, or skips the
// subtree when the element carries no geometry.
func decodeElement(decoder *xml.Decoder, tok xml.StartElement) (element, error) {
	var el element
	switch tok.Name.Local {
	case "g":
		el = &Group{}
	case "path":
		el = &Path{}
	case "rect":
		el = &Rect{}
	case "circle":
		el = &Circle{}
	case "ellipse":
		el = &Ellipse{}
	case "line":
		el = &Line{}
	case "polyline":
		el = &PolyLine{}
	case "polygon":
		el = &Polygon{}
	default:
		return nil, decoder.Skip()
	}
	if err := decoder.DecodeElement(el, &tok); err != nil {
		return nil, fmt.Errorf("error decoding %s element: %w", tok.Name.Local, err)
	}
	return el, nil
}

// UnmarshalXML implements the encoding/xml.Unmarshaler interface.
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "width":
			s.Width = attr.Value
		case "height":
			s.Height = attr.Value
		case "viewBox":
			s.ViewBox = attr.Value
		}
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "title" {
				var title string
				if err := decoder.DecodeElement(&title, &tok); err != nil {
					return err
				}
				s.Title = title
				continue
			}
			if tok.Name.Local == "g" {
				g := &Group{}
				if err := decoder.DecodeElement(g, &tok); err != nil {
					return fmt.Errorf("error decoding group of SVG struct: %w", err)
				}
				s.Groups = append(s.Groups, g)
				continue
			}
			el, err := decodeElement(decoder, tok)
			if err != nil {
				return fmt.Errorf("error decoding element of SVG struct: %w", err)
			}
			if el != nil {
				s.Elements = append(s.Elements, el)
			}
		case xml.EndElement:
			if tok.Name.Local == "svg" {
				return nil
			}
		}
	}
}

// ParseSvg parses an SVG string.
func ParseSvg(str string) (*Svg, error) {
	return ParseSvgFromReader(strings.NewReader(str))
}

// ParseSvgFromReader parses an SVG document from an io.Reader.
func ParseSvgFromReader(r io.Reader) (*Svg, error) {
	var svg Svg
	if err := xml.NewDecoder(r).Decode(&svg); err != nil {
		return nil, fmt.Errorf("ParseSvg error: %w", err)
	}
	svg.transform = svg.unitTransform()
	return &svg, nil
}

// Layers extracts the document geometry as immutable layers: every
// Inkscape layer group becomes a named layer, in document order; loose
// elements and plain groups fall into the unnamed default layer, which
// comes first when present.
func (s *Svg) Layers() ([]geom.Layer, error) {
	var layers []geom.Layer

	var def geom.Layer
	for _, e := range s.Elements {
		ps, err := e.paths(s.transform)
		if err != nil {
			return nil, err
		}
		def.Paths = append(def.Paths, ps...)
	}
	for _, g := range s.Groups {
		if g.IsLayer() {
			continue
		}
		ps, err := g.paths(s.transform)
		if err != nil {
			return nil, err
		}
		def.Paths = append(def.Paths, ps...)
	}
	if len(def.Paths) > 0 {
		layers = append(layers, def)
	}

	for _, g := range s.Groups {
		if !g.IsLayer() {
			continue
		}
		ps, err := g.paths(s.transform)
		if err != nil {
			return nil, err
		}
		layers = append(layers, geom.Layer{Name: g.LayerName(), Paths: ps})
	}
	return layers, nil
}

// unitTransform converts SVG user units to millimeters using the
// document width/height declaration and the viewBox, defaulting to the
// CSS pixel when the document declares no physical size.
func (s *Svg) unitTransform() mt.Transform {
	t := mt.Identity()

	wmm, wok := parseLength(s.Width)
	vb, vok := parseViewBox(s.ViewBox)
	switch {
	case wok && vok && vb.Width() > 0:
		scale := wmm / vb.Width()
		t[0][0] = scale
		t[1][1] = scale
		t[0][2] = -vb.Min.X * scale
		t[1][2] = -vb.Min.Y * scale
	case wok && !vok:
		// Physical size with no viewBox: user units are px.
		t[0][0] = pxToMM
		t[1][1] = pxToMM
	}
	return t
}

// pxToMM converts CSS pixels (96 dpi) to millimeters.
const pxToMM = 25.4 / 96

// parseLength interprets an SVG length attribute (with optional px, mm,
// cm, in suffix) as millimeters.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	unit := ""
	for _, suffix := range []string{"px", "mm", "cm", "in", "pt"} {
		if strings.HasSuffix(s, suffix) {
			unit = suffix
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	switch unit {
	case "mm":
		return v, true
	case "cm":
		return v * 10, true
	case "in":
		return v * 25.4, true
	case "pt":
		return v * 25.4 / 72, true
	default: // px or bare number
		return v * pxToMM, true
	}
}

func parseViewBox(s string) (geom.Rect, bool) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 4 {
		return geom.Rect{}, false
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geom.Rect{}, false
		}
		vals[i] = v
	}
	return geom.Rect{
		Min: geom.Point{X: vals[0], Y: vals[1]},
		Max: geom.Point{X: vals[0] + vals[2], Y: vals[1] + vals[3]},
	}, true
}
