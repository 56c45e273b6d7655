package gcode

import "github.com/vasalvit/svg2gcode/geom"

// selectLayers filters layers by name. The match is a case-sensitive
// exact comparison; an empty name selects every layer. Relative layer
// order is always preserved. A filter that matches nothing is not an
// error: the run degrades to an empty stream with a selection warning so
// that multi-run pipelines can proceed independently.
func selectLayers(layers []geom.Layer, name string) (selected []geom.Layer, warns []Warning) {
	if name == "" {
		return layers, nil
	}
	for _, l := range layers {
		if l.Name == name {
			selected = append(selected, l)
		}
	}
	if len(selected) == 0 {
		warns = append(warns, warnf(SelectionWarning,
			"layer %q matched no layer in the document", name))
	}
	return selected, warns
}
