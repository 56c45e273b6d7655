package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	mt "github.com/rustyoz/Mtransform"
)

// parseTransform interprets an SVG transform attribute: a whitespace or
// comma separated list of translate/scale/rotate/matrix operations,
// composed left to right.
func parseTransform(ts string) (mt.Transform, error) {
	t := mt.Identity()
	ts = strings.TrimSpace(ts)
	for ts != "" {
		open := strings.IndexByte(ts, '(')
		end := strings.IndexByte(ts, ')')
		if open < 0 || end < open {
			return t, fmt.Errorf("malformed transform %q", ts)
		}
		name := strings.Trim(ts[:open], " ,\t\n")
		args, err := parseTransformArgs(ts[open+1 : end])
		if err != nil {
			return t, fmt.Errorf("transform %s: %w", name, err)
		}

		op, err := transformOp(name, args)
		if err != nil {
			return t, err
		}
		t = mt.MultiplyTransforms(t, op)

		ts = strings.TrimSpace(ts[end+1:])
	}
	return t, nil
}

func transformOp(name string, a []float64) (mt.Transform, error) {
	op := mt.Identity()
	switch name {
	case "translate":
		if len(a) < 1 || len(a) > 2 {
			return op, fmt.Errorf("translate expects 1 or 2 arguments, got %d", len(a))
		}
		op[0][2] = a[0]
		if len(a) == 2 {
			op[1][2] = a[1]
		}
	case "scale":
		if len(a) < 1 || len(a) > 2 {
			return op, fmt.Errorf("scale expects 1 or 2 arguments, got %d", len(a))
		}
		op[0][0] = a[0]
		op[1][1] = a[0]
		if len(a) == 2 {
			op[1][1] = a[1]
		}
	case "rotate":
		if len(a) != 1 && len(a) != 3 {
			return op, fmt.Errorf("rotate expects 1 or 3 arguments, got %d", len(a))
		}
		rad := a[0] * math.Pi / 180
		sin, cos := math.Sin(rad), math.Cos(rad)
		op[0][0] = cos
		op[0][1] = -sin
		op[1][0] = sin
		op[1][1] = cos
		if len(a) == 3 {
			// rotate about (cx, cy): translate, rotate, translate back
			pre := mt.Identity()
			pre[0][2] = a[1]
			pre[1][2] = a[2]
			post := mt.Identity()
			post[0][2] = -a[1]
			post[1][2] = -a[2]
			op = mt.MultiplyTransforms(mt.MultiplyTransforms(pre, op), post)
		}
	case "matrix":
		if len(a) != 6 {
			return op, fmt.Errorf("matrix expects 6 arguments, got %d", len(a))
		}
		op[0][0] = a[0]
		op[1][0] = a[1]
		op[0][1] = a[2]
		op[1][1] = a[3]
		op[0][2] = a[4]
		op[1][2] = a[5]
	default:
		return op, fmt.Errorf("unsupported transform %q", name)
	}
	return op, nil
}

func parseTransformArgs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	args := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad argument %q", f)
		}
		args = append(args, v)
	}
	return args, nil
}

// composeTransform applies an element's transform attribute on top of
// its parent transform.
func composeTransform(parent mt.Transform, attr string) (mt.Transform, error) {
	if strings.TrimSpace(attr) == "" {
		return parent, nil
	}
	own, err := parseTransform(attr)
	if err != nil {
		return parent, err
	}
	return mt.MultiplyTransforms(parent, own), nil
}

// applyTo maps a coordinate pair through a transform.
func applyTo(t mt.Transform, x, y float64) (float64, float64) {
	return t.Apply(x, y)
}
