package svg

import "math"

// arcSegments converts an SVG endpoint-parameterized elliptical arc into
// cubic Bezier segments, one per quarter turn at most. The conversion
// follows the W3C endpoint-to-center mapping (SVG 1.1, F.6.5); radii too
// small to span the endpoints are scaled up as SVG 1.1 requires.
//
// The returned groups are (control1, control2, end) tuples in user space.
func arcSegments(x1, y1, x2, y2, rx, ry, phiDeg float64, largeArc, sweep bool) [][3]Tuple {
	if rx == 0 || ry == 0 || (x1 == x2 && y1 == y2) {
		// A zero radius collapses the arc to a line per SVG 1.1; emit
		// a degenerate cubic along the chord.
		return [][3]Tuple{{
			{x1 + (x2-x1)/3, y1 + (y2-y1)/3},
			{x1 + 2*(x2-x1)/3, y1 + 2*(y2-y1)/3},
			{x2, y2},
		}}
	}
	rx, ry = math.Abs(rx), math.Abs(ry)

	phi := phiDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	// Step 1: half-chord in the ellipse frame.
	dx2 := (x1 - x2) / 2
	dy2 := (y1 - y2) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// Step 2: scale radii up if the endpoints cannot be spanned.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 3: center in the ellipse frame.
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := math.Sqrt(math.Max(0, num/den))
	if largeArc == sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx

	// Step 4: center and angles in user space.
	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	delta := theta2 - theta1
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := delta / float64(n)

	// Cubic approximation of one elliptical sweep of angle `step`.
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	point := func(theta float64) (float64, float64) {
		px := rx * math.Cos(theta)
		py := ry * math.Sin(theta)
		return cx + cosPhi*px - sinPhi*py, cy + sinPhi*px + cosPhi*py
	}
	derivative := func(theta float64) (float64, float64) {
		px := -rx * math.Sin(theta)
		py := ry * math.Cos(theta)
		return cosPhi*px - sinPhi*py, sinPhi*px + cosPhi*py
	}

	segs := make([][3]Tuple, 0, n)
	for i := 0; i < n; i++ {
		ta := theta1 + float64(i)*step
		tb := ta + step

		ax, ay := point(ta)
		dax, day := derivative(ta)
		var bx, by float64
		if i == n-1 {
			// Land exactly on the declared end point.
			bx, by = x2, y2
		} else {
			bx, by = point(tb)
		}
		dbx, dby := derivative(tb)

		segs = append(segs, [3]Tuple{
			{ax + alpha*dax, ay + alpha*day},
			{bx - alpha*dbx, by - alpha*dby},
			{bx, by},
		})
	}
	return segs
}
