package advanced

import "math"

// A candidate triangle of the sweep, keyed by the indices of its vertices and
// carrying its circumcircle. Degenerate candidates (collinear vertices) have no
// finite circumcircle, so their center and radius are left at zero and must
// not be read.
type circumcircle struct {
	i, j, k    int
	x, y       float64
	radiusSq   float64
	degenerate bool
}

func (c *circumcircle) triple() Triple {
	return Triple{c.i, c.j, c.k}
}

// Compute the circle through points[i], points[j], points[k] by intersecting
// two perpendicular bisectors. When one of the chords is (nearly) horizontal
// its bisector is vertical, and the center's x coordinate is read off directly
// instead of dividing by a vanishing slope.
func newCircumcircle(points []Point, i, j, k int, epsilon float64) circumcircle {
	x1, y1 := points[i].X, points[i].Y
	x2, y2 := points[j].X, points[j].Y
	x3, y3 := points[k].X, points[k].Y

	y1y2 := math.Abs(y1 - y2)
	y2y3 := math.Abs(y2 - y3)

	var centerX, centerY float64
	switch {
	case y1y2 < epsilon:
		m2 := -(x3 - x2) / (y3 - y2)
		mx2 := (x2 + x3) / 2
		my2 := (y2 + y3) / 2
		centerX = (x2 + x1) / 2
		centerY = m2*(centerX-mx2) + my2
	case y2y3 < epsilon:
		m1 := -(x2 - x1) / (y2 - y1)
		mx1 := (x1 + x2) / 2
		my1 := (y1 + y2) / 2
		centerX = (x3 + x2) / 2
		centerY = m1*(centerX-mx1) + my1
	default:
		m1 := -(x2 - x1) / (y2 - y1)
		m2 := -(x3 - x2) / (y3 - y2)
		mx1 := (x1 + x2) / 2
		mx2 := (x2 + x3) / 2
		my1 := (y1 + y2) / 2
		my2 := (y2 + y3) / 2
		centerX = (m1*mx1 - m2*mx2 + my2 - my1) / (m1 - m2)
		// Use the steeper chord's bisector; it is the better conditioned one
		if y1y2 > y2y3 {
			centerY = m1*(centerX-mx1) + my1
		} else {
			centerY = m2*(centerX-mx2) + my2
		}
	}

	dx := x2 - centerX
	dy := y2 - centerY
	radiusSq := dx*dx + dy*dy

	if !isFinite(centerX) || !isFinite(centerY) || !isFinite(radiusSq) {
		return circumcircle{i: i, j: j, k: k, degenerate: true}
	}
	return circumcircle{i: i, j: j, k: k, x: centerX, y: centerY, radiusSq: radiusSq}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
