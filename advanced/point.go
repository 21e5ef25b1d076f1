package advanced

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used by the triangulator when deciding whether a
// point falls on a circumcircle, and when the circumcenter computation needs to
// avoid dividing by a near-zero slope.
const Epsilon = 1e-5

type Point struct {
	X float64
	Y float64
}

// Triple holds three indices into the point slice a mesh was built from.
type Triple [3]int

func (p Point) vec() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

// Squared euclidean distance between two points.
func (p Point) DistanceSq(other Point) float64 {
	d := p.vec().Sub(other.vec())
	return d.Dot(d)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Cross product of (b - a) and (p - a). Positive when p is to the left of the
// directed line a→b.
func cross(a, b, p Point) float64 {
	ab := b.vec().Sub(a.vec())
	ap := p.vec().Sub(a.vec())
	return ab.X()*ap.Y() - ab.Y()*ap.X()
}
