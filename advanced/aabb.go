package advanced

import (
	"fmt"
	"math"
)

// AABB is an axis aligned bounding box. It is always derived from the geometry
// that owns it and never edited afterwards.
type AABB struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Tight bounding box of the given points. With no points, the result is
// inverted (min at +Inf, max at -Inf), which is the identity for Union.
func NewAABB(points ...Point) AABB {
	box := AABB{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
	for _, p := range points {
		box.MinX = math.Min(box.MinX, p.X)
		box.MinY = math.Min(box.MinY, p.Y)
		box.MaxX = math.Max(box.MaxX, p.X)
		box.MaxY = math.Max(box.MaxY, p.Y)
	}
	return box
}

func (a AABB) Union(b AABB) AABB {
	return AABB{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// ContainsStrict reports whether p is in the open interior of the box. Points
// on the boundary are outside. This is the test used to prune BVH queries.
func (a AABB) ContainsStrict(p Point) bool {
	return a.MinX < p.X && a.MinY < p.Y && a.MaxX > p.X && a.MaxY > p.Y
}

// Contains is the inclusive version of ContainsStrict.
func (a AABB) Contains(p Point) bool {
	return a.MinX <= p.X && a.MinY <= p.Y && a.MaxX >= p.X && a.MaxY >= p.Y
}

func (a AABB) Width() float64 {
	return a.MaxX - a.MinX
}

func (a AABB) Height() float64 {
	return a.MaxY - a.MinY
}

func (a AABB) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", a.MinX, a.MaxX, a.MinY, a.MaxY)
}
