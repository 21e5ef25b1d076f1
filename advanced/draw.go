package advanced

import (
	"math"

	"github.com/fogleman/gg"
)

// Padding around the mesh, in pixels
const drawPadding = 40

// DrawOptions controls DrawMesh. Zero values are fine.
type DrawOptions struct {
	// Pixels per unit. Zero fits the mesh into 800 pixels on its longer side.
	Scale float64
	// Outline the bounding boxes of internal BVH nodes
	Tree *Node
	// Points to mark. Probes inside a triangle fill that triangle.
	Probes []Point
}

// Draw triangles onto a new image, with the origin at the bottom left.
func DrawMesh(triangles []Triangle, options DrawOptions) *gg.Context {
	bounds := NewAABB()
	for _, t := range triangles {
		bounds = bounds.Union(t.aabb)
	}
	for _, p := range options.Probes {
		bounds = bounds.Union(NewAABB(p))
	}
	if len(triangles) == 0 && len(options.Probes) == 0 {
		bounds = AABB{0, 0, 1, 1}
	}

	scale := options.Scale
	if scale <= 0 {
		extent := math.Max(bounds.Width(), bounds.Height())
		if extent == 0 {
			extent = 1
		}
		scale = 800 / extent
	}

	// Set up the context
	width := int(scale*bounds.Width()) + drawPadding*2
	height := int(scale*bounds.Height()) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(drawPadding, drawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-bounds.MinX, -bounds.MinY)

	// Line widths are in user space, so undo the scale
	pixel := 1 / scale

	var hits []Triangle
	if options.Tree != nil {
		for _, p := range options.Probes {
			if t, ok := options.Tree.Sample(p); ok {
				hits = append(hits, t)
			}
		}
	}

	for _, t := range triangles {
		tracePath(c, t)
		c.SetRGBA(0, 0.5, 0, 0.6)
		c.Fill()
	}
	for _, t := range hits {
		tracePath(c, t)
		c.SetRGBA(1, 0.5, 0, 0.8)
		c.Fill()
	}

	c.SetLineWidth(2 * pixel)
	c.SetRGB(0, 1, 1)
	for _, t := range triangles {
		tracePath(c, t)
		c.Stroke()
	}

	if options.Tree != nil {
		c.SetLineWidth(pixel)
		c.SetRGBA(1, 1, 1, 0.25)
		for node := range IterateNodes(options.Tree) {
			if node.IsLeaf() {
				continue
			}
			c.DrawRectangle(node.aabb.MinX, node.aabb.MinY, node.aabb.Width(), node.aabb.Height())
			c.Stroke()
		}
	}

	c.SetRGB(1, 0, 0)
	for _, p := range options.Probes {
		c.DrawCircle(p.X, p.Y, 3*pixel)
		c.Fill()
	}
	return c
}

func tracePath(c *gg.Context, t Triangle) {
	c.MoveTo(t.A.X, t.A.Y)
	c.LineTo(t.B.X, t.B.Y)
	c.LineTo(t.C.X, t.C.Y)
	c.ClosePath()
}
