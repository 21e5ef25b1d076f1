package advanced

import (
	"time"

	"go.uber.org/zap"
)

// Node is a node of a bounding volume hierarchy over triangles. A leaf owns
// exactly one triangle; an internal node owns exactly two children and bounds
// both of them. Trees are never modified after they are built, so any number
// of goroutines may query one concurrently.
type Node struct {
	aabb     AABB
	triangle *Triangle
	left     *Node
	right    *Node
}

type TreeStats struct {
	Nodes  int
	Leaves int
	// Number of nodes on the longest root to leaf path
	Depth int
}

// TreeBuilder builds BVHs. The zero value is ready to use.
type TreeBuilder struct {
	// Optional. Receives one debug line per build.
	Logger *zap.Logger
}

// BuildTree with the default settings.
func BuildTree(triangles []Triangle) *Node {
	return (&TreeBuilder{}).Build(triangles)
}

type buildTask struct {
	node      *Node
	triangles []Triangle
}

// Build a tree over the triangles, which must not be empty. The input slice is
// not modified.
//
// Each internal node splits its triangles at the mean centroid coordinate
// along the axis where the centroids are most spread out. The split runs off an
// explicit stack rather than recursion, since a degenerate input can make the
// tree as deep as it has triangles.
func (b *TreeBuilder) Build(triangles []Triangle) *Node {
	if len(triangles) == 0 {
		fatalf("cannot build a tree from zero triangles")
	}
	start := time.Now()

	root := &Node{}
	stack := []buildTask{{root, triangles}}
	// Internal nodes in creation order. A node's children are always created
	// after it, so walking this backwards visits children before parents.
	var internals []*Node

	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(task.triangles) == 1 {
			triangle := task.triangles[0]
			task.node.triangle = &triangle
			task.node.aabb = triangle.aabb
			continue
		}

		left, right := splitTriangles(task.triangles)
		task.node.left = &Node{}
		task.node.right = &Node{}
		internals = append(internals, task.node)
		stack = append(stack,
			buildTask{task.node.right, right},
			buildTask{task.node.left, left},
		)
	}

	for i := len(internals) - 1; i >= 0; i-- {
		node := internals[i]
		node.aabb = node.left.aabb.Union(node.right.aabb)
	}

	if b.Logger != nil {
		stats := root.Stats()
		b.Logger.Debug("built tree",
			zap.Int("triangles", len(triangles)),
			zap.Int("nodes", stats.Nodes),
			zap.Int("depth", stats.Depth),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return root
}

// Partition triangles into two non-empty halves. The threshold is the mean,
// not the median, of the centroid coordinates on the split axis.
func splitTriangles(triangles []Triangle) (left, right []Triangle) {
	centers := NewAABB()
	var sumX, sumY float64
	for _, t := range triangles {
		centers = centers.Union(AABB{t.center.X, t.center.Y, t.center.X, t.center.Y})
		sumX += t.center.X
		sumY += t.center.Y
	}

	splitOnX := centers.Width() > centers.Height()
	threshold := sumY / float64(len(triangles))
	if splitOnX {
		threshold = sumX / float64(len(triangles))
	}

	for _, t := range triangles {
		v := t.center.Y
		if splitOnX {
			v = t.center.X
		}
		if v < threshold {
			left = append(left, t)
		} else {
			right = append(right, t)
		}
	}

	// All centroids on one side (e.g. they coincide). Move one over so that
	// both halves shrink.
	if len(left) == 0 {
		left = append(left, right[len(right)-1])
		right = right[:len(right)-1]
	} else if len(right) == 0 {
		right = append(right, left[len(left)-1])
		left = left[:len(left)-1]
	}
	return left, right
}

// Sample returns the triangle containing p, as decided by
// Triangle.ContainsPoint. Points outside every triangle give false.
//
// Both children of an internal node are searched, because nothing guarantees
// that the triangles do not overlap. If both report a hit, the triangle with
// the centroid closer to p wins, and the right child wins a tie.
func (n *Node) Sample(p Point) (Triangle, bool) {
	if !n.aabb.ContainsStrict(p) {
		return Triangle{}, false
	}

	if n.triangle != nil {
		if n.triangle.ContainsPoint(p) {
			return *n.triangle, true
		}
		return Triangle{}, false
	}

	leftHit, leftOK := n.left.Sample(p)
	rightHit, rightOK := n.right.Sample(p)
	switch {
	case leftOK && rightOK:
		if leftHit.center.DistanceSq(p) < rightHit.center.DistanceSq(p) {
			return leftHit, true
		}
		return rightHit, true
	case leftOK:
		return leftHit, true
	case rightOK:
		return rightHit, true
	}
	return Triangle{}, false
}

func (n *Node) IsLeaf() bool {
	return n.triangle != nil
}

func (n *Node) AABB() AABB {
	return n.aabb
}

// Triangle of a leaf. Panics on an internal node.
func (n *Node) Triangle() Triangle {
	if n.triangle == nil {
		fatalf("internal node has no triangle")
	}
	return *n.triangle
}

func (n *Node) Left() *Node {
	return n.left
}

func (n *Node) Right() *Node {
	return n.right
}

func (n *Node) Stats() TreeStats {
	var stats TreeStats
	type entry struct {
		node  *Node
		depth int
	}
	stack := []entry{{n, 1}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stats.Nodes++
		if e.depth > stats.Depth {
			stats.Depth = e.depth
		}
		if e.node.IsLeaf() {
			stats.Leaves++
			continue
		}
		stack = append(stack, entry{e.node.right, e.depth + 1}, entry{e.node.left, e.depth + 1})
	}
	return stats
}

// All triangles in the tree, left to right.
func (n *Node) Triangles() []Triangle {
	var result []Triangle
	for node := range IterateNodes(n) {
		if node.IsLeaf() {
			result = append(result, *node.triangle)
		}
	}
	return result
}
