package advanced

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/meshindex/dbg"
)

// Write an indented outline of the tree, one node per line. Node names come
// from dbg.Name, so they are only meaningful within one process. Leaves are
// green, internal nodes cyan, and leaves holding zero area triangles red.
func (n *Node) Dump(w io.Writer) error {
	type entry struct {
		node  *Node
		depth int
	}
	stack := []entry{{n, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		indent := strings.Repeat("  ", e.depth)
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, e.node.String()); err != nil {
			return err
		}
		if !e.node.IsLeaf() {
			stack = append(stack, entry{e.node.right, e.depth + 1}, entry{e.node.left, e.depth + 1})
		}
	}
	return nil
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("Leaf %s %s %s", n.DbgName(), n.aabb, n.triangle)
	}
	return fmt.Sprintf("Node %s %s <L: %s, R: %s>",
		n.DbgName(),
		n.aabb,
		dbg.Name(n.left),
		dbg.Name(n.right),
	)
}

func (n *Node) DbgName() string {
	name := dbg.Name(n)
	switch {
	case !n.IsLeaf():
		name = aurora.Cyan(name).String()
	case n.triangle.SignedArea2() == 0:
		name = aurora.Red(name).String()
	default:
		name = aurora.Green(name).String()
	}
	return name
}
