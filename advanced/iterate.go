package advanced

// A node iterator lets you loop over the nodes of a tree exactly once, parents
// before children and left subtrees before right subtrees. Trees never share
// nodes, so unlike a general graph walk there is no need to track visited
// nodes.
type NodeIterator struct {
	stack []*Node
}

func NewNodeIterator(root *Node) *NodeIterator {
	return &NodeIterator{[]*Node{root}}
}

// Loop over every node of the tree through a channel. The channel must be
// drained, or the goroutine feeding it leaks.
func IterateNodes(root *Node) chan *Node {
	return NewNodeIterator(root).MakeChan()
}

func (iter *NodeIterator) MakeChan() chan *Node {
	ch := make(chan *Node)
	go func() {
		for {
			node := iter.Next()
			if node == nil {
				break
			}
			ch <- node
		}
		close(ch)
	}()
	return ch
}

// Next node, or nil when the walk is over.
func (iter *NodeIterator) Next() *Node {
	if len(iter.stack) == 0 {
		return nil
	}
	node := iter.stack[len(iter.stack)-1]
	iter.stack = iter.stack[:len(iter.stack)-1]

	if !node.IsLeaf() {
		iter.stack = append(iter.stack, node.right, node.left)
	}
	return node
}
