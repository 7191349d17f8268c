package octree

type frame struct {
	node  int32
	depth int
	cube  cube
}

// Iterator walks the nodes depth first in pre-order, children in octant
// order.
type Iterator struct {
	t     *Octree
	stack []frame
}

// DepthFirst returns an iterator positioned at the root.
// It is invalid for an empty tree.
func (t *Octree) DepthFirst() *Iterator {
	it := &Iterator{t: t}
	if len(t.nodes) > 0 {
		it.stack = append(it.stack, frame{node: 0, depth: 0, cube: t.root})
	}
	return it
}

// Valid returns false after the last node.
func (it *Iterator) Valid() bool {
	return len(it.stack) > 0
}

// Next moves to the first child, or to the next node outside this subtree.
func (it *Iterator) Next() {
	cur := it.pop()
	if cur.depth == it.t.depth {
		return
	}
	n := &it.t.nodes[cur.node]
	for i := len(n.children) - 1; i >= 0; i-- {
		if ch := n.children[i]; ch != noNode {
			it.stack = append(it.stack, frame{
				node:  ch,
				depth: cur.depth + 1,
				cube:  cur.cube.child(i),
			})
		}
	}
}

// SkipSubtree moves past all descendants of the current node.
func (it *Iterator) SkipSubtree() {
	it.pop()
}

// Depth returns the depth of the current node.
func (it *Iterator) Depth() int {
	return it.top().depth
}

// IsLeaf reports whether the current node is a leaf.
func (it *Iterator) IsLeaf() bool {
	return it.top().depth == it.t.depth
}

// Indices returns the point indices of the current leaf, nil for branches.
// The slice is owned by the tree.
func (it *Iterator) Indices() []int {
	return it.t.nodes[it.top().node].indices
}

// Bounds returns the volume of the current node.
func (it *Iterator) Bounds() Box {
	return it.top().cube.box(it.t.resolution)
}

func (it *Iterator) top() frame {
	return it.stack[len(it.stack)-1]
}

func (it *Iterator) pop() frame {
	f := it.top()
	it.stack = it.stack[:len(it.stack)-1]
	return f
}
