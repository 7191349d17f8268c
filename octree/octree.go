// Package octree implements an append only point index with a fixed leaf
// resolution whose root grows to cover any inserted point.
package octree

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

const noNode = -1

type node struct {
	children [8]int32
	indices  []int
}

func newNode() node {
	n := node{}
	for i := range n.children {
		n.children[i] = noNode
	}
	return n
}

// Octree stores point indices in leaf voxels of side Resolution.
// Leaves exist only at TreeDepth; the root is depth 0.
type Octree struct {
	resolution float64
	depth      int
	root       cube
	nodes      []node
	size       int
}

// New returns an empty octree with the given leaf side length.
func New(resolution float64) *Octree {
	return &Octree{resolution: resolution}
}

// Resolution returns the leaf side length.
func (t *Octree) Resolution() float64 {
	return t.resolution
}

// Len returns the number of stored indices.
func (t *Octree) Len() int {
	return t.size
}

// TreeDepth returns the depth of the leaves, 0 when empty.
func (t *Octree) TreeDepth() int {
	return t.depth
}

// VoxelSideLen returns the side length of the nodes at depth.
func (t *Octree) VoxelSideLen(depth int) float64 {
	return t.resolution * math.Ldexp(1, t.depth-depth)
}

// Bounds returns the root volume.
func (t *Octree) Bounds() Box {
	return t.root.box(t.resolution)
}

// maxKey bounds leaf keys well inside int64 so that growth cannot overflow.
const maxKey = 1 << 52

// leafKey returns the key of the leaf voxel containing q, with
// key*resolution <= q < (key+1)*resolution holding in float64.
func (t *Octree) leafKey(q float64) (int64, bool) {
	f := math.Floor(q / t.resolution)
	if math.IsNaN(f) || math.Abs(f) > maxKey {
		return 0, false
	}
	k := int64(f)
	if float64(k)*t.resolution > q {
		k--
	} else if float64(k+1)*t.resolution <= q {
		k++
	}
	return k, true
}

// Add stores index at the leaf containing p.
// Non-finite points are rejected.
func (t *Octree) Add(p mat.Vec3, index int) bool {
	var k [3]int64
	for i, v := range p {
		var ok bool
		if k[i], ok = t.leafKey(float64(v)); !ok {
			return false
		}
	}
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, newNode())
		t.depth = 1
		t.root = cube{key: k, level: 1}
	}
	for !t.root.contains(k) {
		t.grow(k)
	}

	cur := int32(0)
	c := t.root
	for d := 0; d < t.depth; d++ {
		idx := c.childIndex(k)
		c = c.child(idx)
		next := t.nodes[cur].children[idx]
		if next == noNode {
			next = int32(len(t.nodes))
			t.nodes = append(t.nodes, newNode())
			t.nodes[cur].children[idx] = next
		}
		cur = next
	}
	t.nodes[cur].indices = append(t.nodes[cur].indices, index)
	t.size++
	return true
}

// grow doubles the root toward p. The root node is always nodes[0], so the
// old root is moved to a new slot and becomes a child.
func (t *Octree) grow(k [3]int64) {
	var idx int
	next := t.root
	for i := range k {
		idx <<= 1
		if k[i] < t.root.key[i] {
			next.key[i] -= t.root.size()
			idx |= 1
		}
	}
	next.level++

	moved := int32(len(t.nodes))
	t.nodes = append(t.nodes, t.nodes[0])
	t.nodes[0] = newNode()
	t.nodes[0].children[idx] = moved

	t.root = next
	t.depth++
}
