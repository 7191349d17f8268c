package surfel

import (
	"image/color"

	"github.com/seqsense/pcgol/mat"

	"github.com/seqsense/surfelmapper/octree"
)

// ScenePoint is a stored surfel. Its index in the scene is its identity.
type ScenePoint struct {
	Position mat.Vec3
	Color    color.NRGBA
}

// NodeIterator walks the nodes of a SpatialIndex depth first.
type NodeIterator interface {
	Valid() bool
	// Next descends into the children, or moves to the next sibling or up.
	Next()
	// SkipSubtree moves to the next node which is not a descendant.
	SkipSubtree()
	Depth() int
	IsLeaf() bool
	// Indices returns the point indices of a leaf.
	Indices() []int
	Bounds() (min, max mat.Vec3)
}

// SpatialIndex is the capability set the mapper needs from the scene index.
type SpatialIndex interface {
	// Add stores index at the position p. It returns false if p cannot be
	// indexed.
	Add(p mat.Vec3, index int) bool
	TreeDepth() int
	VoxelSideLen(depth int) float64
	Walk() NodeIterator
}

// NewOctreeIndex returns a SpatialIndex backed by an octree with the given
// leaf resolution.
func NewOctreeIndex(resolution float64) SpatialIndex {
	return octreeIndex{octree.New(resolution)}
}

type octreeIndex struct {
	*octree.Octree
}

func (o octreeIndex) Walk() NodeIterator {
	return octreeIterator{o.DepthFirst()}
}

type octreeIterator struct {
	*octree.Iterator
}

func (it octreeIterator) Bounds() (mat.Vec3, mat.Vec3) {
	b := it.Iterator.Bounds()
	return b.Min, b.Max
}

// Scene is the append only surfel store and its spatial index.
type Scene struct {
	points []ScenePoint
	index  SpatialIndex
}

// NewScene returns an empty scene using idx.
func NewScene(idx SpatialIndex) *Scene {
	return &Scene{index: idx}
}

// Insert appends p and indexes it. It returns false, storing nothing, if
// the index rejects the position.
func (s *Scene) Insert(p ScenePoint) (int, bool) {
	i := len(s.points)
	if !s.index.Add(p.Position, i) {
		return -1, false
	}
	s.points = append(s.points, p)
	return i, true
}

// Len returns the number of stored points.
func (s *Scene) Len() int {
	return len(s.points)
}

// At returns the point with index i.
func (s *Scene) At(i int) ScenePoint {
	return s.points[i]
}

// Points returns the stored points. The slice must not be modified.
func (s *Scene) Points() []ScenePoint {
	return s.points
}

// Index returns the spatial index of the scene.
func (s *Scene) Index() SpatialIndex {
	return s.index
}
