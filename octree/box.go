package octree

import (
	"github.com/seqsense/pcgol/mat"
)

// Box is an axis aligned box.
type Box struct {
	Min, Max mat.Vec3
}

// IsInside reports whether v lies in the closed box.
func (b Box) IsInside(v mat.Vec3) bool {
	return !(v[0] < b.Min[0] ||
		v[1] < b.Min[1] ||
		v[2] < b.Min[2] ||
		b.Max[0] < v[0] ||
		b.Max[1] < v[1] ||
		b.Max[2] < v[2])
}

// Center returns the middle of the box.
func (b Box) Center() mat.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// cube is a node volume in leaf voxel units: the leaf key of its min
// corner and its height above the leaves. Bounds derived from keys do not
// move when the root grows.
type cube struct {
	key   [3]int64
	level int
}

func (c cube) size() int64 {
	return 1 << c.level
}

func (c cube) box(resolution float64) Box {
	var b Box
	for i := range c.key {
		b.Min[i] = float32(float64(c.key[i]) * resolution)
		b.Max[i] = float32(float64(c.key[i]+c.size()) * resolution)
	}
	return b
}

func (c cube) contains(k [3]int64) bool {
	for i := range k {
		if k[i] < c.key[i] || k[i] >= c.key[i]+c.size() {
			return false
		}
	}
	return true
}

// childIndex returns the octant of k in c, bit 2 for x, 1 for y, 0 for z.
func (c cube) childIndex(k [3]int64) int {
	half := c.size() / 2
	var idx int
	for i := range k {
		idx <<= 1
		if k[i]-c.key[i] >= half {
			idx |= 1
		}
	}
	return idx
}

func (c cube) child(idx int) cube {
	ch := cube{key: c.key, level: c.level - 1}
	for i := 0; i < 3; i++ {
		if idx&(4>>i) != 0 {
			ch.key[i] += ch.size()
		}
	}
	return ch
}
