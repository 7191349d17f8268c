package surfel

import (
	"math"

	"github.com/seqsense/surfelmapper/frustum"
)

// traverse walks the scene index, culling subtrees outside the view
// frustum, and matches the points of the remaining leaves.
func (m *Mapper) traverse(vf *viewFrame, st *Stats) {
	// Nodes deeper than acceptBelow belong to a subtree found entirely
	// inside the frustum.
	acceptBelow := math.MaxInt
	for it := m.scene.index.Walk(); it.Valid(); {
		st.NodesVisited++
		d := it.Depth()
		if d <= acceptBelow {
			acceptBelow = math.MaxInt
		}

		res := frustum.Inside
		if d <= acceptBelow {
			min, max := it.Bounds()
			res = vf.Frustum.CullBox(min, max)
			if res == frustum.Inside {
				acceptBelow = d
			}
		}
		if res == frustum.Outside {
			it.SkipSubtree()
			continue
		}
		if it.IsLeaf() {
			for _, i := range it.Indices() {
				m.match(&m.scene.points[i], vf, st)
			}
		}
		it.Next()
	}
}
