package surfel

import (
	"image/color"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// displayDepth returns the shallowest depth below the root whose voxels are
// not larger than resolution, or the leaf depth.
func displayDepth(idx SpatialIndex, resolution float64) int {
	depth := idx.TreeDepth()
	for d := 1; d <= depth; d++ {
		if idx.VoxelSideLen(d) <= resolution {
			return d
		}
	}
	return depth
}

// downsample emits one point per index node at the display depth, placed at
// the node center and colored by the average of up to samples points per
// leaf below it.
func downsample(s *Scene, resolution float64, samples int) []ScenePoint {
	depth := displayDepth(s.index, resolution)
	var out []ScenePoint
	it := s.index.Walk()
	for it.Valid() {
		if it.Depth() != depth {
			it.Next()
			continue
		}
		min, max := it.Bounds()
		out = append(out, ScenePoint{
			Position: min.Add(max).Mul(0.5),
			Color:    averageColor(it, s.points, samples),
		})
	}
	return out
}

// averageColor consumes the subtree at the current node of it. The result
// is opaque.
func averageColor(it NodeIterator, points []ScenePoint, samples int) color.NRGBA {
	var r, g, b, n uint64
	start := it.Depth()
	for first := true; it.Valid() && (first || it.Depth() > start); first = false {
		if it.IsLeaf() {
			idx := it.Indices()
			step := max(len(idx)/samples, 1)
			for k := 0; k < len(idx); k += step {
				c := points[idx[k]].Color
				r += uint64(c.R)
				g += uint64(c.G)
				b += uint64(c.B)
				n++
			}
		}
		it.Next()
	}
	if n == 0 {
		return white
	}
	return color.NRGBA{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(b / n),
		A: 255,
	}
}
