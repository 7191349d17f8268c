package surfel

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/seqsense/pcgol/mat"
)

func TestDownsample(t *testing.T) {
	rgba := func(r, g, b, a uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: a} }
	gray := func(v uint8) color.NRGBA { return rgba(v, v, v, 255) }
	testCases := map[string]struct {
		points     []ScenePoint
		resolution float64
		expected   []ScenePoint
	}{
		"Empty": {
			resolution: 0.2,
		},
		"SingleLeaf": {
			points: []ScenePoint{
				{Position: mat.Vec3{0.05, 0.05, 0.05}, Color: rgba(10, 20, 30, 40)},
				{Position: mat.Vec3{0.1, 0.1, 0.1}, Color: rgba(20, 30, 40, 50)},
				{Position: mat.Vec3{0.15, 0.15, 0.15}, Color: rgba(30, 40, 50, 60)},
			},
			resolution: 0.2,
			expected: []ScenePoint{
				{Position: mat.Vec3{0.1, 0.1, 0.1}, Color: rgba(20, 30, 40, 255)},
			},
		},
		"StridedAcrossLeaves": {
			points: []ScenePoint{
				// Leaf 1: six points, every second one sampled.
				{Position: mat.Vec3{0.05, 0.05, 0.05}, Color: gray(10)},
				{Position: mat.Vec3{0.05, 0.05, 0.05}, Color: gray(200)},
				{Position: mat.Vec3{0.05, 0.05, 0.05}, Color: gray(20)},
				{Position: mat.Vec3{0.05, 0.05, 0.05}, Color: gray(200)},
				{Position: mat.Vec3{0.05, 0.05, 0.05}, Color: gray(30)},
				{Position: mat.Vec3{0.05, 0.05, 0.05}, Color: gray(200)},
				// Leaf 2 in the same preview voxel.
				{Position: mat.Vec3{0.25, 0.05, 0.05}, Color: gray(41)},
				// Another preview voxel.
				{Position: mat.Vec3{0.5, 0.5, 0.5}, Color: gray(7)},
			},
			resolution: 0.4,
			expected: []ScenePoint{
				{Position: mat.Vec3{0.2, 0.2, 0.2}, Color: gray(25)},
				{Position: mat.Vec3{0.6, 0.6, 0.6}, Color: gray(7)},
			},
		},
		"UniformColor": {
			points: []ScenePoint{
				{Position: mat.Vec3{0.05, 0.05, 0.05}, Color: rgba(13, 57, 211, 99)},
				{Position: mat.Vec3{0.06, 0.05, 0.05}, Color: rgba(13, 57, 211, 99)},
				{Position: mat.Vec3{0.25, 0.25, 0.05}, Color: rgba(13, 57, 211, 99)},
				{Position: mat.Vec3{0.35, 0.05, 0.35}, Color: rgba(13, 57, 211, 99)},
				{Position: mat.Vec3{0.5, 0.5, 0.5}, Color: rgba(13, 57, 211, 99)},
			},
			resolution: 0.4,
			expected: []ScenePoint{
				{Position: mat.Vec3{0.2, 0.2, 0.2}, Color: rgba(13, 57, 211, 255)},
				{Position: mat.Vec3{0.6, 0.6, 0.6}, Color: rgba(13, 57, 211, 255)},
			},
		},
		"CoarseResolutionUsesDepthOne": {
			points: []ScenePoint{
				{Position: mat.Vec3{0.05, 0.05, 0.05}, Color: gray(100)},
				{Position: mat.Vec3{0.5, 0.5, 0.5}, Color: gray(200)},
			},
			resolution: 10,
			expected: []ScenePoint{
				{Position: mat.Vec3{0.2, 0.2, 0.2}, Color: gray(100)},
				{Position: mat.Vec3{0.6, 0.6, 0.6}, Color: gray(200)},
			},
		},
		"FineResolutionUsesLeaves": {
			points: []ScenePoint{
				{Position: mat.Vec3{0.05, 0.05, 0.05}, Color: gray(100)},
				{Position: mat.Vec3{0.25, 0.05, 0.05}, Color: gray(200)},
				{Position: mat.Vec3{0.5, 0.5, 0.5}, Color: gray(50)},
			},
			resolution: 0.01,
			expected: []ScenePoint{
				{Position: mat.Vec3{0.1, 0.1, 0.1}, Color: gray(100)},
				{Position: mat.Vec3{0.3, 0.1, 0.1}, Color: gray(200)},
				{Position: mat.Vec3{0.5, 0.5, 0.5}, Color: gray(50)},
			},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			s := NewScene(NewOctreeIndex(0.2))
			for _, p := range tt.points {
				if _, ok := s.Insert(p); !ok {
					t.Fatalf("Point %v must be inserted", p.Position)
				}
			}
			out := downsample(s, tt.resolution, 3)
			if diff := cmp.Diff(tt.expected, out, cmpopts.EquateApprox(0, 1e-6), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Preview differs (-expected +got):\n%s", diff)
			}
		})
	}
}

type emptyLeafIterator struct {
	done bool
}

func (it *emptyLeafIterator) Valid() bool                  { return !it.done }
func (it *emptyLeafIterator) Next()                        { it.done = true }
func (it *emptyLeafIterator) SkipSubtree()                 { it.done = true }
func (it *emptyLeafIterator) Depth() int                   { return 1 }
func (it *emptyLeafIterator) IsLeaf() bool                 { return true }
func (it *emptyLeafIterator) Indices() []int               { return nil }
func (it *emptyLeafIterator) Bounds() (mat.Vec3, mat.Vec3) { return mat.Vec3{}, mat.Vec3{1, 1, 1} }

func TestAverageColor_NoSamples(t *testing.T) {
	it := &emptyLeafIterator{}
	if c := averageColor(it, nil, 3); c != white {
		t.Errorf("Color without samples must be opaque white, got: %v", c)
	}
	if it.Valid() {
		t.Error("Subtree must be consumed")
	}
}
