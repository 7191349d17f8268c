package frustum

import (
	"testing"

	"github.com/seqsense/pcgol/mat"
)

var identity = mat.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

func TestFromMatrix(t *testing.T) {
	f := FromMatrix(identity)
	expected := Frustum{
		Left:   {1, 0, 0, 1},
		Right:  {-1, 0, 0, 1},
		Bottom: {0, 1, 0, 1},
		Top:    {0, -1, 0, 1},
		Near:   {0, 0, 1, 1},
		Far:    {0, 0, -1, 1},
	}
	if f != expected {
		t.Errorf("Planes of the unit clip volume must be extracted, expected: %v, got: %v", expected, f)
	}
}

func TestFrustum_CullBox(t *testing.T) {
	f := FromMatrix(identity)
	testCases := map[string]struct {
		min, max mat.Vec3
		expected Result
	}{
		"Inside": {
			min:      mat.Vec3{-0.5, -0.5, -0.5},
			max:      mat.Vec3{0.5, 0.5, 0.5},
			expected: Inside,
		},
		"TouchingFromInside": {
			min:      mat.Vec3{-1, -1, -1},
			max:      mat.Vec3{1, 1, 1},
			expected: Inside,
		},
		"Outside": {
			min:      mat.Vec3{2, 0, 0},
			max:      mat.Vec3{3, 0.5, 0.5},
			expected: Outside,
		},
		"OutsideBehind": {
			min:      mat.Vec3{-0.5, -0.5, -4},
			max:      mat.Vec3{0.5, 0.5, -2},
			expected: Outside,
		},
		"Straddling": {
			min:      mat.Vec3{0.5, 0.5, 0.5},
			max:      mat.Vec3{1.5, 0.7, 0.7},
			expected: Intersect,
		},
		"Enclosing": {
			min:      mat.Vec3{-2, -2, -2},
			max:      mat.Vec3{2, 2, 2},
			expected: Intersect,
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if res := f.CullBox(tt.min, tt.max); res != tt.expected {
				t.Errorf("Box must be %v, got: %v", tt.expected, res)
			}
		})
	}
}

func TestFrustum_Contains(t *testing.T) {
	f := FromMatrix(identity)
	if !f.Contains(mat.Vec3{0.9, -0.9, 0}) {
		t.Error("Point inside the volume must be contained")
	}
	if f.Contains(mat.Vec3{0, 0, 1.1}) {
		t.Error("Point beyond the far plane must not be contained")
	}
}
