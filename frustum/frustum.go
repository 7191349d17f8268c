// Package frustum extracts view frustum planes from a view-projection matrix
// and classifies axis aligned boxes against them.
package frustum

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

// Plane is a*x + b*y + c*z + d with the visible side non-negative.
type Plane [4]float64

// Distance returns the signed distance scaled by the plane normal length.
func (p Plane) Distance(v mat.Vec3) float64 {
	return p[0]*float64(v[0]) + p[1]*float64(v[1]) + p[2]*float64(v[2]) + p[3]
}

// Plane order in Frustum.
const (
	Left = iota
	Right
	Bottom
	Top
	Near
	Far
)

// Frustum is the set of six clipping planes.
type Frustum [6]Plane

// Result is a box classification.
type Result int

const (
	Outside Result = iota
	Intersect
	Inside
)

func (r Result) String() string {
	switch r {
	case Outside:
		return "outside"
	case Intersect:
		return "intersect"
	case Inside:
		return "inside"
	}
	return "unknown"
}

// FromMatrix returns the planes of the clip volume of m.
// Plane i is the transpose of m applied to the clip space plane whose
// normal is +1 or -1 along axis i/2.
func FromMatrix(m mat.Mat4) Frustum {
	at := func(r, c int) float64 { return float64(m[4*c+r]) }
	var f Frustum
	for i := range f {
		axis := i / 2
		sign := float64(1 - (i%2)*2)
		for k := 0; k < 4; k++ {
			f[i][k] = sign*at(axis, k) + at(3, k)
		}
	}
	return f
}

// Contains reports whether v is on the visible side of every plane.
func (f *Frustum) Contains(v mat.Vec3) bool {
	for _, p := range f {
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}

// CullBox classifies the box spanned by min and max.
func (f *Frustum) CullBox(min, max mat.Vec3) Result {
	var c, r [3]float64
	for i := range c {
		c[i] = (float64(min[i]) + float64(max[i])) / 2
		r[i] = (float64(max[i]) - float64(min[i])) / 2
	}
	res := Inside
	for _, p := range f {
		m := p[0]*c[0] + p[1]*c[1] + p[2]*c[2] + p[3]
		n := r[0]*math.Abs(p[0]) + r[1]*math.Abs(p[1]) + r[2]*math.Abs(p[2])
		if m+n < 0 {
			return Outside
		}
		if m-n < 0 {
			res = Intersect
		}
	}
	return res
}
