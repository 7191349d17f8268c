package camera

import (
	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"gonum.org/v1/gonum/num/quat"
)

// Identity is the identity pose.
var Identity = mat.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// PoseFromQuaternion returns the sensor to world transform of a sensor at t
// oriented by q. q is normalized; a zero quaternion means no rotation.
func PoseFromQuaternion(t mat.Vec3, q quat.Number) mat.Mat4 {
	n := quat.Abs(q)
	if n == 0 {
		q = quat.Number{Real: 1}
	} else {
		q = quat.Scale(1/n, q)
	}
	rotate := func(x, y, z float64) mat.Vec3 {
		r := quat.Mul(quat.Mul(q, quat.Number{Imag: x, Jmag: y, Kmag: z}), quat.Conj(q))
		return mat.Vec3{float32(r.Imag), float32(r.Jmag), float32(r.Kmag)}
	}
	ex := rotate(1, 0, 0)
	ey := rotate(0, 1, 0)
	ez := rotate(0, 0, 1)
	return mat.Mat4{
		ex[0], ex[1], ex[2], 0,
		ey[0], ey[1], ey[2], 0,
		ez[0], ez[1], ez[2], 0,
		t[0], t[1], t[2], 1,
	}
}

// PoseFromViewpoint converts a PCD VIEWPOINT (tx ty tz qw qx qy qz).
// An empty viewpoint is the identity pose.
func PoseFromViewpoint(vp []float32) (mat.Mat4, error) {
	switch len(vp) {
	case 0:
		return Identity, nil
	case 7:
	default:
		return mat.Mat4{}, errors.Errorf("viewpoint must have 7 elements, got %d", len(vp))
	}
	return PoseFromQuaternion(
		mat.Vec3{vp[0], vp[1], vp[2]},
		quat.Number{
			Real: float64(vp[3]),
			Imag: float64(vp[4]),
			Jmag: float64(vp[5]),
			Kmag: float64(vp[6]),
		},
	), nil
}
