// Package camera implements the pinhole projection model of an organized
// depth sensor.
package camera

import (
	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
)

// ErrInvalidIntrinsics is returned by Intrinsics.CheckValid.
var ErrInvalidIntrinsics = errors.New("invalid camera intrinsics")

// Intrinsics holds the pinhole parameters and the image size in pixels.
type Intrinsics struct {
	Fx, Fy float32
	Cx, Cy float32

	Width, Height int
}

// CheckValid reports non-positive focal lengths or image sizes.
func (c *Intrinsics) CheckValid() error {
	if c == nil {
		return errors.Wrap(ErrInvalidIntrinsics, "nil intrinsics")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidIntrinsics, "image size %dx%d", c.Width, c.Height)
	}
	if c.Fx <= 0 || c.Fy <= 0 {
		return errors.Wrapf(ErrInvalidIntrinsics, "focal length (%g, %g)", c.Fx, c.Fy)
	}
	return nil
}

// Cells returns Width*Height.
func (c *Intrinsics) Cells() int {
	return c.Width * c.Height
}

// Project maps a camera frame point to pixel coordinates.
// The result is undefined for p[2] <= 0.
func (c *Intrinsics) Project(p mat.Vec3) (u, v float32) {
	u = c.Fx*(p[0]/p[2]) + c.Cx
	v = c.Fy*(p[1]/p[2]) + c.Cy
	return
}

// BackProject returns the camera frame point seen at (u, v) with the given depth.
func (c *Intrinsics) BackProject(u, v, depth float32) mat.Vec3 {
	return mat.Vec3{
		(u - c.Cx) / c.Fx * depth,
		(v - c.Cy) / c.Fy * depth,
		depth,
	}
}

// Projection returns the OpenGL style projection matrix clipping at rng.
func (c *Intrinsics) Projection(rng Range) mat.Mat4 {
	w, h := float32(c.Width), float32(c.Height)
	n, f := rng.Near, rng.Far
	return fromRows([4][4]float32{
		{2 * c.Fx / w, 0, 2*c.Cx/w - 1, 0},
		{0, 2 * c.Fy / h, 2*c.Cy/h - 1, 0},
		{0, 0, (f + n) / (f - n), -2 * f * n / (f - n)},
		{0, 0, 1, 0},
	})
}

// Range is the accepted depth interval [Near, Far] in meters.
type Range struct {
	Near, Far float32
}

// CheckValid reports an empty or non-positive range.
func (r Range) CheckValid() error {
	if r.Near <= 0 || r.Far <= r.Near {
		return errors.Errorf("invalid depth range [%g, %g]", r.Near, r.Far)
	}
	return nil
}

// Contains reports whether Near <= z <= Far.
func (r Range) Contains(z float32) bool {
	return r.Near <= z && z <= r.Far
}

func fromRows(r [4][4]float32) mat.Mat4 {
	var m mat.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[4*col+row] = r[row][col]
		}
	}
	return m
}
