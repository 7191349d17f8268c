package camera

import (
	"github.com/seqsense/pcgol/mat"

	"github.com/seqsense/surfelmapper/frustum"
)

// View holds the per frame matrices derived from a sensor pose.
type View struct {
	// View maps world coordinates to the sensor frame.
	View           mat.Mat4
	Projection     mat.Mat4
	ViewProjection mat.Mat4
	Frustum        frustum.Frustum
}

// NewView builds the view of a sensor at pose (sensor to world).
func NewView(c *Intrinsics, rng Range, pose mat.Mat4) *View {
	view := pose.InvAffine()
	proj := c.Projection(rng)
	vp := proj.Mul(view)
	return &View{
		View:           view,
		Projection:     proj,
		ViewProjection: vp,
		Frustum:        frustum.FromMatrix(vp),
	}
}

// WorldToCamera transforms a world point into the sensor frame.
func (v *View) WorldToCamera(p mat.Vec3) mat.Vec3 {
	return v.View.TransformAffine(p)
}
