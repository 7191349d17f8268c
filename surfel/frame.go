package surfel

import (
	"image/color"

	"github.com/seqsense/pcgol/mat"

	"github.com/seqsense/surfelmapper/camera"
)

// Sample is one cell of an organized frame.
type Sample struct {
	Position mat.Vec3
	Valid    bool
	Color    color.NRGBA
}

// Frame is an organized grid of world frame samples in row major order
// together with the sensor pose (sensor to world).
type Frame struct {
	Width, Height int
	Samples       []Sample
	Pose          mat.Mat4
}

// NewFrame returns a frame with all cells invalid.
func NewFrame(width, height int, pose mat.Mat4) *Frame {
	return &Frame{
		Width:   width,
		Height:  height,
		Samples: make([]Sample, width*height),
		Pose:    pose,
	}
}

// At returns the cell at column u, row v.
func (f *Frame) At(u, v int) *Sample {
	return &f.Samples[v*f.Width+u]
}

// FrameFromSensor builds a frame from samples given in the sensor frame.
func FrameFromSensor(width, height int, samples []Sample, pose mat.Mat4) *Frame {
	f := &Frame{
		Width:   width,
		Height:  height,
		Samples: make([]Sample, len(samples)),
		Pose:    pose,
	}
	for i, s := range samples {
		if s.Valid {
			s.Position = pose.TransformAffine(s.Position)
		}
		f.Samples[i] = s
	}
	return f
}

// cameraCopy returns the samples transformed into the sensor frame by view.
func (f *Frame) cameraCopy(view mat.Mat4, dst []Sample) []Sample {
	if cap(dst) < len(f.Samples) {
		dst = make([]Sample, len(f.Samples))
	}
	dst = dst[:len(f.Samples)]
	for i, s := range f.Samples {
		if s.Valid {
			s.Position = view.TransformAffine(s.Position)
		}
		dst[i] = s
	}
	return dst
}

// FilterByDistance invalidates valid cells whose depth is outside rng.
// cam must be in the sensor frame.
func FilterByDistance(cam []Sample, rng camera.Range) {
	for i := range cam {
		if cam[i].Valid && !rng.Contains(cam[i].Position[2]) {
			cam[i].Valid = false
		}
	}
}

type gridStatus int

const (
	gridOutside gridStatus = iota
	gridInvalid
	gridValid
)

// lookupGrid returns the depth of the cell nearest to (u, v) and its index.
func lookupGrid(grid []Sample, w, h int, u, v float32) (float32, int, gridStatus) {
	if u <= -0.5 || v <= -0.5 || u >= float32(w)-0.5 || v >= float32(h)-0.5 {
		return 0, -1, gridOutside
	}
	i := int(v+0.5)*w + int(u+0.5)
	if !grid[i].Valid {
		return 0, i, gridInvalid
	}
	return grid[i].Position[2], i, gridValid
}

// NearestGridSample returns the depth of the cell of grid nearest to the
// pixel (u, v). ok is false if (u, v) is off the image or the cell is
// invalid.
func NearestGridSample(grid []Sample, w, h int, u, v float32) (depth float32, ok bool) {
	depth, _, st := lookupGrid(grid, w, h, u, v)
	return depth, st == gridValid
}
