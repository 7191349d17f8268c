package main

import (
	"image/color"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	"go.uber.org/multierr"

	"github.com/seqsense/surfelmapper/camera"
	"github.com/seqsense/surfelmapper/surfel"
)

var errNotOrganized = errors.New("point cloud is not organized")

type pcdIO interface {
	importPCD(path string) (*pc.PointCloud, error)
	exportPCD(path string, pp *pc.PointCloud) error
}

type pcdIOImpl struct{}

func (*pcdIOImpl) importPCD(path string) (*pc.PointCloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pp, err := pc.Unmarshal(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return pp, nil
}

func (*pcdIOImpl) exportPCD(path string, pp *pc.PointCloud) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return writePointCloud(f, pp)
}

func writePointCloud(w io.Writer, pp *pc.PointCloud) error {
	return errors.Wrap(pc.Marshal(pp, w), "writing pcd")
}

// pointFrame tells in which frame the points of an input cloud are given.
type pointFrame int

const (
	// sensorPoints are relative to the VIEWPOINT pose.
	sensorPoints pointFrame = iota
	// worldPoints are already transformed by the VIEWPOINT pose.
	worldPoints
)

// frameFromPointCloud converts an organized cloud with a VIEWPOINT pose.
// Color is read from a packed rgba or rgb field, white otherwise. Non-finite
// points are invalid cells.
func frameFromPointCloud(pp *pc.PointCloud, in pointFrame) (*surfel.Frame, error) {
	if pp.Height <= 1 || pp.Width*pp.Height != pp.Points {
		return nil, errors.Wrapf(errNotOrganized, "%dx%d, %d points", pp.Width, pp.Height, pp.Points)
	}
	pose, err := camera.PoseFromViewpoint(pp.Viewpoint)
	if err != nil {
		return nil, err
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	alpha := true
	itC, err := pp.Uint32Iterator("rgba")
	if err != nil {
		alpha = false
		itC, _ = pp.Uint32Iterator("rgb")
	}

	samples := make([]surfel.Sample, pp.Points)
	for i := range samples {
		p := it.Vec3()
		s := &samples[i]
		s.Position = p
		s.Valid = isFinite(p)
		s.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		if itC != nil {
			s.Color = unpackColor(itC.Uint32(), alpha)
			itC.Incr()
		}
		it.Incr()
	}
	if in == worldPoints {
		return &surfel.Frame{
			Width:   pp.Width,
			Height:  pp.Height,
			Samples: samples,
			Pose:    pose,
		}, nil
	}
	return surfel.FrameFromSensor(pp.Width, pp.Height, samples, pose), nil
}

// pointCloudFromPoints builds an unorganized x y z rgba cloud in the world
// frame.
func pointCloudFromPoints(points []surfel.ScenePoint) (*pc.PointCloud, error) {
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Fields:    []string{"x", "y", "z", "rgba"},
			Size:      []int{4, 4, 4, 4},
			Type:      []string{"F", "F", "F", "U"},
			Count:     []int{1, 1, 1, 1},
			Viewpoint: []float32{0, 0, 0, 1, 0, 0, 0},
			Width:     len(points),
			Height:    1,
		},
		Points: len(points),
	}
	pp.Data = make([]byte, len(points)*pp.Stride())
	if len(points) == 0 {
		return pp, nil
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	itC, err := pp.Uint32Iterator("rgba")
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		it.SetVec3(p.Position)
		itC.SetUint32(packColor(p.Color))
		it.Incr()
		itC.Incr()
	}
	return pp, nil
}

func isFinite(p mat.Vec3) bool {
	for _, v := range p {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

func packColor(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func unpackColor(v uint32, alpha bool) color.NRGBA {
	c := color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
	if alpha {
		c.A = uint8(v >> 24)
	}
	return c
}
