package surfel

import (
	"github.com/pkg/errors"

	"github.com/seqsense/surfelmapper/camera"
)

// Config holds the mapper parameters.
type Config struct {
	Intrinsics camera.Intrinsics
	Range      camera.Range
	// MatchThreshold is the largest |scan depth - surfel depth| regarded as
	// the same surface.
	MatchThreshold float32
	// OctreeResolution is the leaf side of the default index.
	OctreeResolution float64
	// PreviewResolution is the largest voxel side of the preview cloud.
	PreviewResolution float64
	// PreviewColorSamples is the number of points sampled per leaf for the
	// preview color.
	PreviewColorSamples int
}

// DefaultConfig returns the parameters of a 640x480 structured light sensor.
func DefaultConfig() Config {
	return Config{
		Intrinsics: camera.Intrinsics{
			Fx: 518.930578, Fy: 517.211658,
			Cx: 323.483756, Cy: 260.384697,
			Width: 640, Height: 480,
		},
		Range:               camera.Range{Near: 0.8, Far: 4.0},
		MatchThreshold:      0.05,
		OctreeResolution:    0.2,
		PreviewResolution:   0.2,
		PreviewColorSamples: 3,
	}
}

// Validate checks the parameters.
func (c *Config) Validate() error {
	if err := c.Intrinsics.CheckValid(); err != nil {
		return err
	}
	if err := c.Range.CheckValid(); err != nil {
		return err
	}
	if c.MatchThreshold < 0 {
		return errors.Errorf("negative match threshold %g", c.MatchThreshold)
	}
	if c.OctreeResolution <= 0 {
		return errors.Errorf("octree resolution must be positive, got %g", c.OctreeResolution)
	}
	if c.PreviewResolution <= 0 {
		return errors.Errorf("preview resolution must be positive, got %g", c.PreviewResolution)
	}
	if c.PreviewColorSamples < 1 {
		return errors.Errorf("preview color samples must be at least 1, got %d", c.PreviewColorSamples)
	}
	return nil
}
