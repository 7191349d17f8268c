package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/seqsense/surfelmapper/camera"
	"github.com/seqsense/surfelmapper/surfel"
)

type cameraConfig struct {
	Fx     float32 `yaml:"fx"`
	Fy     float32 `yaml:"fy"`
	Cx     float32 `yaml:"cx"`
	Cy     float32 `yaml:"cy"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

type rangeConfig struct {
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

type mapperConfig struct {
	Camera              cameraConfig `yaml:"camera"`
	Range               rangeConfig  `yaml:"range"`
	MatchThreshold      float32      `yaml:"match_threshold"`
	OctreeResolution    float64      `yaml:"octree_resolution"`
	PreviewResolution   float64      `yaml:"preview_resolution"`
	PreviewColorSamples int          `yaml:"preview_color_samples"`
}

func newMapperConfig(c surfel.Config) mapperConfig {
	in := c.Intrinsics
	return mapperConfig{
		Camera: cameraConfig{
			Fx: in.Fx, Fy: in.Fy, Cx: in.Cx, Cy: in.Cy,
			Width: in.Width, Height: in.Height,
		},
		Range:               rangeConfig{Near: c.Range.Near, Far: c.Range.Far},
		MatchThreshold:      c.MatchThreshold,
		OctreeResolution:    c.OctreeResolution,
		PreviewResolution:   c.PreviewResolution,
		PreviewColorSamples: c.PreviewColorSamples,
	}
}

func (c mapperConfig) surfelConfig() surfel.Config {
	return surfel.Config{
		Intrinsics: camera.Intrinsics{
			Fx: c.Camera.Fx, Fy: c.Camera.Fy,
			Cx: c.Camera.Cx, Cy: c.Camera.Cy,
			Width: c.Camera.Width, Height: c.Camera.Height,
		},
		Range:               camera.Range{Near: c.Range.Near, Far: c.Range.Far},
		MatchThreshold:      c.MatchThreshold,
		OctreeResolution:    c.OctreeResolution,
		PreviewResolution:   c.PreviewResolution,
		PreviewColorSamples: c.PreviewColorSamples,
	}
}

// parseConfig reads YAML on top of the defaults. Unknown keys are errors.
func parseConfig(r io.Reader) (surfel.Config, error) {
	mc := newMapperConfig(surfel.DefaultConfig())
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&mc); err != nil && err != io.EOF {
		return surfel.Config{}, errors.Wrap(err, "decoding config")
	}
	c := mc.surfelConfig()
	if err := c.Validate(); err != nil {
		return surfel.Config{}, errors.Wrap(err, "validating config")
	}
	return c, nil
}

func loadConfig(path string) (surfel.Config, error) {
	if path == "" {
		return surfel.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return surfel.Config{}, errors.Wrap(err, "opening config")
	}
	defer f.Close()
	return parseConfig(f)
}

func marshalConfig(c surfel.Config) ([]byte, error) {
	return yaml.Marshal(newMapperConfig(c))
}
