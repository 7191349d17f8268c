// Package surfel fuses organized depth frames into a persistent point scene.
package surfel

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seqsense/surfelmapper/camera"
)

// ErrFrameSize is returned when a frame does not match the intrinsics.
var ErrFrameSize = errors.New("frame size differs from camera intrinsics")

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Mapper) {
		m.logger = l
	}
}

// WithIndex replaces the octree index of the scene. idx must be empty.
func WithIndex(idx SpatialIndex) Option {
	return func(m *Mapper) {
		m.scene = NewScene(idx)
	}
}

// Mapper owns a scene and updates it frame by frame.
// A Mapper is not safe for concurrent use.
type Mapper struct {
	cfg     Config
	scene   *Scene
	preview []ScenePoint
	stats   Stats
	logger  *zap.Logger

	cam     []Sample
	covered []bool
}

// New returns a Mapper with an empty scene. cfg is expected to be
// validated.
func New(cfg Config, opts ...Option) *Mapper {
	m := &Mapper{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(m)
	}
	if m.scene == nil {
		m.scene = NewScene(NewOctreeIndex(cfg.OctreeResolution))
	}
	return m
}

// Config returns the parameters.
func (m *Mapper) Config() Config {
	return m.cfg
}

// Scene returns the accumulated scene.
func (m *Mapper) Scene() *Scene {
	return m.scene
}

// Preview returns the downsampled scene of the last call.
func (m *Mapper) Preview() []ScenePoint {
	return m.preview
}

// Stats returns the statistics of the last call.
func (m *Mapper) Stats() Stats {
	return m.stats
}

type viewFrame struct {
	*camera.View
	width, height int
}

// AddFrame matches f against the scene, inserts the parts not yet
// represented and rebuilds the preview.
func (m *Mapper) AddFrame(f *Frame) (Stats, error) {
	in := &m.cfg.Intrinsics
	if f.Width != in.Width || f.Height != in.Height || len(f.Samples) != in.Cells() {
		return Stats{}, errors.Wrapf(ErrFrameSize,
			"frame %dx%d (%d samples), intrinsics %dx%d",
			f.Width, f.Height, len(f.Samples), in.Width, in.Height)
	}
	st := newStats()

	t := time.Now()
	vf := &viewFrame{
		View:   camera.NewView(in, m.cfg.Range, f.Pose),
		width:  f.Width,
		height: f.Height,
	}
	m.cam = f.cameraCopy(vf.View.View, m.cam)
	st.TransformTime = time.Since(t)

	t = time.Now()
	FilterByDistance(m.cam, m.cfg.Range)
	st.FilterTime = time.Since(t)

	t = time.Now()
	if cap(m.covered) < len(m.cam) {
		m.covered = make([]bool, len(m.cam))
	}
	m.covered = m.covered[:len(m.cam)]
	clear(m.covered)
	m.traverse(vf, &st)
	st.UpdateTime = time.Since(t)

	t = time.Now()
	m.insert(f, &st)
	st.InsertTime = time.Since(t)

	t = time.Now()
	m.preview = downsample(m.scene, m.cfg.PreviewResolution, m.cfg.PreviewColorSamples)
	st.DownsampleTime = time.Since(t)

	st.SceneSize = m.scene.Len()
	st.PreviewSize = len(m.preview)
	m.stats = st

	m.logger.Debug("Frame timing", st.timingFields()...)
	m.logger.Info("Frame fused", st.counterFields()...)
	return st, nil
}

// insert adds every valid cell that no surfel covers.
func (m *Mapper) insert(f *Frame, st *Stats) {
	for i, c := range m.covered {
		if c {
			st.Covered++
			continue
		}
		if !m.cam[i].Valid {
			continue
		}
		s := &f.Samples[i]
		if _, ok := m.scene.Insert(ScenePoint{Position: s.Position, Color: s.Color}); ok {
			st.Inserted++
		}
	}
}
