package surfel

import (
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Stats are the counters and timings of one AddFrame call.
type Stats struct {
	NodesVisited     int
	SurfelsInFrustum int
	SurfelsProjected int
	Updated          int
	TooFar           int
	TooClose         int
	InvalidReading   int
	Covered          int
	Inserted         int
	SceneSize        int
	PreviewSize      int

	// Pixel bounding box of the surfels projected in front of the sensor.
	UMin, UMax float32
	VMin, VMax float32

	TransformTime  time.Duration
	FilterTime     time.Duration
	UpdateTime     time.Duration
	InsertTime     time.Duration
	DownsampleTime time.Duration
}

func newStats() Stats {
	return Stats{
		UMin: 1e6, UMax: -1e6,
		VMin: 1e6, VMax: -1e6,
	}
}

func (s *Stats) addProjection(u, v float32) {
	s.UMin = min(s.UMin, u)
	s.UMax = max(s.UMax, u)
	s.VMin = min(s.VMin, v)
	s.VMax = max(s.VMax, v)
}

// Field is a named statistics value.
type Field struct {
	Key   string
	Value string
}

// FieldKeys lists the keys of Fields in order.
var FieldKeys = []string{
	"nodes_visited",
	"surfels_in_frustum",
	"surfels_projected",
	"updated",
	"too_far",
	"too_close",
	"invalid_reading",
	"covered",
	"inserted",
	"scene_size",
	"preview_size",
	"u_min", "u_max", "v_min", "v_max",
	"transform_ms",
	"filter_ms",
	"update_ms",
	"insert_ms",
	"downsample_ms",
}

// Fields returns the statistics as ordered key value pairs.
func (s Stats) Fields() []Field {
	i := strconv.Itoa
	f := func(v float32) string { return strconv.FormatFloat(float64(v), 'f', 3, 32) }
	ms := func(d time.Duration) string {
		return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 3, 64)
	}
	values := []string{
		i(s.NodesVisited),
		i(s.SurfelsInFrustum),
		i(s.SurfelsProjected),
		i(s.Updated),
		i(s.TooFar),
		i(s.TooClose),
		i(s.InvalidReading),
		i(s.Covered),
		i(s.Inserted),
		i(s.SceneSize),
		i(s.PreviewSize),
		f(s.UMin), f(s.UMax), f(s.VMin), f(s.VMax),
		ms(s.TransformTime),
		ms(s.FilterTime),
		ms(s.UpdateTime),
		ms(s.InsertTime),
		ms(s.DownsampleTime),
	}
	out := make([]Field, len(values))
	for k, v := range values {
		out[k] = Field{Key: FieldKeys[k], Value: v}
	}
	return out
}

func (s *Stats) counterFields() []zap.Field {
	return []zap.Field{
		zap.Int("nodesVisited", s.NodesVisited),
		zap.Int("surfelsInFrustum", s.SurfelsInFrustum),
		zap.Int("surfelsProjected", s.SurfelsProjected),
		zap.Int("updated", s.Updated),
		zap.Int("tooFar", s.TooFar),
		zap.Int("tooClose", s.TooClose),
		zap.Int("invalidReading", s.InvalidReading),
		zap.Int("covered", s.Covered),
		zap.Int("inserted", s.Inserted),
		zap.Int("sceneSize", s.SceneSize),
		zap.Int("previewSize", s.PreviewSize),
	}
}

func (s *Stats) timingFields() []zap.Field {
	return []zap.Field{
		zap.Duration("transform", s.TransformTime),
		zap.Duration("filter", s.FilterTime),
		zap.Duration("update", s.UpdateTime),
		zap.Duration("insert", s.InsertTime),
		zap.Duration("downsample", s.DownsampleTime),
		zap.Float32("uMin", s.UMin),
		zap.Float32("uMax", s.UMax),
		zap.Float32("vMin", s.VMin),
		zap.Float32("vMax", s.VMax),
	}
}
