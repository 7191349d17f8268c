package main

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/seqsense/surfelmapper/csvlog"
	"github.com/seqsense/surfelmapper/surfel"
)

// session feeds PCD files to a mapper and records the statistics.
type session struct {
	mapper *surfel.Mapper
	io     pcdIO
	csv    *csvlog.Logger
	points pointFrame
	logger *zap.Logger
	frames int
}

func (s *session) fuse(path string) (surfel.Stats, error) {
	pp, err := s.io.importPCD(path)
	if err != nil {
		return surfel.Stats{}, err
	}
	f, err := frameFromPointCloud(pp, s.points)
	if err != nil {
		return surfel.Stats{}, errors.Wrap(err, path)
	}
	st, err := s.mapper.AddFrame(f)
	if err != nil {
		return surfel.Stats{}, errors.Wrap(err, path)
	}
	s.frames++
	if s.csv != nil {
		values := map[string]string{
			"frame": path,
		}
		for _, f := range st.Fields() {
			values[f.Key] = f.Value
		}
		if err := s.csv.Log(values); err != nil {
			s.logger.Warn("Failed to write statistics", zap.Error(err))
		}
	}
	return st, nil
}

func (s *session) saveScene(path string) error {
	return s.save(path, s.mapper.Scene().Points())
}

func (s *session) savePreview(path string) error {
	return s.save(path, s.mapper.Preview())
}

func (s *session) save(path string, points []surfel.ScenePoint) error {
	pp, err := pointCloudFromPoints(points)
	if err != nil {
		return err
	}
	if err := s.io.exportPCD(path, pp); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	s.logger.Info("Saved", zap.String("path", path), zap.Int("points", len(points)))
	return nil
}

func (s *session) close() error {
	if s.csv == nil {
		return nil
	}
	return s.csv.Close()
}

func csvFields() []string {
	return append([]string{"frame"}, surfel.FieldKeys...)
}
