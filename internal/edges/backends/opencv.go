//go:build !noopencv

package backends

import (
	"sketchvec/internal/edges"
	"sketchvec/internal/logger"
	"sketchvec/internal/opencv/detector"
)

const openCVAvailable = true

func newOpenCV(log logger.Logger) (edges.Backend, error) {
	return detector.New(log, 0), nil
}
