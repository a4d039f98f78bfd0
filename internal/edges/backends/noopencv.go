//go:build noopencv

package backends

import (
	"fmt"

	"sketchvec/internal/edges"
	"sketchvec/internal/logger"
)

const openCVAvailable = false

func newOpenCV(logger.Logger) (edges.Backend, error) {
	return nil, fmt.Errorf("%w: %s (binary built with -tags noopencv)", ErrUnavailable, OpenCV)
}
