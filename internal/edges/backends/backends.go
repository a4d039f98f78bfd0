// Package backends resolves edge backends by name for the binaries. The
// OpenCV backend needs cgo and opencv4; building with -tags noopencv leaves
// it out so the native backend alone is linked.
package backends

import (
	"errors"
	"fmt"
	"strings"

	"sketchvec/internal/edges"
	"sketchvec/internal/edges/native"
	"sketchvec/internal/logger"
)

const (
	Native = "native"
	OpenCV = "opencv"
)

// ErrUnavailable is returned for a known backend that was not compiled in.
var ErrUnavailable = errors.New("backend not compiled in")

// New builds the named backend. An empty name selects the native backend.
func New(name string, log logger.Logger) (edges.Backend, error) {
	switch strings.ToLower(name) {
	case "", Native:
		return native.New(log), nil
	case OpenCV:
		return newOpenCV(log)
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s)", name, strings.Join(Names(), " or "))
	}
}

// Names lists the backends available in this build, native first.
func Names() []string {
	if !openCVAvailable {
		return []string{Native}
	}
	return []string{Native, OpenCV}
}
