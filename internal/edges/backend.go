// Package edges defines the boundary between raw image bytes and pixel-space
// contours. A Backend decodes, blurs, runs the edge operator and traces the
// resulting mask; everything after tracing is shared geometry.
package edges

import (
	"image"

	"sketchvec/internal/config"
	"sketchvec/internal/geometry"
)

// Backend turns encoded image bytes into traced contours.
type Backend interface {
	Name() string
	Detect(data []byte, cfg config.VectorizationConfig) (*ContourSet, error)
}

// ContourSet is the output of one Detect call. Contours are closed traces
// in source pixel coordinates, not yet filtered by perimeter.
type ContourSet struct {
	Width    int
	Height   int
	Contours []geometry.Polyline
	// Mask is the binary edge image at processing resolution. Backends may
	// leave it nil.
	Mask *image.Gray
}

// Len returns the number of traced contours.
func (cs *ContourSet) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.Contours)
}
