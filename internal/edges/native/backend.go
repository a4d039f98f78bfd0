// Package native is the pure Go edge detection backend. It needs no cgo and
// is safe for concurrent use.
package native

import (
	"image"

	"github.com/nfnt/resize"

	"sketchvec/internal/config"
	"sketchvec/internal/edges"
	"sketchvec/internal/logger"
)

const backendName = "native"

// Backend detects edges and traces contours in pure Go, without cgo.
type Backend struct {
	log logger.Logger
}

// New returns a native backend. A nil log discards output.
func New(log logger.Logger) *Backend {
	if log == nil {
		log = logger.NewNop()
	}
	return &Backend{log: log}
}

func (b *Backend) Name() string { return backendName }

func (b *Backend) Detect(data []byte, cfg config.VectorizationConfig) (*edges.ContourSet, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()

	srcW, srcH := img.Bounds().Dx(), img.Bounds().Dy()
	if w, h, ok := edges.FitWithin(srcW, srcH, cfg.MaxImageSide); ok {
		img = resize.Resize(uint(w), uint(h), img, resize.Lanczos3)
		b.log.Debug("NativeBackend", "input downscaled", map[string]interface{}{
			"source_width":  srcW,
			"source_height": srcH,
			"width":         w,
			"height":        h,
		})
	}

	gray := toGray(img)
	blurred := gaussianBlur(gray, cfg.BlurKernel, 0)

	var mask *image.Gray
	switch cfg.EdgeMode {
	case config.EdgeDoG:
		mask = differenceOfGaussians(blurred, cfg.DoGSigma, cfg.DoGK, cfg.DoGThreshold)
	default:
		mask = canny(blurred, cfg.CannyLow, cfg.CannyHigh)
	}

	contours := Trace(mask, cfg.ExternalOnly)
	procW, procH := mask.Rect.Dx(), mask.Rect.Dy()
	contours = edges.ScaleContours(contours,
		float64(srcW)/float64(procW), float64(srcH)/float64(procH))

	b.log.Debug("NativeBackend", "edges traced", map[string]interface{}{
		"mode":     string(cfg.EdgeMode),
		"kernel":   cfg.BlurKernel,
		"contours": len(contours),
	})

	return &edges.ContourSet{
		Width:    srcW,
		Height:   srcH,
		Contours: contours,
		Mask:     mask,
	}, nil
}
