//go:build !noopencv

// Package detector is the OpenCV edge detection backend. OpenCV calls are
// not reentrant through gocv, so New returns a serialized backend.
package detector

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"sketchvec/internal/config"
	"sketchvec/internal/edges"
	"sketchvec/internal/geometry"
	"sketchvec/internal/logger"
	"sketchvec/internal/opencv/bridge"
	"sketchvec/internal/opencv/conversion"
	"sketchvec/internal/opencv/memory"
	"sketchvec/internal/opencv/safe"
)

const backendName = "opencv"

// Backend runs edge detection and contour extraction through OpenCV.
// Callers should use it through New, which serializes access.
type Backend struct {
	log    logger.Logger
	budget int64
}

// New returns the OpenCV backend behind a single-slot queue. budget caps
// the Mat memory of one call; zero selects the default.
func New(log logger.Logger, budget int64) edges.Backend {
	if log == nil {
		log = logger.NewNop()
	}
	return edges.Serialize(&Backend{log: log, budget: budget})
}

func (b *Backend) Name() string { return backendName }

func (b *Backend) Detect(data []byte, cfg config.VectorizationConfig) (*edges.ContourSet, error) {
	if len(data) == 0 {
		return nil, edges.NewDecodeError(backendName, edges.ReasonEmpty, nil)
	}
	cfg = cfg.Normalized()

	mem := memory.NewManager(b.log, b.budget)
	defer mem.LogStats("OpenCVBackend")

	decoded, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil || decoded.Empty() {
		decoded.Close()
		return nil, edges.NewDecodeError(backendName, edges.ReasonUnsupported, err)
	}
	src, err := mem.Adopt(decoded, "decoded")
	if err != nil {
		return nil, fmt.Errorf("adopt decoded image: %w", err)
	}
	defer mem.ReleaseMat(src)

	srcW, srcH := src.Cols(), src.Rows()
	if srcW <= 0 || srcH <= 0 {
		return nil, edges.NewDecodeError(backendName, edges.ReasonZeroSize, nil)
	}

	work := src
	if w, h, ok := edges.FitWithin(srcW, srcH, cfg.MaxImageSide); ok {
		small, err := mem.GetMat(h, w, src.Type(), "downscaled")
		if err != nil {
			return nil, err
		}
		defer mem.ReleaseMat(small)

		smallMat := small.GetMat()
		gocv.Resize(src.GetMat(), &smallMat, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
		work = small
	}

	gray, err := conversion.ConvertToGrayscale(work, mem)
	if err != nil {
		return nil, fmt.Errorf("grayscale: %w", err)
	}
	defer mem.ReleaseMat(gray)

	rows, cols := gray.Rows(), gray.Cols()
	blurred, err := mem.GetMat(rows, cols, gocv.MatTypeCV8UC1, "blurred")
	if err != nil {
		return nil, err
	}
	defer mem.ReleaseMat(blurred)

	blurredMat := blurred.GetMat()
	k := cfg.BlurKernel
	gocv.GaussianBlur(gray.GetMat(), &blurredMat, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	mask, err := b.edgeMask(mem, blurred, cfg)
	if err != nil {
		return nil, err
	}
	defer mem.ReleaseMat(mask)

	mode := gocv.RetrievalList
	if cfg.ExternalOnly {
		mode = gocv.RetrievalExternal
	}
	found := gocv.FindContours(mask.GetMat(), mode, gocv.ChainApproxNone)
	defer found.Close()

	contours := make([]geometry.Polyline, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		pts := found.At(i).ToPoints()
		pl := make(geometry.Polyline, len(pts))
		for j, p := range pts {
			pl[j] = geometry.Point{X: float64(p.X), Y: float64(p.Y)}
		}
		contours = append(contours, pl)
	}
	contours = edges.ScaleContours(contours,
		float64(srcW)/float64(cols), float64(srcH)/float64(rows))

	maskImg, err := bridge.MatToGray(mask)
	if err != nil {
		return nil, fmt.Errorf("export edge mask: %w", err)
	}

	b.log.Debug("OpenCVBackend", "edges traced", map[string]interface{}{
		"mode":     string(cfg.EdgeMode),
		"kernel":   k,
		"contours": len(contours),
	})

	return &edges.ContourSet{
		Width:    srcW,
		Height:   srcH,
		Contours: contours,
		Mask:     maskImg,
	}, nil
}

func (b *Backend) edgeMask(mem *memory.Manager, blurred *safe.Mat, cfg config.VectorizationConfig) (*safe.Mat, error) {
	rows, cols := blurred.Rows(), blurred.Cols()
	mask, err := mem.GetMat(rows, cols, gocv.MatTypeCV8UC1, "edges")
	if err != nil {
		return nil, err
	}
	maskMat := mask.GetMat()

	if cfg.EdgeMode != config.EdgeDoG {
		gocv.Canny(blurred.GetMat(), &maskMat, float32(cfg.CannyLow), float32(cfg.CannyHigh))
		return mask, nil
	}

	g1, err := mem.GetMat(rows, cols, gocv.MatTypeCV8UC1, "dog_narrow")
	if err != nil {
		mem.ReleaseMat(mask)
		return nil, err
	}
	defer mem.ReleaseMat(g1)
	g2, err := mem.GetMat(rows, cols, gocv.MatTypeCV8UC1, "dog_wide")
	if err != nil {
		mem.ReleaseMat(mask)
		return nil, err
	}
	defer mem.ReleaseMat(g2)
	diff, err := mem.GetMat(rows, cols, gocv.MatTypeCV8UC1, "dog_diff")
	if err != nil {
		mem.ReleaseMat(mask)
		return nil, err
	}
	defer mem.ReleaseMat(diff)

	g1Mat, g2Mat, diffMat := g1.GetMat(), g2.GetMat(), diff.GetMat()
	sigma := cfg.DoGSigma
	gocv.GaussianBlur(blurred.GetMat(), &g1Mat, image.Point{}, sigma, sigma, gocv.BorderDefault)
	gocv.GaussianBlur(blurred.GetMat(), &g2Mat, image.Point{}, sigma*cfg.DoGK, sigma*cfg.DoGK, gocv.BorderDefault)
	gocv.AbsDiff(g1Mat, g2Mat, &diffMat)
	gocv.Threshold(diffMat, &maskMat, float32(cfg.DoGThreshold), 255, gocv.ThresholdBinary)
	return mask, nil
}
