// Package pipeline turns encoded images into ordered pen strokes.
package pipeline

import (
	"fmt"
	"time"

	"sketchvec/internal/config"
	"sketchvec/internal/edges"
	"sketchvec/internal/geometry"
	"sketchvec/internal/logger"
)

// Stats describes what each stage kept for one call.
type Stats struct {
	ContoursFound      int
	ContoursKept       int
	StrokesBeforeMerge int
	StrokesAfterMerge  int
	Points             int
	Duration           time.Duration
}

// Result is a StrokeSet plus the source dimensions it was centred on and
// the world scale it was built with.
type Result struct {
	Name       string
	Width      int
	Height     int
	WorldScale float64
	Strokes    geometry.StrokeSet
	Stats      Stats
}

// Vectorizer runs the stroke pipeline on top of one edge backend. It holds
// no per-call state, so one value may serve concurrent calls as long as the
// backend does.
type Vectorizer struct {
	backend edges.Backend
	log     logger.Logger
}

func NewVectorizer(backend edges.Backend, log logger.Logger) *Vectorizer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Vectorizer{backend: backend, log: log}
}

func (v *Vectorizer) Backend() edges.Backend { return v.backend }

// Vectorize converts encoded image bytes into strokes in world space,
// centred on the image centre and scaled by cfg.WorldScale. An image with
// no usable edges yields an empty set and a nil error.
func (v *Vectorizer) Vectorize(data []byte, cfg config.VectorizationConfig) (geometry.StrokeSet, error) {
	res, err := v.Run(data, cfg)
	if err != nil {
		return geometry.StrokeSet{}, err
	}
	return res.Strokes, nil
}

// Run is Vectorize with stage statistics attached.
func (v *Vectorizer) Run(data []byte, cfg config.VectorizationConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()
	start := time.Now()

	cs, err := v.backend.Detect(data, cfg)
	if err != nil {
		if !edges.IsDecodeError(err) {
			v.log.Error("Vectorizer", err, map[string]interface{}{
				"backend": v.backend.Name(),
			})
		}
		return nil, fmt.Errorf("detect edges: %w", err)
	}

	contours := edges.FilterByPerimeter(cs.Contours, cfg.MinPerimeter)
	stats := Stats{
		ContoursFound: cs.Len(),
		ContoursKept:  len(contours),
	}

	segOpts := geometry.SegmentOptions{
		AngleThresholdDeg: cfg.AngleThresholdDeg,
		Window:            cfg.AngleWindow,
		MinLength:         cfg.MinStrokeLength,
		MinPoints:         cfg.MinStrokePoints,
	}

	var strokes []geometry.Polyline
	for _, c := range contours {
		strokes = append(strokes, processContour(c, cs.Width, cs.Height, cfg, segOpts)...)
	}
	stats.StrokesBeforeMerge = len(strokes)

	if cfg.MergeParallel && len(strokes) > 1 {
		strokes = geometry.MergeParallel(strokes, geometry.MergeOptions{
			MaxDist:         cfg.MergeMaxDist,
			MaxAngleDeg:     cfg.MergeMaxAngleDeg,
			MinOverlapRatio: cfg.MergeMinOverlap,
		})
	}
	stats.StrokesAfterMerge = len(strokes)

	set := geometry.NewStrokeSet(geometry.Order(strokes))
	stats.Points = set.PointCount()
	stats.Duration = time.Since(start)

	v.log.Debug("Vectorizer", "stage statistics", map[string]interface{}{
		"contours_found":       stats.ContoursFound,
		"contours_kept":        stats.ContoursKept,
		"strokes_before_merge": stats.StrokesBeforeMerge,
		"strokes_after_merge":  stats.StrokesAfterMerge,
	})
	v.log.Info("Vectorizer", "vectorization completed", map[string]interface{}{
		"backend":  v.backend.Name(),
		"width":    cs.Width,
		"height":   cs.Height,
		"strokes":  set.Len(),
		"points":   stats.Points,
		"duration": stats.Duration,
	})

	return &Result{
		Width:      cs.Width,
		Height:     cs.Height,
		WorldScale: cfg.WorldScale,
		Strokes:    set,
		Stats:      stats,
	}, nil
}

// processContour runs one traced contour through simplify, resample,
// centre, smooth and corner segmentation. Degenerate contours yield nothing.
func processContour(c geometry.Polyline, w, h int, cfg config.VectorizationConfig, segOpts geometry.SegmentOptions) []geometry.Polyline {
	pl := geometry.Simplify(c, cfg.Epsilon)
	pl = geometry.Resample(pl, cfg.ResampleSpacing)
	if len(pl) < 2 {
		return nil
	}
	pl = geometry.Center(pl, w, h, cfg.WorldScale)
	pl = geometry.Smooth(pl, cfg.SmoothingPasses)
	return geometry.SegmentCorners(pl, segOpts)
}
