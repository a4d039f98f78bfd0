// Package config holds the parameter bundle that drives one vectorization
// call, its documented defaults and the named presets.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// EdgeMode selects the edge operator applied after blurring.
type EdgeMode string

const (
	EdgeCanny EdgeMode = "canny"
	EdgeDoG   EdgeMode = "dog"
)

const (
	MinBlurKernel  = 3
	MaxBlurKernel  = 99
	MinAngleWindow = 1
	MaxAngleWindow = 20
	PresetDefault  = "default"
	PresetCenter   = "centerline"
	PresetOutline  = "outline"
)

var ErrInvalidConfig = errors.New("invalid config")

// VectorizationConfig is the immutable parameter bundle for one call.
// Lengths are in source pixels up to resampling and in world units from
// centering onwards; with WorldScale 1 both are the same.
type VectorizationConfig struct {
	EdgeMode   EdgeMode `yaml:"edge_mode"`
	BlurKernel int      `yaml:"blur_kernel"`

	CannyLow  float64 `yaml:"canny_low"`
	CannyHigh float64 `yaml:"canny_high"`

	DoGSigma     float64 `yaml:"dog_sigma"`
	DoGK         float64 `yaml:"dog_k"`
	DoGThreshold float64 `yaml:"dog_threshold"`

	Epsilon         float64 `yaml:"epsilon"`
	ResampleSpacing float64 `yaml:"resample_spacing"`
	MinPerimeter    float64 `yaml:"min_perimeter"`
	ExternalOnly    bool    `yaml:"external_only"`
	WorldScale      float64 `yaml:"world_scale"`

	AngleThresholdDeg float64 `yaml:"angle_threshold_deg"`
	AngleWindow       int     `yaml:"angle_window"`
	SmoothingPasses   int     `yaml:"smoothing_passes"`

	MergeParallel    bool    `yaml:"merge_parallel"`
	MergeMaxDist     float64 `yaml:"merge_max_dist"`
	MergeMaxAngleDeg float64 `yaml:"merge_max_angle_deg"`
	MergeMinOverlap  float64 `yaml:"merge_min_overlap"`

	MinStrokeLength float64 `yaml:"min_stroke_length"`
	MinStrokePoints int     `yaml:"min_stroke_points"`

	// MaxImageSide downsizes larger inputs before edge detection. Contours
	// are mapped back to source pixels, so output coordinates do not
	// change meaning. Zero disables it.
	MaxImageSide int `yaml:"max_image_side"`
}

// Default returns the general purpose configuration.
func Default() VectorizationConfig {
	return VectorizationConfig{
		EdgeMode:          EdgeCanny,
		BlurKernel:        5,
		CannyLow:          50,
		CannyHigh:         150,
		DoGSigma:          1.0,
		DoGK:              1.6,
		DoGThreshold:      8,
		Epsilon:           1.5,
		ResampleSpacing:   3,
		MinPerimeter:      20,
		ExternalOnly:      false,
		WorldScale:        1,
		AngleThresholdDeg: 30,
		AngleWindow:       3,
		SmoothingPasses:   2,
		MergeParallel:     true,
		MergeMaxDist:      6,
		MergeMaxAngleDeg:  12,
		MergeMinOverlap:   0.6,
		MinStrokeLength:   6,
		MinStrokePoints:   3,
	}
}

// Centerline is tuned for text-line bitmaps: tight tolerances and parallel
// merging so both edges of a pen-width glyph collapse into one stroke.
func Centerline() VectorizationConfig {
	cfg := Default()
	cfg.BlurKernel = 3
	cfg.Epsilon = 0.8
	cfg.ResampleSpacing = 2
	cfg.MinPerimeter = 12
	cfg.ExternalOnly = false
	cfg.MergeParallel = true
	cfg.MergeMaxDist = 12
	cfg.MergeMaxAngleDeg = 15
	cfg.MergeMinOverlap = 0.5
	cfg.MinStrokeLength = 4
	return cfg
}

// Outline keeps every traced boundary as its own stroke.
func Outline() VectorizationConfig {
	cfg := Default()
	cfg.Epsilon = 2
	cfg.ResampleSpacing = 4
	cfg.MergeParallel = false
	return cfg
}

// Preset resolves a preset by name; the empty name is the default.
func Preset(name string) (VectorizationConfig, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetDefault:
		return Default(), nil
	case PresetCenter:
		return Centerline(), nil
	case PresetOutline:
		return Outline(), nil
	default:
		return VectorizationConfig{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
	}
}

// PresetNames lists the names accepted by Preset.
func PresetNames() []string {
	return []string{PresetDefault, PresetCenter, PresetOutline}
}

// Normalized applies the documented clamps: the blur kernel is forced odd
// and kept in [3,99], the angle window is kept in [1,20].
func (c VectorizationConfig) Normalized() VectorizationConfig {
	c.BlurKernel = NormalizeKernel(c.BlurKernel)
	c.AngleWindow = clampInt(c.AngleWindow, MinAngleWindow, MaxAngleWindow)
	if c.EdgeMode == "" {
		c.EdgeMode = EdgeCanny
	}
	return c
}

// NormalizeKernel increments even sizes by one and clamps to [3,99].
func NormalizeKernel(size int) int {
	if size%2 == 0 {
		size++
	}
	return clampInt(size, MinBlurKernel, MaxBlurKernel)
}

// Validate rejects values the pipeline cannot run with.
func (c VectorizationConfig) Validate() error {
	var problems []string

	switch c.EdgeMode {
	case EdgeCanny, EdgeDoG, "":
	default:
		problems = append(problems, fmt.Sprintf("edge_mode %q is not canny or dog", c.EdgeMode))
	}

	if !positive(c.ResampleSpacing) {
		problems = append(problems, "resample_spacing must be > 0")
	}
	if c.WorldScale == 0 || !finite(c.WorldScale) {
		problems = append(problems, "world_scale must be a non-zero number")
	}
	if c.Epsilon < 0 || !finite(c.Epsilon) {
		problems = append(problems, "epsilon must be >= 0")
	}
	if c.EdgeMode == EdgeDoG {
		if !positive(c.DoGSigma) {
			problems = append(problems, "dog_sigma must be > 0")
		}
		if !positive(c.DoGK) {
			problems = append(problems, "dog_k must be > 0")
		}
	}
	if c.CannyLow < 0 || c.CannyHigh < 0 {
		problems = append(problems, "canny thresholds must be >= 0")
	}
	if c.MergeMinOverlap < 0 || c.MergeMinOverlap > 1 {
		problems = append(problems, "merge_min_overlap must be within [0,1]")
	}
	if c.MergeMaxDist < 0 || c.MergeMaxAngleDeg < 0 {
		problems = append(problems, "merge distances and angles must be >= 0")
	}
	if c.MaxImageSide < 0 {
		problems = append(problems, "max_image_side must be >= 0")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func positive(v float64) bool {
	return v > 0 && finite(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
