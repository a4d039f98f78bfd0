package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchvec/internal/config"
	"sketchvec/internal/gui/widgets"
)

func TestApplyParameter(t *testing.T) {
	base := config.Default()

	cases := []struct {
		name  string
		value interface{}
		check func(t *testing.T, cfg config.VectorizationConfig)
	}{
		{widgets.ParamEdgeMode, "dog", func(t *testing.T, cfg config.VectorizationConfig) {
			assert.Equal(t, config.EdgeDoG, cfg.EdgeMode)
		}},
		{widgets.ParamBlurKernel, 8, func(t *testing.T, cfg config.VectorizationConfig) {
			assert.Equal(t, 9, cfg.BlurKernel)
		}},
		{widgets.ParamEpsilon, 0.4, func(t *testing.T, cfg config.VectorizationConfig) {
			assert.Equal(t, 0.4, cfg.Epsilon)
		}},
		{widgets.ParamResampleSpacing, 1.5, func(t *testing.T, cfg config.VectorizationConfig) {
			assert.Equal(t, 1.5, cfg.ResampleSpacing)
		}},
		{widgets.ParamAngleThreshold, 45.0, func(t *testing.T, cfg config.VectorizationConfig) {
			assert.Equal(t, 45.0, cfg.AngleThresholdDeg)
		}},
		{widgets.ParamMergeMaxDist, 10.0, func(t *testing.T, cfg config.VectorizationConfig) {
			assert.Equal(t, 10.0, cfg.MergeMaxDist)
		}},
		{widgets.ParamSmoothingPasses, 0, func(t *testing.T, cfg config.VectorizationConfig) {
			assert.Zero(t, cfg.SmoothingPasses)
		}},
		{widgets.ParamMergeParallel, false, func(t *testing.T, cfg config.VectorizationConfig) {
			assert.False(t, cfg.MergeParallel)
		}},
		{widgets.ParamExternalOnly, true, func(t *testing.T, cfg config.VectorizationConfig) {
			assert.True(t, cfg.ExternalOnly)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := applyParameter(base, tc.name, tc.value)
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestApplyParameterRejects(t *testing.T) {
	base := config.Default()

	_, err := applyParameter(base, "window_size", 7)
	assert.Error(t, err)

	_, err = applyParameter(base, widgets.ParamEpsilon, "1.0")
	assert.Error(t, err)

	_, err = applyParameter(base, widgets.ParamEdgeMode, "sobel")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = applyParameter(base, widgets.ParamResampleSpacing, 0.0)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
