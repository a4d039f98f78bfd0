package gui

import (
	"fmt"

	"sketchvec/internal/config"
	"sketchvec/internal/gui/widgets"
)

// applyParameter returns cfg with one panel parameter changed. The result
// is validated so a bad value never reaches the coordinator.
func applyParameter(cfg config.VectorizationConfig, name string, value interface{}) (config.VectorizationConfig, error) {
	switch name {
	case widgets.ParamEdgeMode:
		s, ok := value.(string)
		if !ok {
			return cfg, typeError(name, value)
		}
		cfg.EdgeMode = config.EdgeMode(s)
	case widgets.ParamBlurKernel:
		n, ok := value.(int)
		if !ok {
			return cfg, typeError(name, value)
		}
		cfg.BlurKernel = config.NormalizeKernel(n)
	case widgets.ParamSmoothingPasses:
		n, ok := value.(int)
		if !ok {
			return cfg, typeError(name, value)
		}
		cfg.SmoothingPasses = n
	case widgets.ParamEpsilon, widgets.ParamResampleSpacing, widgets.ParamAngleThreshold, widgets.ParamMergeMaxDist:
		f, ok := value.(float64)
		if !ok {
			return cfg, typeError(name, value)
		}
		switch name {
		case widgets.ParamEpsilon:
			cfg.Epsilon = f
		case widgets.ParamResampleSpacing:
			cfg.ResampleSpacing = f
		case widgets.ParamAngleThreshold:
			cfg.AngleThresholdDeg = f
		default:
			cfg.MergeMaxDist = f
		}
	case widgets.ParamMergeParallel, widgets.ParamExternalOnly:
		b, ok := value.(bool)
		if !ok {
			return cfg, typeError(name, value)
		}
		if name == widgets.ParamMergeParallel {
			cfg.MergeParallel = b
		} else {
			cfg.ExternalOnly = b
		}
	default:
		return cfg, fmt.Errorf("unknown parameter %q", name)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func typeError(name string, value interface{}) error {
	return fmt.Errorf("parameter %q: unexpected value type %T", name, value)
}
