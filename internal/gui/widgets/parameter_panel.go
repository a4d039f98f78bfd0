package widgets

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"sketchvec/internal/config"
)

// Parameter names emitted by ParameterPanel; they match the YAML keys.
const (
	ParamEdgeMode        = "edge_mode"
	ParamBlurKernel      = "blur_kernel"
	ParamEpsilon         = "epsilon"
	ParamResampleSpacing = "resample_spacing"
	ParamAngleThreshold  = "angle_threshold_deg"
	ParamSmoothingPasses = "smoothing_passes"
	ParamMergeParallel   = "merge_parallel"
	ParamMergeMaxDist    = "merge_max_dist"
	ParamExternalOnly    = "external_only"
)

type ParameterPanel struct {
	container              *fyne.Container
	parameterChangeHandler func(string, interface{})

	// set while SetConfig pushes values into widgets so their OnChanged
	// callbacks do not echo back
	syncing bool

	edgeMode        *widget.RadioGroup
	kernelSlider    *widget.Slider
	kernelLabel     *widget.Label
	epsilonSlider   *widget.Slider
	epsilonLabel    *widget.Label
	spacingSlider   *widget.Slider
	spacingLabel    *widget.Label
	angleSlider     *widget.Slider
	angleLabel      *widget.Label
	passesSlider    *widget.Slider
	passesLabel     *widget.Label
	mergeDistSlider *widget.Slider
	mergeDistLabel  *widget.Label
	mergeCheck      *widget.Check
	externalCheck   *widget.Check
}

func NewParameterPanel() *ParameterPanel {
	panel := &ParameterPanel{}
	panel.createWidgets()
	panel.buildLayout()
	panel.SetConfig(config.Default())
	return panel
}

func (pp *ParameterPanel) createWidgets() {
	pp.edgeMode = widget.NewRadioGroup([]string{string(config.EdgeCanny), string(config.EdgeDoG)}, nil)
	pp.edgeMode.Horizontal = true
	pp.edgeMode.Required = true

	pp.kernelSlider = widget.NewSlider(config.MinBlurKernel, 15)
	pp.kernelSlider.Step = 2
	pp.kernelLabel = widget.NewLabel("")

	pp.epsilonSlider = widget.NewSlider(0, 5)
	pp.epsilonSlider.Step = 0.1
	pp.epsilonLabel = widget.NewLabel("")

	pp.spacingSlider = widget.NewSlider(0.5, 10)
	pp.spacingSlider.Step = 0.5
	pp.spacingLabel = widget.NewLabel("")

	pp.angleSlider = widget.NewSlider(5, 90)
	pp.angleLabel = widget.NewLabel("")

	pp.passesSlider = widget.NewSlider(0, 6)
	pp.passesLabel = widget.NewLabel("")

	pp.mergeDistSlider = widget.NewSlider(1, 20)
	pp.mergeDistSlider.Step = 0.5
	pp.mergeDistLabel = widget.NewLabel("")

	pp.mergeCheck = widget.NewCheck("Merge parallel strokes", nil)
	pp.externalCheck = widget.NewCheck("Outer contours only", nil)
}

func (pp *ParameterPanel) buildLayout() {
	pp.container = container.NewVBox(
		widget.NewLabel("Parameters:"),
		container.NewHBox(widget.NewLabel("Edges"), pp.edgeMode, pp.externalCheck, pp.mergeCheck),
		container.NewGridWithColumns(3,
			container.NewVBox(pp.kernelLabel, pp.kernelSlider),
			container.NewVBox(pp.epsilonLabel, pp.epsilonSlider),
			container.NewVBox(pp.spacingLabel, pp.spacingSlider),
			container.NewVBox(pp.angleLabel, pp.angleSlider),
			container.NewVBox(pp.passesLabel, pp.passesSlider),
			container.NewVBox(pp.mergeDistLabel, pp.mergeDistSlider),
		),
	)
}

func (pp *ParameterPanel) GetContainer() *fyne.Container {
	return pp.container
}

func (pp *ParameterPanel) SetParameterChangeHandler(handler func(string, interface{})) {
	pp.parameterChangeHandler = handler
	pp.setupEventHandlers()
}

func (pp *ParameterPanel) emit(name string, value interface{}) {
	if pp.syncing || pp.parameterChangeHandler == nil {
		return
	}
	pp.parameterChangeHandler(name, value)
}

func (pp *ParameterPanel) setupEventHandlers() {
	pp.edgeMode.OnChanged = func(value string) {
		pp.emit(ParamEdgeMode, value)
	}

	pp.kernelSlider.OnChanged = func(value float64) {
		size := config.NormalizeKernel(int(value))
		pp.kernelLabel.SetText("Blur Kernel: " + strconv.Itoa(size))
		pp.emit(ParamBlurKernel, size)
	}

	pp.epsilonSlider.OnChanged = func(value float64) {
		pp.epsilonLabel.SetText("Simplify Epsilon: " + strconv.FormatFloat(value, 'f', 1, 64))
		pp.emit(ParamEpsilon, value)
	}

	pp.spacingSlider.OnChanged = func(value float64) {
		pp.spacingLabel.SetText("Resample Spacing: " + strconv.FormatFloat(value, 'f', 1, 64))
		pp.emit(ParamResampleSpacing, value)
	}

	pp.angleSlider.OnChanged = func(value float64) {
		pp.angleLabel.SetText("Corner Angle: " + strconv.Itoa(int(value)) + "°")
		pp.emit(ParamAngleThreshold, value)
	}

	pp.passesSlider.OnChanged = func(value float64) {
		pp.passesLabel.SetText("Smoothing Passes: " + strconv.Itoa(int(value)))
		pp.emit(ParamSmoothingPasses, int(value))
	}

	pp.mergeDistSlider.OnChanged = func(value float64) {
		pp.mergeDistLabel.SetText("Merge Distance: " + strconv.FormatFloat(value, 'f', 1, 64))
		pp.emit(ParamMergeMaxDist, value)
	}

	pp.mergeCheck.OnChanged = func(checked bool) {
		pp.emit(ParamMergeParallel, checked)
	}

	pp.externalCheck.OnChanged = func(checked bool) {
		pp.emit(ParamExternalOnly, checked)
	}
}

// SetConfig shows cfg without emitting change events.
func (pp *ParameterPanel) SetConfig(cfg config.VectorizationConfig) {
	pp.syncing = true
	defer func() { pp.syncing = false }()

	cfg = cfg.Normalized()
	pp.edgeMode.SetSelected(string(cfg.EdgeMode))
	pp.kernelSlider.SetValue(float64(cfg.BlurKernel))
	pp.kernelLabel.SetText("Blur Kernel: " + strconv.Itoa(cfg.BlurKernel))
	pp.epsilonSlider.SetValue(cfg.Epsilon)
	pp.epsilonLabel.SetText("Simplify Epsilon: " + strconv.FormatFloat(cfg.Epsilon, 'f', 1, 64))
	pp.spacingSlider.SetValue(cfg.ResampleSpacing)
	pp.spacingLabel.SetText("Resample Spacing: " + strconv.FormatFloat(cfg.ResampleSpacing, 'f', 1, 64))
	pp.angleSlider.SetValue(cfg.AngleThresholdDeg)
	pp.angleLabel.SetText("Corner Angle: " + strconv.Itoa(int(cfg.AngleThresholdDeg)) + "°")
	pp.passesSlider.SetValue(float64(cfg.SmoothingPasses))
	pp.passesLabel.SetText("Smoothing Passes: " + strconv.Itoa(cfg.SmoothingPasses))
	pp.mergeDistSlider.SetValue(cfg.MergeMaxDist)
	pp.mergeDistLabel.SetText("Merge Distance: " + strconv.FormatFloat(cfg.MergeMaxDist, 'f', 1, 64))
	pp.mergeCheck.SetChecked(cfg.MergeParallel)
	pp.externalCheck.SetChecked(cfg.ExternalOnly)
}
