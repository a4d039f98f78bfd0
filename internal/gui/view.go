package gui

import (
	"image"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"sketchvec/internal/config"
	"sketchvec/internal/gui/widgets"
	"sketchvec/internal/pipeline"
)

type View struct {
	window     fyne.Window
	controller *Controller

	toolbar        *widgets.Toolbar
	imageDisplay   *widgets.ImageDisplay
	parameterPanel *widgets.ParameterPanel
	mainContainer  *fyne.Container
}

func NewView(window fyne.Window, backends []string) *View {
	view := &View{
		window: window,
	}

	view.setupComponents(backends)
	view.setupLayout()

	return view
}

func (v *View) SetController(controller *Controller) {
	v.controller = controller
	v.setupEventHandlers()
}

func (v *View) setupComponents(backends []string) {
	v.toolbar = widgets.NewToolbar(backends)
	v.imageDisplay = widgets.NewImageDisplay()
	v.parameterPanel = widgets.NewParameterPanel()
}

func (v *View) setupLayout() {
	v.mainContainer = container.NewVBox(
		v.imageDisplay.GetContainer(),
		v.toolbar.GetContainer(),
		v.parameterPanel.GetContainer(),
	)
}

func (v *View) setupEventHandlers() {
	if v.controller == nil {
		return
	}

	v.toolbar.SetLoadHandler(v.controller.LoadImage)
	v.toolbar.SetExportHandler(v.controller.Export)
	v.toolbar.SetVectorizeHandler(v.controller.Vectorize)
	v.toolbar.SetPresetHandler(v.controller.ChangePreset)
	v.toolbar.SetBackendHandler(v.controller.ChangeBackend)

	v.parameterPanel.SetParameterChangeHandler(v.controller.UpdateParameter)
}

func (v *View) GetMainContainer() *fyne.Container {
	return v.mainContainer
}

func (v *View) SetSourceImage(img image.Image) {
	v.imageDisplay.SetSourceImage(img)
}

func (v *View) SetStrokeImage(img image.Image, title string) {
	v.imageDisplay.SetStrokeImage(img, title)
}

func (v *View) SetConfig(cfg config.VectorizationConfig) {
	v.parameterPanel.SetConfig(cfg)
}

func (v *View) SetStatus(status string) {
	v.toolbar.SetStatus(status)
}

func (v *View) SetStats(strokes, points int, elapsed time.Duration) {
	v.toolbar.SetStats(strokes, points, elapsed)
}

func (v *View) SetBusy(busy bool) {
	v.toolbar.SetBusy(busy)
}

func (v *View) ShowError(title string, err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) ShowFileDialog(callback func(fyne.URIReadCloser, error)) {
	dialog.ShowFileOpen(callback, v.window)
}

func (v *View) ShowSaveDialog(callback func(fyne.URIWriteCloser, error)) {
	dialog.ShowFileSave(callback, v.window)
}

func (v *View) ShowFormatSelectionDialog(callback func(string, bool)) {
	content := widget.NewLabel("No file extension detected. Please choose a format:")

	var options []string
	for _, f := range []string{pipeline.FormatJSON, pipeline.FormatSVG, pipeline.FormatPNG} {
		options = append(options, strings.ToUpper(f))
	}
	formatSelect := widget.NewSelect(options, nil)
	formatSelect.SetSelected(options[0])

	form := container.NewVBox(
		content,
		formatSelect,
	)

	dialog.ShowCustomConfirm("Choose Export Format", "Save", "Cancel",
		form, func(confirmed bool) {
			if confirmed && formatSelect.Selected != "" {
				callback(formatSelect.Selected, true)
			} else {
				callback("", false)
			}
		}, v.window)
}

func (v *View) GetWindow() fyne.Window {
	return v.window
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
