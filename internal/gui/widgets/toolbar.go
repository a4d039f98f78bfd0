package widgets

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"sketchvec/internal/config"
)

type Toolbar struct {
	container       *fyne.Container
	loadButton      *widget.Button
	exportButton    *widget.Button
	vectorizeButton *widget.Button
	presetSelect    *widget.Select
	backendSelect   *widget.Select
	statusLabel     *widget.Label
	statsLabel      *widget.Label

	loadHandler      func()
	exportHandler    func()
	vectorizeHandler func()
	presetHandler    func(string)
	backendHandler   func(string)
}

// NewToolbar builds the toolbar; backends lists the selectable edge
// backends, the first one being the initial selection.
func NewToolbar(backends []string) *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents(backends)
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents(backends []string) {
	t.loadButton = widget.NewButton("Load", t.onLoadClicked)
	t.loadButton.Importance = widget.HighImportance

	t.exportButton = widget.NewButton("Export", t.onExportClicked)
	t.exportButton.Importance = widget.HighImportance

	t.vectorizeButton = widget.NewButton("Vectorize", t.onVectorizeClicked)
	t.vectorizeButton.Importance = widget.HighImportance

	t.presetSelect = widget.NewSelect(config.PresetNames(), t.onPresetChanged)
	t.presetSelect.SetSelected(config.PresetDefault)

	t.backendSelect = widget.NewSelect(backends, t.onBackendChanged)
	if len(backends) > 0 {
		t.backendSelect.SetSelected(backends[0])
	}

	t.statusLabel = widget.NewLabel("Ready")
	t.statsLabel = widget.NewLabel("Strokes: -- | Points: --")
}

func (t *Toolbar) buildLayout() {
	background := canvas.NewRectangle(color.RGBA{R: 250, G: 249, B: 245, A: 255})
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeWidth = 1.0
	border.StrokeColor = color.RGBA{R: 231, G: 231, B: 231, A: 255}

	leftSection := container.NewHBox(t.loadButton, t.exportButton)
	centerSection := container.NewHBox(t.presetSelect, t.backendSelect, t.vectorizeButton)
	rightSection := container.NewHBox(t.statsLabel)

	content := container.NewBorder(
		nil, nil,
		leftSection,
		rightSection,
		container.NewHBox(centerSection, widget.NewSeparator(), t.statusLabel),
	)

	t.container = container.NewStack(
		border,
		container.NewPadded(
			container.NewStack(background, container.NewPadded(content)),
		),
	)
}

func (t *Toolbar) onLoadClicked() {
	if t.loadHandler != nil {
		t.loadHandler()
	}
}

func (t *Toolbar) onExportClicked() {
	if t.exportHandler != nil {
		t.exportHandler()
	}
}

func (t *Toolbar) onVectorizeClicked() {
	if t.vectorizeHandler != nil {
		t.vectorizeHandler()
	}
}

func (t *Toolbar) onPresetChanged(name string) {
	if t.presetHandler != nil {
		t.presetHandler(name)
	}
}

func (t *Toolbar) onBackendChanged(name string) {
	if t.backendHandler != nil {
		t.backendHandler(name)
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetLoadHandler(handler func()) {
	t.loadHandler = handler
}

func (t *Toolbar) SetExportHandler(handler func()) {
	t.exportHandler = handler
}

func (t *Toolbar) SetVectorizeHandler(handler func()) {
	t.vectorizeHandler = handler
}

func (t *Toolbar) SetPresetHandler(handler func(string)) {
	t.presetHandler = handler
}

func (t *Toolbar) SetBackendHandler(handler func(string)) {
	t.backendHandler = handler
}

func (t *Toolbar) SetBusy(busy bool) {
	if busy {
		t.vectorizeButton.Disable()
		return
	}
	t.vectorizeButton.Enable()
}

func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

func (t *Toolbar) SetStats(strokes, points int, elapsed time.Duration) {
	if strokes < 0 {
		t.statsLabel.SetText("Strokes: -- | Points: --")
		return
	}
	t.statsLabel.SetText(fmt.Sprintf("Strokes: %d | Points: %d | %s",
		strokes, points, elapsed.Round(time.Millisecond)))
}

func (t *Toolbar) StatsText() string {
	return t.statsLabel.Text
}
