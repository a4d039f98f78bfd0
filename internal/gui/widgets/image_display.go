package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 500
	ImageAreaHeight = 400
)

// ImageDisplay shows the source image next to the rasterized strokes.
type ImageDisplay struct {
	container   fyne.CanvasObject
	sourceImage *canvas.Image
	strokeImage *canvas.Image
	strokeTitle *widget.Label
	splitView   *container.Split
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func (id *ImageDisplay) createComponents() {
	id.sourceImage = canvas.NewImageFromImage(nil)
	id.sourceImage.FillMode = canvas.ImageFillContain
	id.sourceImage.ScaleMode = canvas.ImageScaleSmooth
	id.sourceImage.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	id.strokeImage = canvas.NewImageFromImage(nil)
	id.strokeImage.FillMode = canvas.ImageFillContain
	id.strokeImage.ScaleMode = canvas.ImageScaleSmooth
	id.strokeImage.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
}

func (id *ImageDisplay) setupLayout() {
	id.strokeTitle = widget.NewLabelWithStyle("Strokes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	sourceContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Source**"),
		nil, nil, nil,
		id.sourceImage,
	)

	strokeContainer := container.NewBorder(
		id.strokeTitle,
		nil, nil, nil,
		id.strokeImage,
	)

	id.splitView = container.NewHSplit(sourceContainer, strokeContainer)
	id.splitView.SetOffset(0.5)
	id.container = id.splitView
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

func (id *ImageDisplay) SetSourceImage(img image.Image) {
	id.sourceImage.Image = img
	id.sourceImage.Refresh()
	id.container.Refresh()
}

// SetStrokeImage shows a preview raster; title describes what it shows.
func (id *ImageDisplay) SetStrokeImage(img image.Image, title string) {
	id.strokeImage.Image = img
	id.strokeImage.Refresh()
	if title == "" {
		title = "Strokes"
	}
	id.strokeTitle.SetText(title)
}

func (id *ImageDisplay) StrokeTitle() string {
	return id.strokeTitle.Text
}
