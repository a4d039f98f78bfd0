// Package render rasterizes a StrokeSet for previews. It draws plain
// polylines; progressive reveal and jitter belong to the animation layer.
package render

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"sketchvec/internal/geometry"
)

type PreviewOptions struct {
	// Width and Height of the canvas, normally the source image size.
	Width  int
	Height int
	// WorldScale used during vectorization; world coordinates are divided
	// by it to land back on source pixels.
	WorldScale float64
	LineWidth  float64
	// Ink colour components in [0,1].
	R, G, B float64
}

func DefaultPreviewOptions(width, height int, worldScale float64) PreviewOptions {
	return PreviewOptions{
		Width:      width,
		Height:     height,
		WorldScale: worldScale,
		LineWidth:  1.5,
	}
}

func (o PreviewOptions) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("preview size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.WorldScale == 0 {
		return fmt.Errorf("world scale must be non-zero")
	}
	return nil
}

func (o PreviewOptions) toPixel(p geometry.Point) (float64, float64) {
	return p.X/o.WorldScale + float64(o.Width)/2, p.Y/o.WorldScale + float64(o.Height)/2
}

func draw(set geometry.StrokeSet, opts PreviewOptions) (*gg.Context, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.ClearWithColor(gg.White)
	dc.SetRGB(opts.R, opts.G, opts.B)
	dc.SetLineWidth(opts.LineWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for i := 0; i < set.Len(); i++ {
		stroke := set.At(i)
		if len(stroke) < 2 {
			continue
		}
		dc.MoveTo(opts.toPixel(stroke[0]))
		for _, p := range stroke[1:] {
			dc.LineTo(opts.toPixel(p))
		}
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("stroke %d: %w", i, err)
		}
	}
	return dc, nil
}

// Preview renders strokes dark on white at source resolution.
func Preview(set geometry.StrokeSet, opts PreviewOptions) (image.Image, error) {
	dc, err := draw(set, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// WritePNG renders the preview and encodes it as PNG.
func WritePNG(w io.Writer, set geometry.StrokeSet, opts PreviewOptions) error {
	dc, err := draw(set, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}
