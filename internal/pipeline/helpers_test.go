package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"sketchvec/internal/config"
	"sketchvec/internal/edges"
	"sketchvec/internal/edges/native"
)

// maskBackend traces dark pixels directly, skipping edge detection, so
// fixtures map onto exact contours.
type maskBackend struct {
	calls atomic.Int32
}

func (b *maskBackend) Name() string { return "mask" }

func (b *maskBackend) Detect(data []byte, cfg config.VectorizationConfig) (*edges.ContourSet, error) {
	b.calls.Add(1)
	if len(data) == 0 {
		return nil, edges.NewDecodeError("mask", edges.ReasonEmpty, nil)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, edges.NewDecodeError("mask", edges.ReasonUnsupported, err)
	}

	r := img.Bounds()
	mask := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.Gray)
			if g.Y < 128 {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	return &edges.ContourSet{
		Width:    r.Dx(),
		Height:   r.Dy(),
		Contours: native.Trace(mask, cfg.ExternalOnly),
		Mask:     mask,
	}, nil
}

// inkRect is an inclusive pixel rectangle.
type inkRect struct{ x0, y0, x1, y1 int }

// pngWithInk encodes a white w×h image with black rectangles.
func pngWithInk(t *testing.T, w, h int, rects ...inkRect) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, r := range rects {
		for y := r.y0; y <= r.y1; y++ {
			for x := r.x0; x <= r.x1; x++ {
				img.SetGray(x, y, color.Gray{})
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func squarePNG(t *testing.T) []byte {
	return pngWithInk(t, 64, 64, inkRect{16, 16, 47, 47})
}

func parallelLinesPNG(t *testing.T) []byte {
	return pngWithInk(t, 72, 72, inkRect{10, 30, 60, 30}, inkRect{10, 32, 60, 32})
}

func glyphTPNG(t *testing.T) []byte {
	return pngWithInk(t, 72, 72, inkRect{10, 10, 60, 13}, inkRect{34, 14, 37, 60})
}
