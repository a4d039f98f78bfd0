package native

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchvec/internal/config"
	"sketchvec/internal/edges"
)

// drawPNG renders a black filled rectangle on white and returns PNG bytes.
func drawPNG(t *testing.T, w, h int, rect image.Rectangle) []byte {
	t.Helper()
	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.ClearWithColor(gg.White)
	if !rect.Empty() {
		dc.SetRGB(0, 0, 0)
		dc.DrawRectangle(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))
		require.NoError(t, dc.Fill())
	}

	var buf bytes.Buffer
	require.NoError(t, dc.EncodePNG(&buf))
	return buf.Bytes()
}

func TestDetectBlankImage(t *testing.T) {
	b := New(nil)
	cs, err := b.Detect(drawPNG(t, 48, 48, image.Rectangle{}), config.Default())

	require.NoError(t, err)
	assert.Equal(t, 48, cs.Width)
	assert.Equal(t, 48, cs.Height)
	assert.Empty(t, cs.Contours)
}

func TestDetectEmptyBytes(t *testing.T) {
	_, err := New(nil).Detect(nil, config.Default())

	var de *edges.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, edges.ReasonEmpty, de.Reason)
	assert.Equal(t, "native", de.Backend)
}

func TestDetectGarbageBytes(t *testing.T) {
	_, err := New(nil).Detect([]byte("definitely not an image"), config.Default())

	var de *edges.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, edges.ReasonUnsupported, de.Reason)
}

func TestDetectSquareCanny(t *testing.T) {
	data := drawPNG(t, 64, 64, image.Rect(16, 16, 48, 48))
	cs, err := New(nil).Detect(data, config.Default())

	require.NoError(t, err)
	require.NotEmpty(t, cs.Contours)
	require.NotNil(t, cs.Mask)
	for _, c := range cs.Contours {
		b := c.Bounds()
		assert.GreaterOrEqual(t, b.Min.X, 10.0)
		assert.LessOrEqual(t, b.Max.X, 53.0)
		assert.GreaterOrEqual(t, b.Min.Y, 10.0)
		assert.LessOrEqual(t, b.Max.Y, 53.0)
	}
}

func TestDetectSquareDoG(t *testing.T) {
	cfg := config.Default()
	cfg.EdgeMode = config.EdgeDoG
	data := drawPNG(t, 64, 64, image.Rect(16, 16, 48, 48))

	cs, err := New(nil).Detect(data, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, cs.Contours)
}

func TestDetectExternalOnlyIsSubset(t *testing.T) {
	data := drawPNG(t, 64, 64, image.Rect(16, 16, 48, 48))
	cfg := config.Default()

	all, err := New(nil).Detect(data, cfg)
	require.NoError(t, err)

	cfg.ExternalOnly = true
	outer, err := New(nil).Detect(data, cfg)
	require.NoError(t, err)

	assert.NotEmpty(t, outer.Contours)
	assert.LessOrEqual(t, len(outer.Contours), len(all.Contours))
	assert.Equal(t, all.Width, outer.Width)
}

func TestDetectDownscaleKeepsSourceCoordinates(t *testing.T) {
	data := drawPNG(t, 128, 128, image.Rect(32, 32, 96, 96))
	cfg := config.Default()
	cfg.MaxImageSide = 64

	cs, err := New(nil).Detect(data, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, cs.Contours)

	assert.Equal(t, 128, cs.Width)
	assert.Equal(t, 64, cs.Mask.Rect.Dx())
	maxX := 0.0
	for _, c := range cs.Contours {
		maxX = max(maxX, c.Bounds().Max.X)
	}
	assert.Greater(t, maxX, 80.0)
}

func TestToGrayIgnoresOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.Pix[0], src.Pix[1], src.Pix[2], src.Pix[3] = 255, 255, 255, 255
	g := toGray(src)

	assert.Equal(t, image.Rect(0, 0, 2, 1), g.Rect)
	assert.Equal(t, uint8(255), g.Pix[0])
	assert.Equal(t, uint8(0), g.Pix[1])

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	_, err := decode(buf.Bytes())
	assert.NoError(t, err)
}
