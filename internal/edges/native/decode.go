package native

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"sketchvec/internal/edges"
)

func decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, edges.NewDecodeError(backendName, edges.ReasonEmpty, nil)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, edges.NewDecodeError(backendName, edges.ReasonUnsupported, err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, edges.NewDecodeError(backendName, edges.ReasonZeroSize, nil)
	}
	return img, nil
}

// toGray converts with the BT.601 luma weights. Alpha is ignored: colour
// channels are read un-premultiplied, the way a three-channel decode sees
// them.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}

	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+b.Dx()]
		for x := range row {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			row[x] = luma(c.R, c.G, c.B)
		}
	}
	return out
}

func luma(r, g, b uint8) uint8 {
	return uint8(math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)))
}
