//go:build !noopencv

package bridge

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"sketchvec/internal/opencv/safe"
)

// MatToGray copies a single channel 8-bit Mat into an image.Gray.
func MatToGray(mat *safe.Mat) (*image.Gray, error) {
	if err := safe.ValidateMatForOperation(mat, "MatToGray"); err != nil {
		return nil, err
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("MatToGray requires CV_8UC1, got type %d", mat.Type())
	}

	rows, cols := mat.Rows(), mat.Cols()
	raw := mat.GetMat()
	data := raw.ToBytes()
	if len(data) < rows*cols {
		return nil, fmt.Errorf("Mat data too short: %d bytes for %dx%d", len(data), cols, rows)
	}

	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+cols], data[y*cols:(y+1)*cols])
	}
	return img, nil
}

// GrayToMat copies an image.Gray into a new single channel Mat.
func GrayToMat(img *image.Gray) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	buf := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := y * img.Stride
		copy(buf[y*w:(y+1)*w], img.Pix[off:off+w])
	}

	view, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC1, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create Mat from bytes: %w", err)
	}
	// The view may alias buf; clone so the Mat owns its pixels.
	mat := view.Clone()
	view.Close()
	return safe.Wrap(mat, nil, "gray_import")
}
