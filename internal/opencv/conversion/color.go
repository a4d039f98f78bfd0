//go:build !noopencv

package conversion

import (
	"fmt"

	"gocv.io/x/gocv"

	"sketchvec/internal/opencv/safe"
)

// Allocator hands out tracked Mats.
type Allocator interface {
	GetMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error)
}

func CvtColorSafe(src *safe.Mat, dst *safe.Mat, code gocv.ColorConversionCode) error {
	if err := safe.ValidateColorConversion(src, code); err != nil {
		return fmt.Errorf("color conversion validation failed: %w", err)
	}
	if err := safe.ValidateMatForOperation(dst, "CvtColor destination"); err != nil {
		return fmt.Errorf("destination mat validation failed: %w", err)
	}

	srcMat := src.GetMat()
	dstMat := dst.GetMat()
	gocv.CvtColor(srcMat, &dstMat, code)
	return nil
}

// ConvertToGrayscale returns a single channel copy of src. Three channel
// input is read as BGR; four channel input drops alpha.
func ConvertToGrayscale(src *safe.Mat, alloc Allocator) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "ConvertToGrayscale"); err != nil {
		return nil, err
	}

	dst, err := alloc.GetMat(src.Rows(), src.Cols(), gocv.MatTypeCV8UC1, "gray")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	switch channels := src.Channels(); channels {
	case 1:
		srcMat := src.GetMat()
		dstMat := dst.GetMat()
		srcMat.CopyTo(&dstMat)
		return dst, nil
	case 3:
		err = CvtColorSafe(src, dst, gocv.ColorBGRToGray)
	case 4:
		err = CvtColorSafe(src, dst, gocv.ColorBGRAToGray)
	default:
		err = fmt.Errorf("unsupported channel count for grayscale conversion: %d", channels)
	}

	if err != nil {
		dst.Close()
		return nil, err
	}
	return dst, nil
}
