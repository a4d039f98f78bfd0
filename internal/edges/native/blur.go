package native

import (
	"image"
	"math"
)

// Fixed kernels used for the small sizes when sigma is derived from the
// kernel size.
var smallKernels = map[int][]float64{
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// gaussianKernel returns a normalized 1D kernel. A non-positive sigma is
// derived from the size as 0.3*((size-1)*0.5-1)+0.8.
func gaussianKernel(size int, sigma float64) []float64 {
	if sigma <= 0 {
		if k, ok := smallKernels[size]; ok {
			return k
		}
		sigma = 0.3*(float64(size-1)*0.5-1) + 0.8
	}

	k := make([]float64, size)
	half := size / 2
	sum := 0.0
	for i := range k {
		x := float64(i - half)
		k[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// kernelSizeForSigma mirrors the automatic size choice for 8-bit images.
func kernelSizeForSigma(sigma float64) int {
	n := int(math.Round(sigma*6+1)) | 1
	return max(n, 3)
}

// reflect101 maps an out-of-range index into [0,n) by mirroring without
// repeating the edge pixel.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// gaussianBlur runs a separable blur and rounds back to 8 bits.
func gaussianBlur(src *image.Gray, size int, sigma float64) *image.Gray {
	k := gaussianKernel(size, sigma)
	half := len(k) / 2
	w, h := src.Rect.Dx(), src.Rect.Dy()

	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			acc := 0.0
			for i, kv := range k {
				acc += kv * float64(row[reflect101(x+i-half, w)])
			}
			tmp[y*w+x] = acc
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			acc := 0.0
			for i, kv := range k {
				acc += kv * tmp[reflect101(y+i-half, h)*w+x]
			}
			dst.Pix[y*dst.Stride+x] = clampByte(acc)
		}
	}
	return dst
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
