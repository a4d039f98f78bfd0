package native

import "image"

// differenceOfGaussians blurs src at sigma and sigma*k, and marks pixels
// where the absolute difference exceeds threshold.
func differenceOfGaussians(src *image.Gray, sigma, k, threshold float64) *image.Gray {
	s2 := sigma * k
	g1 := gaussianBlur(src, kernelSizeForSigma(sigma), sigma)
	g2 := gaussianBlur(src, kernelSizeForSigma(s2), s2)

	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := int(g1.Pix[y*g1.Stride+x]) - int(g2.Pix[y*g2.Stride+x])
			if float64(abs(d)) > threshold {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}
