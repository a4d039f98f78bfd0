package edges

import "sketchvec/internal/geometry"

// FilterByPerimeter keeps contours whose closed-loop perimeter is at least
// minPerimeter. Single-point traces have perimeter 0.
func FilterByPerimeter(contours []geometry.Polyline, minPerimeter float64) []geometry.Polyline {
	kept := make([]geometry.Polyline, 0, len(contours))
	for _, c := range contours {
		if c.ClosedLength() < minPerimeter {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// ScaleContours maps contours traced on a resized image back to source
// pixel coordinates.
func ScaleContours(contours []geometry.Polyline, sx, sy float64) []geometry.Polyline {
	if sx == 1 && sy == 1 {
		return contours
	}
	out := make([]geometry.Polyline, len(contours))
	for i, c := range contours {
		out[i] = geometry.ScaleAbout(c, geometry.Point{}, sx, sy)
	}
	return out
}

// FitWithin returns the dimensions of a w x h image scaled down so neither
// side exceeds maxSide, and whether scaling is needed at all.
func FitWithin(w, h, maxSide int) (int, int, bool) {
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return w, h, false
	}
	if w >= h {
		nh := h * maxSide / w
		return maxSide, max(nh, 1), true
	}
	nw := w * maxSide / h
	return max(nw, 1), maxSide, true
}
