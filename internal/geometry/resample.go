package geometry

// finalVertexTolerance is how far the true last vertex must be from the
// last emitted sample before it is appended.
const finalVertexTolerance = 1e-3

// Resample walks pl and emits a point every spacing units of arc length,
// starting at the first vertex. The length left over at the end of one
// segment carries into the next. The true final vertex is appended when it
// is not already within finalVertexTolerance of the last emitted point.
// A non-positive spacing returns a copy.
func Resample(pl Polyline, spacing float64) Polyline {
	if len(pl) == 0 {
		return nil
	}
	if spacing <= 0 {
		return pl.Clone()
	}

	out := Polyline{pl[0]}
	acc := 0.0
	for i := 1; i < len(pl); i++ {
		a, b := pl[i-1], pl[i]
		segLen := a.Dist(b)
		if segLen == 0 {
			continue
		}

		pos := 0.0
		for acc+(segLen-pos) >= spacing {
			pos += spacing - acc
			out = append(out, a.Lerp(b, pos/segLen))
			acc = 0
		}
		acc += segLen - pos
	}

	if last := pl.Last(); out.Last().Dist(last) > finalVertexTolerance {
		out = append(out, last)
	}
	return out
}
