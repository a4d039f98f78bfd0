package geometry

// Center maps pixel coordinates of a width x height image into world space:
// the image centre becomes the origin and the result is multiplied by scale.
func Center(pl Polyline, width, height int, scale float64) Polyline {
	c := Point{float64(width) / 2, float64(height) / 2}
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[i] = p.Sub(c).Scale(scale)
	}
	return out
}

// Translate shifts every point by d.
func Translate(pl Polyline, d Point) Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[i] = p.Add(d)
	}
	return out
}

// ScaleAbout multiplies coordinates by (sx, sy) around origin.
func ScaleAbout(pl Polyline, origin Point, sx, sy float64) Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		d := p.Sub(origin)
		out[i] = Point{origin.X + d.X*sx, origin.Y + d.Y*sy}
	}
	return out
}
