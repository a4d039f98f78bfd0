package geometry

import "math"

// Polyline is an ordered sequence of points; consecutive points form
// segments.
type Polyline []Point

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min, Max Point
}

// Width is the horizontal extent of the box.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height is the vertical extent of the box.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Inflate grows the box by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{
		Min: Point{r.Min.X - d, r.Min.Y - d},
		Max: Point{r.Max.X + d, r.Max.Y + d},
	}
}

// Overlaps reports whether the boxes intersect; touching edges count.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Union returns the smallest box containing both.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)},
	}
}

// First returns the start point. The polyline must not be empty.
func (pl Polyline) First() Point { return pl[0] }

// Last returns the end point. The polyline must not be empty.
func (pl Polyline) Last() Point { return pl[len(pl)-1] }

// Length is the sum of segment lengths.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl); i++ {
		total += pl[i].Dist(pl[i-1])
	}
	return total
}

// ClosedLength includes the segment from the last point back to the first.
func (pl Polyline) ClosedLength() float64 {
	if len(pl) < 2 {
		return 0
	}
	return pl.Length() + pl.Last().Dist(pl.First())
}

// Bounds returns the bounding box. The zero Rect is returned for an empty
// polyline.
func (pl Polyline) Bounds() Rect {
	if len(pl) == 0 {
		return Rect{}
	}
	r := Rect{Min: pl[0], Max: pl[0]}
	for _, p := range pl[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Clone returns an independent copy; nil stays nil.
func (pl Polyline) Clone() Polyline {
	if pl == nil {
		return nil
	}
	out := make(Polyline, len(pl))
	copy(out, pl)
	return out
}

// Reversed returns a reversed copy.
func (pl Polyline) Reversed() Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[len(pl)-1-i] = p
	}
	return out
}

// PointAt returns the point at fraction t in [0,1] of the arc length.
func (pl Polyline) PointAt(t float64) Point {
	switch len(pl) {
	case 0:
		return Point{}
	case 1:
		return pl[0]
	}
	if t <= 0 {
		return pl.First()
	}
	if t >= 1 {
		return pl.Last()
	}

	target := t * pl.Length()
	walked := 0.0
	for i := 1; i < len(pl); i++ {
		seg := pl[i].Dist(pl[i-1])
		if seg > 0 && walked+seg >= target {
			return pl[i-1].Lerp(pl[i], (target-walked)/seg)
		}
		walked += seg
	}
	return pl.Last()
}

// Sample returns n points spaced evenly by arc length, including both
// endpoints. n < 2 is treated as 2.
func (pl Polyline) Sample(n int) Polyline {
	if n < 2 {
		n = 2
	}
	out := make(Polyline, n)
	for k := 0; k < n; k++ {
		out[k] = pl.PointAt(float64(k) / float64(n-1))
	}
	return out
}
