package geometry

const (
	minAngleWindow = 1
	maxAngleWindow = 20
)

// SegmentOptions controls corner splitting.
type SegmentOptions struct {
	AngleThresholdDeg float64
	Window            int
	MinLength         float64
	MinPoints         int
}

// SegmentCorners splits pl at interior points whose turning angle, measured
// between P[i]-P[i-w] and P[i+w]-P[i] with indices clamped to the ends,
// exceeds the threshold. A cut only happens once the running segment is
// long enough or has enough points; the cut point ends one segment and
// starts the next. The endpoints are never cut. Segments shorter than
// MinLength or with fewer than MinPoints points are dropped afterwards.
func SegmentCorners(pl Polyline, opts SegmentOptions) []Polyline {
	n := len(pl)
	if n < 2 {
		return nil
	}

	w := opts.Window
	if w < minAngleWindow {
		w = minAngleWindow
	} else if w > maxAngleWindow {
		w = maxAngleWindow
	}
	threshold := deg2rad(opts.AngleThresholdDeg)

	var segments []Polyline
	current := Polyline{pl[0]}
	length := 0.0

	for i := 1; i < n-1; i++ {
		current = append(current, pl[i])
		length += pl[i].Dist(pl[i-1])

		i0 := max(i-w, 0)
		i1 := min(i+w, n-1)
		if i0 == i || i1 == i {
			continue
		}

		angle := angleBetween(pl[i].Sub(pl[i0]), pl[i1].Sub(pl[i]))
		if angle > threshold && (length >= opts.MinLength || len(current) >= opts.MinPoints) {
			segments = append(segments, current)
			current = Polyline{pl[i]}
			length = 0
		}
	}
	current = append(current, pl[n-1])
	segments = append(segments, current)

	kept := segments[:0]
	for _, s := range segments {
		if len(s) < 2 || len(s) < opts.MinPoints || s.Length() < opts.MinLength {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}
