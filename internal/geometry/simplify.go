package geometry

// Simplify reduces pl with the Douglas–Peucker rule: a point survives when
// it lies farther than epsilon from the chord of its enclosing span. The
// first and last points always survive. Inputs with fewer than three points
// are returned as a copy.
func Simplify(pl Polyline, epsilon float64) Polyline {
	n := len(pl)
	if n < 3 {
		return pl.Clone()
	}

	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true

	type span struct{ lo, hi int }
	stack := []span{{0, n - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo < 2 {
			continue
		}

		idx, dmax := -1, -1.0
		for i := s.lo + 1; i < s.hi; i++ {
			if d := segmentDistance(pl[i], pl[s.lo], pl[s.hi]); d > dmax {
				idx, dmax = i, d
			}
		}
		if dmax > epsilon {
			keep[idx] = true
			stack = append(stack, span{s.lo, idx}, span{idx, s.hi})
		}
	}

	out := make(Polyline, 0, n)
	for i, p := range pl {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
