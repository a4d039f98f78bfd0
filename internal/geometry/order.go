package geometry

import (
	"math"
	"sort"
)

// Order returns strokes in draw order. Strokes are first sorted by their
// leftmost x and, for equal x, longest first. Starting from the head of
// that list, the walk repeatedly picks the remaining stroke with the
// closest endpoint to the current pen position, reversing it when its end
// is the closer one.
func Order(strokes []Polyline) []Polyline {
	if len(strokes) == 0 {
		return nil
	}

	type keyed struct {
		pl     Polyline
		minX   float64
		length float64
	}
	items := make([]keyed, len(strokes))
	for i, s := range strokes {
		items[i] = keyed{pl: s, minX: s.Bounds().Min.X, length: s.Length()}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].minX != items[j].minX {
			return items[i].minX < items[j].minX
		}
		return items[i].length > items[j].length
	})

	remaining := make([]Polyline, len(items))
	for i, it := range items {
		remaining[i] = it.pl
	}

	out := make([]Polyline, 0, len(remaining))
	current := remaining[0]
	remaining = remaining[1:]
	out = append(out, current)

	for len(remaining) > 0 {
		pen := current.Last()
		best, bestDist, reverse := -1, math.Inf(1), false
		for i, s := range remaining {
			ds := pen.Dist(s.First())
			de := pen.Dist(s.Last())
			d := math.Min(ds, de)
			if d < bestDist {
				best, bestDist, reverse = i, d, de < ds
			}
		}

		next := remaining[best]
		if reverse {
			next = next.Reversed()
		}
		remaining = append(remaining[:best], remaining[best+1:]...)
		out = append(out, next)
		current = next
	}
	return out
}
