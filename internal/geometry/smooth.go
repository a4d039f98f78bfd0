package geometry

// Smooth applies passes rounds of 1:2:1 averaging to the interior points.
// Each round reads only the previous round's points; endpoints never move.
func Smooth(pl Polyline, passes int) Polyline {
	cur := pl.Clone()
	if passes <= 0 || len(pl) < 3 {
		return cur
	}

	next := make(Polyline, len(pl))
	for ; passes > 0; passes-- {
		next[0], next[len(cur)-1] = cur[0], cur[len(cur)-1]
		for i := 1; i < len(cur)-1; i++ {
			next[i] = Point{
				X: (cur[i-1].X + 2*cur[i].X + cur[i+1].X) / 4,
				Y: (cur[i-1].Y + 2*cur[i].Y + cur[i+1].Y) / 4,
			}
		}
		cur, next = next, cur
	}
	return cur
}
