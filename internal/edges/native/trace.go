package native

import (
	"image"

	"sketchvec/internal/geometry"
)

// Neighbour directions, counterclockwise on screen starting east.
var directions = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

const (
	dirEast = 0
	dirWest = 4
	frameID = 1
)

type border struct {
	hole   bool
	parent int
}

// tracer implements Suzuki–Abe topological border following on a label
// grid padded by one background pixel on every side.
type tracer struct {
	labels  []int32
	stride  int
	offsets [8]int
}

func newTracer(mask *image.Gray) *tracer {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	t := &tracer{labels: make([]int32, (w+2)*(h+2)), stride: w + 2}
	for d, p := range directions {
		t.offsets[d] = p.Y*t.stride + p.X
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Pix[y*mask.Stride+x] != 0 {
				t.labels[(y+1)*t.stride+x+1] = 1
			}
		}
	}
	return t
}

// Trace returns every border of a binary mask in raster discovery order.
// Non-zero pixels are foreground. With externalOnly set, only outer
// borders that are not nested in a hole are returned.
func Trace(mask *image.Gray, externalOnly bool) []geometry.Polyline {
	h := mask.Rect.Dy()
	if h == 0 || mask.Rect.Dx() == 0 {
		return nil
	}
	t := newTracer(mask)

	borders := []border{{}, {hole: true}}
	nbd := frameID
	var out []geometry.Polyline

	for y := 1; y <= h; y++ {
		lnbd := frameID
		for x := 1; x < t.stride-1; x++ {
			idx := y*t.stride + x
			v := t.labels[idx]
			if v == 0 {
				continue
			}

			var hole bool
			var from int
			switch {
			case v == 1 && t.labels[idx-1] == 0:
				from = dirWest
			case v >= 1 && t.labels[idx+1] == 0:
				hole, from = true, dirEast
				if v > 1 {
					lnbd = int(v)
				}
			default:
				if v != 1 {
					lnbd = absInt32(v)
				}
				continue
			}

			nbd++
			parent := borders[lnbd].parent
			if hole != borders[lnbd].hole {
				parent = lnbd
			}
			borders = append(borders, border{hole: hole, parent: parent})

			path := t.follow(idx, from, int32(nbd))
			if !externalOnly || (!hole && parent == frameID) {
				out = append(out, t.points(path))
			}

			if t.labels[idx] != 1 {
				lnbd = absInt32(t.labels[idx])
			}
		}
	}
	return out
}

// follow traces one border starting at start, labelling it with nbd.
func (t *tracer) follow(start, from int, nbd int32) []int {
	first, found := -1, 0
	for k := 0; k < 8; k++ {
		d := (from - k + 8) % 8
		if t.labels[start+t.offsets[d]] != 0 {
			first, found = start+t.offsets[d], d
			break
		}
	}
	if first < 0 {
		t.labels[start] = -nbd
		return []int{start}
	}

	path := []int{start}
	cur := start
	back := found
	for {
		next, nextDir := -1, 0
		eastClear := false
		for k := 1; k <= 8; k++ {
			d := (back + k) % 8
			n := cur + t.offsets[d]
			if t.labels[n] != 0 {
				next, nextDir = n, d
				break
			}
			if d == dirEast {
				eastClear = true
			}
		}

		if eastClear {
			t.labels[cur] = -nbd
		} else if t.labels[cur] == 1 {
			t.labels[cur] = nbd
		}

		if next == start && cur == first {
			return path
		}
		path = append(path, next)
		back = (nextDir + 4) % 8
		cur = next
	}
}

func (t *tracer) points(path []int) geometry.Polyline {
	out := make(geometry.Polyline, len(path))
	for i, idx := range path {
		out[i] = geometry.Point{
			X: float64(idx%t.stride - 1),
			Y: float64(idx/t.stride - 1),
		}
	}
	return out
}

func absInt32(v int32) int {
	if v < 0 {
		return int(-v)
	}
	return int(v)
}
