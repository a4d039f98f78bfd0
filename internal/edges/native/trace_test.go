package native

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchvec/internal/geometry"
)

func maskWith(w, h int, on func(x, y int) bool) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if on(x, y) {
				m.Pix[y*m.Stride+x] = 255
			}
		}
	}
	return m
}

func TestTraceFilledSquare(t *testing.T) {
	mask := maskWith(64, 64, func(x, y int) bool {
		return x >= 16 && x <= 47 && y >= 16 && y <= 47
	})

	for _, external := range []bool{true, false} {
		contours := Trace(mask, external)
		require.Len(t, contours, 1)

		c := contours[0]
		require.Len(t, c, 124)
		assert.Equal(t, geometry.Point{X: 16, Y: 16}, c[0])
		assert.Equal(t, geometry.Point{X: 16, Y: 17}, c[1], "walks down the left side first")
		assert.Equal(t, geometry.Point{X: 47, Y: 47}, c[62])
		assert.Equal(t, geometry.Point{X: 17, Y: 16}, c[123])
		assert.Equal(t, geometry.Rect{Min: geometry.Point{X: 16, Y: 16}, Max: geometry.Point{X: 47, Y: 47}}, c.Bounds())
	}
}

func TestTraceRingHasHole(t *testing.T) {
	mask := maskWith(32, 32, func(x, y int) bool {
		inOuter := x >= 4 && x <= 27 && y >= 4 && y <= 27
		inInner := x >= 8 && x <= 23 && y >= 8 && y <= 23
		return inOuter && !inInner
	})

	all := Trace(mask, false)
	require.Len(t, all, 2)
	assert.Equal(t, geometry.Point{X: 4, Y: 4}, all[0][0])
	inner := all[1].Bounds()
	assert.Equal(t, 7.0, inner.Min.X)
	assert.Equal(t, 24.0, inner.Max.X)

	outer := Trace(mask, true)
	require.Len(t, outer, 1)
	assert.Equal(t, all[0], outer[0])
}

func TestTraceNestedIslandIsNotExternal(t *testing.T) {
	mask := maskWith(40, 40, func(x, y int) bool {
		ring := x >= 2 && x <= 37 && y >= 2 && y <= 37 && !(x >= 5 && x <= 34 && y >= 5 && y <= 34)
		island := x >= 15 && x <= 24 && y >= 15 && y <= 24
		return ring || island
	})

	assert.Len(t, Trace(mask, false), 3)
	assert.Len(t, Trace(mask, true), 1)
}

func TestTraceSinglePixelAndLine(t *testing.T) {
	dot := maskWith(5, 5, func(x, y int) bool { return x == 2 && y == 2 })
	contours := Trace(dot, false)
	require.Len(t, contours, 1)
	assert.Equal(t, geometry.Polyline{{X: 2, Y: 2}}, contours[0])

	seg := maskWith(8, 3, func(x, y int) bool { return y == 1 && x >= 1 && x <= 5 })
	contours = Trace(seg, false)
	require.Len(t, contours, 1)
	assert.Len(t, contours[0], 8, "out along the line and back")
	assert.Equal(t, geometry.Point{X: 5, Y: 1}, contours[0][4])
}

func TestTraceEmptyMask(t *testing.T) {
	assert.Empty(t, Trace(image.NewGray(image.Rect(0, 0, 10, 10)), false))
	assert.Empty(t, Trace(image.NewGray(image.Rect(0, 0, 0, 0)), false))
}
