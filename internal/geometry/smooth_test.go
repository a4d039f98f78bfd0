package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoothSinglePass(t *testing.T) {
	got := Smooth(Polyline{{0, 0}, {1, 4}, {2, 0}}, 1)
	assert.Equal(t, Polyline{{0, 0}, {1, 2}, {2, 0}}, got)
}

func TestSmoothReadsPreviousPass(t *testing.T) {
	got := Smooth(Polyline{{0, 0}, {0, 8}, {0, 0}, {0, 0}}, 1)

	// In-place averaging would give 1 for the third point.
	assert.Equal(t, Polyline{{0, 0}, {0, 4}, {0, 2}, {0, 0}}, got)
}

func TestSmoothAnchorsEndpoints(t *testing.T) {
	pl := Polyline{{-3, 7}, {0, 0}, {5, 9}, {1, -2}, {12, 4}}
	got := Smooth(pl, 25)

	assert.Equal(t, pl.First(), got.First())
	assert.Equal(t, pl.Last(), got.Last())
	assert.Len(t, got, len(pl))
}

func TestSmoothIdentity(t *testing.T) {
	pl := Polyline{{0, 0}, {1, 4}, {2, 0}}
	assert.Equal(t, pl, Smooth(pl, 0))
	assert.Equal(t, pl, Smooth(pl, -2))

	short := Polyline{{0, 0}, {1, 1}}
	assert.Equal(t, short, Smooth(short, 3))
}
