//go:build !noopencv

package memory

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"sketchvec/internal/logger"
)

func TestManagerAccounting(t *testing.T) {
	m := NewManager(nil, 0)

	a, err := m.GetMat(10, 20, gocv.MatTypeCV8UC1, "a")
	require.NoError(t, err)
	b, err := m.GetMat(10, 10, gocv.MatTypeCV8UC3, "b")
	require.NoError(t, err)

	st := m.Stats()
	assert.Equal(t, int64(2), st.Allocations)
	assert.Equal(t, int64(200+300), st.UsedBytes)
	assert.Equal(t, 2, st.ActiveMats)

	m.ReleaseMat(a)
	m.ReleaseMat(a)
	st = m.Stats()
	assert.Equal(t, int64(1), st.Deallocations)
	assert.Equal(t, int64(300), st.UsedBytes)

	b.Close()
	st = m.Stats()
	assert.Equal(t, int64(0), st.UsedBytes)
	assert.Equal(t, int64(500), st.PeakBytes)
	assert.Zero(t, st.ActiveMats)
}

func TestManagerBudget(t *testing.T) {
	m := NewManager(nil, 100)

	_, err := m.GetMat(10, 11, gocv.MatTypeCV8UC1, "big")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory limit exceeded")

	mat, err := m.GetMat(10, 10, gocv.MatTypeCV8UC1, "fits")
	require.NoError(t, err)
	defer mat.Close()
	assert.Equal(t, int64(100), m.Stats().UsedBytes)
}

func TestManagerAdoptAndLogLeaks(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(logger.NewZerolog(&buf, zerolog.DebugLevel), 0)

	mat, err := m.Adopt(gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC1), "adopted")
	require.NoError(t, err)

	m.LogStats("Test")
	assert.Contains(t, buf.String(), "unreleased Mat")
	assert.Contains(t, buf.String(), "adopted")

	mat.Close()
	_, err = m.Adopt(gocv.NewMat(), "empty")
	assert.Error(t, err)
}
