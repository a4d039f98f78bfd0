package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/png"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"sketchvec/internal/config"
	"sketchvec/internal/edges"
	"sketchvec/internal/edges/native"
	"sketchvec/internal/geometry"
	"sketchvec/internal/logger"
)

func requireValidStrokes(t *testing.T, set geometry.StrokeSet) {
	t.Helper()
	for i := 0; i < set.Len(); i++ {
		require.GreaterOrEqual(t, len(set.At(i)), 2, "stroke %d", i)
	}
}

func TestVectorizeSquareGivesFourStraightStrokes(t *testing.T) {
	v := NewVectorizer(&maskBackend{}, logger.NewNop())

	set, err := v.Vectorize(squarePNG(t), config.Default())
	require.NoError(t, err)
	require.Equal(t, 4, set.Len())
	requireValidStrokes(t, set)

	for i := 0; i < set.Len(); i++ {
		s := set.At(i)
		chord := s.First().Dist(s.Last())
		assert.GreaterOrEqual(t, chord/s.Length(), 0.99, "stroke %d is not straight", i)
	}

	b := set.Bounds()
	assert.InDelta(t, -16, b.Min.X, 1e-6)
	assert.InDelta(t, -16, b.Min.Y, 1e-6)
	assert.LessOrEqual(t, b.Max.X, 15.0+1e-6)
	assert.LessOrEqual(t, b.Max.Y, 15.0+1e-6)

	first := set.At(0).First()
	assert.InDelta(t, -16, first.X, 1e-6)
	assert.InDelta(t, -16, first.Y, 1e-6)
}

func TestVectorizeAppliesWorldScale(t *testing.T) {
	v := NewVectorizer(&maskBackend{}, nil)
	cfg := config.Default()
	cfg.WorldScale = 0.5

	set, err := v.Vectorize(squarePNG(t), cfg)
	require.NoError(t, err)
	require.Equal(t, 4, set.Len())

	b := set.Bounds()
	assert.InDelta(t, -8, b.Min.X, 1e-6)
	assert.LessOrEqual(t, b.Max.X, 7.5+1e-6)
}

func TestVectorizeBlankImageIsEmpty(t *testing.T) {
	v := NewVectorizer(&maskBackend{}, nil)

	set, err := v.Vectorize(pngWithInk(t, 32, 32), config.Default())
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
}

func TestVectorizeMergesParallelLines(t *testing.T) {
	v := NewVectorizer(&maskBackend{}, nil)
	cfg := config.Default()
	cfg.MergeMaxDist = 12

	res, err := v.Run(parallelLinesPNG(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.ContoursKept)
	assert.Equal(t, 4, res.Stats.StrokesBeforeMerge)
	require.Equal(t, 1, res.Strokes.Len())
	requireValidStrokes(t, res.Strokes)

	cfg.MergeParallel = false
	set, err := v.Vectorize(parallelLinesPNG(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, set.Len())
}

// The native backend runs blur and Canny, so each ink edge yields a double
// contour that only the merger collapses back to one stroke per side.
func TestNativeBackendSquareMergesDoubleEdges(t *testing.T) {
	v := NewVectorizer(native.New(nil), nil)

	res, err := v.Run(squarePNG(t), config.Default())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.ContoursKept)
	assert.Equal(t, 8, res.Stats.StrokesBeforeMerge)
	assert.Equal(t, 4, res.Stats.StrokesAfterMerge)
	require.Equal(t, 4, res.Strokes.Len())
	requireValidStrokes(t, res.Strokes)
}

func TestNativeBackendMergesParallelLines(t *testing.T) {
	v := NewVectorizer(native.New(nil), nil)
	cfg := config.Default()
	cfg.MergeMaxDist = 12

	res, err := v.Run(parallelLinesPNG(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Stats.StrokesBeforeMerge)
	require.Equal(t, 1, res.Strokes.Len())
	requireValidStrokes(t, res.Strokes)
}

func TestNativeBackendCenterlineGivesFewerStrokesThanOutline(t *testing.T) {
	v := NewVectorizer(native.New(nil), nil)
	data := glyphTPNG(t)

	center, err := v.Vectorize(data, config.Centerline())
	require.NoError(t, err)
	outline, err := v.Vectorize(data, config.Outline())
	require.NoError(t, err)

	assert.Equal(t, 4, center.Len())
	assert.Equal(t, 14, outline.Len())
	assert.Less(t, center.Len(), outline.Len())
}

func TestVectorizeEmptyInputIsDecodeError(t *testing.T) {
	for _, b := range []edges.Backend{&maskBackend{}, native.New(nil)} {
		t.Run(b.Name(), func(t *testing.T) {
			v := NewVectorizer(b, nil)
			set, err := v.Vectorize(nil, config.Default())
			require.Error(t, err)
			assert.True(t, edges.IsDecodeError(err))
			assert.True(t, errors.Is(err, edges.ErrDecode))
			assert.True(t, set.IsEmpty())
		})
	}
}

func TestCenterlinePresetGivesFewerStrokesThanOutline(t *testing.T) {
	v := NewVectorizer(&maskBackend{}, nil)
	data := glyphTPNG(t)

	center, err := v.Vectorize(data, config.Centerline())
	require.NoError(t, err)
	outline, err := v.Vectorize(data, config.Outline())
	require.NoError(t, err)

	assert.Equal(t, 4, center.Len())
	assert.Equal(t, 7, outline.Len())
	assert.Less(t, center.Len(), outline.Len())
}

func TestVectorizeIsDeterministic(t *testing.T) {
	v := NewVectorizer(native.New(nil), nil)
	data := glyphTPNG(t)

	a, err := v.Vectorize(data, config.Default())
	require.NoError(t, err)
	b, err := v.Vectorize(data, config.Default())
	require.NoError(t, err)

	assert.False(t, a.IsEmpty())
	assert.True(t, a.Equal(b))
	requireValidStrokes(t, a)
}

func TestVectorizeRejectsInvalidConfigBeforeDecoding(t *testing.T) {
	backend := &maskBackend{}
	v := NewVectorizer(backend, nil)
	cfg := config.Default()
	cfg.WorldScale = 0

	_, err := v.Vectorize(squarePNG(t), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Zero(t, backend.calls.Load())
}

func TestVectorizeTextGlyphs(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 96, 32))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, 22),
	}
	d.DrawString("Hello")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	for _, name := range config.PresetNames() {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Preset(name)
			require.NoError(t, err)

			set, err := NewVectorizer(native.New(nil), nil).Vectorize(buf.Bytes(), cfg)
			require.NoError(t, err)
			requireValidStrokes(t, set)

			b := set.Bounds()
			assert.GreaterOrEqual(t, b.Min.X, -48.0)
			assert.LessOrEqual(t, b.Max.X, 48.0)
		})
	}
}

func TestRunLogsCompletion(t *testing.T) {
	var logs bytes.Buffer
	v := NewVectorizer(&maskBackend{}, logger.NewZerolog(&logs, zerolog.DebugLevel))

	res, err := v.Run(squarePNG(t), config.Default())
	require.NoError(t, err)
	assert.Equal(t, 64, res.Width)
	assert.Equal(t, res.Strokes.PointCount(), res.Stats.Points)

	assert.Contains(t, logs.String(), `"message":"vectorization completed"`)
	assert.Contains(t, logs.String(), `"strokes_after_merge":4`)
}
