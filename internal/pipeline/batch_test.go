package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchvec/internal/config"
	"sketchvec/internal/edges"
)

func TestVectorizeBatchKeepsInputOrder(t *testing.T) {
	v := NewVectorizer(&maskBackend{}, nil)
	inputs := []Input{
		{Name: "square.png", Data: squarePNG(t)},
		{Name: "empty.png", Data: nil},
		{Name: "blank.png", Data: pngWithInk(t, 16, 16)},
		{Name: "lines.png", Data: parallelLinesPNG(t)},
	}

	results, err := v.VectorizeBatch(context.Background(), inputs, config.Default(), 2)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, r := range results {
		assert.Equal(t, inputs[i].Name, r.Name)
	}

	require.NoError(t, results[0].Err)
	assert.Equal(t, 4, results[0].Result.Strokes.Len())
	assert.Equal(t, "square.png", results[0].Result.Name)

	assert.True(t, edges.IsDecodeError(results[1].Err))
	assert.Nil(t, results[1].Result)

	require.NoError(t, results[2].Err)
	assert.True(t, results[2].Result.Strokes.IsEmpty())

	require.NoError(t, results[3].Err)
	assert.Positive(t, results[3].Result.Strokes.Len())
}

func TestVectorizeBatchMatchesSequentialRuns(t *testing.T) {
	v := NewVectorizer(&maskBackend{}, nil)
	cfg := config.Centerline()

	inputs := make([]Input, 8)
	for i := range inputs {
		if i%2 == 0 {
			inputs[i] = Input{Name: "t", Data: glyphTPNG(t)}
		} else {
			inputs[i] = Input{Name: "sq", Data: squarePNG(t)}
		}
	}

	results, err := v.VectorizeBatch(context.Background(), inputs, cfg, 0)
	require.NoError(t, err)

	for i, in := range inputs {
		want, err := v.Vectorize(in.Data, cfg)
		require.NoError(t, err)
		require.NoError(t, results[i].Err)
		assert.True(t, want.Equal(results[i].Result.Strokes), "item %d", i)
	}
}

func TestVectorizeBatchCancelled(t *testing.T) {
	backend := &maskBackend{}
	v := NewVectorizer(backend, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := v.VectorizeBatch(ctx, []Input{{Name: "a", Data: squarePNG(t)}, {Name: "b"}}, config.Default(), 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Zero(t, backend.calls.Load())
}

func TestVectorizeBatchRejectsInvalidConfig(t *testing.T) {
	v := NewVectorizer(&maskBackend{}, nil)
	cfg := config.Default()
	cfg.ResampleSpacing = 0

	_, err := v.VectorizeBatch(context.Background(), []Input{{Name: "a"}}, cfg, 1)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
