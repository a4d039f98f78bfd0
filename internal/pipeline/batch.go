package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sketchvec/internal/config"
)

// Input is one named image for VectorizeBatch.
type Input struct {
	Name string
	Data []byte
}

// BatchResult pairs an input with its outcome. Exactly one of Result and
// Err is set for items that ran; items skipped after cancellation carry
// the context error.
type BatchResult struct {
	Name   string
	Result *Result
	Err    error
}

// VectorizeBatch runs Vectorize over inputs with at most limit calls in
// flight (limit <= 0 uses GOMAXPROCS). Results keep input order. A failing
// item does not stop the others; a cancelled ctx stops scheduling new ones.
func (v *Vectorizer) VectorizeBatch(ctx context.Context, inputs []Input, cfg config.VectorizationConfig, limit int) ([]BatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, in := range inputs {
		results[i].Name = in.Name
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			res, err := v.Run(in.Data, cfg)
			if err != nil {
				results[i].Err = err
				v.log.Warning("Vectorizer", "batch item failed", map[string]interface{}{
					"name":  in.Name,
					"error": err.Error(),
				})
				return nil
			}
			res.Name = in.Name
			results[i].Result = res
			return nil
		})
	}

	_ = g.Wait()
	return results, ctx.Err()
}
