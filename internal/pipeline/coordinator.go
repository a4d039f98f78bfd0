package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"sketchvec/internal/config"
	"sketchvec/internal/edges"
	"sketchvec/internal/logger"
)

var (
	ErrNoSource = errors.New("no image loaded")
	ErrNoResult = errors.New("nothing vectorized yet")
)

// Coordinator holds the interactive session state: the loaded source, the
// active configuration and the last result. All methods are safe for
// concurrent use; a vectorization runs outside the lock so the UI can keep
// reading the previous result.
type Coordinator struct {
	mu         sync.RWMutex
	vectorizer *Vectorizer
	source     *Source
	result     *Result
	cfg        config.VectorizationConfig
	generation uint64
	log        logger.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewCoordinator(backend edges.Backend, log logger.Logger) *Coordinator {
	if log == nil {
		log = logger.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := &Coordinator{
		vectorizer: NewVectorizer(backend, log),
		cfg:        config.Default(),
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
	}
	log.Info("PipelineCoordinator", "initialized", map[string]interface{}{
		"backend": backend.Name(),
	})
	return c
}

// SetBackend swaps the edge backend for later runs.
func (c *Coordinator) SetBackend(backend edges.Backend) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectorizer = NewVectorizer(backend, c.log)
}

func (c *Coordinator) BackendName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vectorizer.Backend().Name()
}

func (c *Coordinator) Load(r io.Reader, name string) (*Source, error) {
	start := time.Now()
	src, err := LoadReader(r, name)
	if err != nil {
		c.log.Error("PipelineCoordinator", err, map[string]interface{}{
			"operation": "load_image",
			"name":      name,
		})
		return nil, err
	}

	c.mu.Lock()
	c.source = src
	c.result = nil
	c.generation++
	c.mu.Unlock()

	c.log.Info("PipelineCoordinator", "image loaded", map[string]interface{}{
		"name":      name,
		"width":     src.Width,
		"height":    src.Height,
		"format":    src.Format,
		"load_time": time.Since(start),
	})
	return src, nil
}

func (c *Coordinator) SetConfig(cfg config.VectorizationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) Config() config.VectorizationConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Vectorize runs the pipeline on the current source with the current
// config. A result computed for a source that was replaced meanwhile is
// returned but not stored.
func (c *Coordinator) Vectorize(ctx context.Context) (*Result, error) {
	c.mu.RLock()
	src, cfg, v, gen := c.source, c.cfg, c.vectorizer, c.generation
	c.mu.RUnlock()

	if src == nil {
		return nil, ErrNoSource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := v.Run(src.Data, cfg)
	if err != nil {
		return nil, err
	}
	res.Name = src.Name

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generation == gen {
		c.result = res
	}
	c.mu.Unlock()
	return res, nil
}

func (c *Coordinator) Source() *Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

func (c *Coordinator) Result() *Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

// Save writes the last result in format (json, svg or png).
func (c *Coordinator) Save(w io.Writer, format string) error {
	c.mu.RLock()
	res := c.result
	c.mu.RUnlock()

	if res == nil {
		return ErrNoResult
	}

	start := time.Now()
	if err := Save(w, res, format); err != nil {
		c.log.Error("PipelineCoordinator", err, map[string]interface{}{
			"operation": "save_result",
			"format":    format,
		})
		return err
	}

	c.log.Info("PipelineCoordinator", "result saved", map[string]interface{}{
		"format":    format,
		"strokes":   res.Strokes.Len(),
		"save_time": time.Since(start),
	})
	return nil
}

func (c *Coordinator) Context() context.Context {
	return c.ctx
}

func (c *Coordinator) Cancel() {
	c.cancel()
}

func (c *Coordinator) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Info("PipelineCoordinator", "shutdown started", nil)
	c.cancel()
	c.source = nil
	c.result = nil
	c.log.Info("PipelineCoordinator", "shutdown completed", nil)
}
