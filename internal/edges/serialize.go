package edges

import (
	"context"

	"golang.org/x/sync/semaphore"

	"sketchvec/internal/config"
)

// serialBackend funnels every Detect through one slot. Waiters are served
// in arrival order, which makes it a single-worker FIFO queue.
type serialBackend struct {
	inner Backend
	slot  *semaphore.Weighted
}

// Serialize wraps a backend that is not safe for concurrent use.
func Serialize(b Backend) Backend {
	if _, ok := b.(*serialBackend); ok {
		return b
	}
	return &serialBackend{inner: b, slot: semaphore.NewWeighted(1)}
}

func (s *serialBackend) Name() string { return s.inner.Name() }

func (s *serialBackend) Detect(data []byte, cfg config.VectorizationConfig) (*ContourSet, error) {
	// Background never cancels, so Acquire only returns once the slot is ours.
	if err := s.slot.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	defer s.slot.Release(1)
	return s.inner.Detect(data, cfg)
}
