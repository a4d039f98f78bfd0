//go:build !noopencv

package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"sketchvec/internal/logger"
	"sketchvec/internal/opencv/safe"
)

const defaultBudget = 512 * 1024 * 1024

// Manager accounts for the Mats one detection allocates and refuses
// allocations that would exceed its budget.
type Manager struct {
	mu           sync.Mutex
	logger       logger.Logger
	maxMemory    int64
	usedMemory   int64
	peakMemory   int64
	allocCount   int64
	deallocCount int64
	activeMats   map[uint64]*MatInfo
}

type MatInfo struct {
	ID        uint64
	Tag       string
	Size      int64
	Timestamp time.Time
}

type Stats struct {
	Allocations   int64
	Deallocations int64
	UsedBytes     int64
	PeakBytes     int64
	ActiveMats    int
}

func NewManager(log logger.Logger, budget int64) *Manager {
	if budget <= 0 {
		budget = defaultBudget
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		logger:     log,
		maxMemory:  budget,
		activeMats: make(map[uint64]*MatInfo),
	}
}

func (m *Manager) GetMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error) {
	size := int64(rows) * int64(cols) * int64(safe.BytesPerPixel(matType))
	if err := m.reserve(size); err != nil {
		return nil, err
	}

	mat, err := safe.NewMatWithTracker(rows, cols, matType, m, tag)
	if err != nil {
		m.unreserve(size)
		return nil, err
	}
	m.register(mat, size)
	return mat, nil
}

// Adopt places a Mat created outside the manager under its accounting.
func (m *Manager) Adopt(mat gocv.Mat, tag string) (*safe.Mat, error) {
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("cannot adopt empty Mat (%s)", tag)
	}

	size := int64(mat.Rows()) * int64(mat.Cols()) * int64(safe.BytesPerPixel(mat.Type()))
	if err := m.reserve(size); err != nil {
		mat.Close()
		return nil, err
	}

	sm, err := safe.Wrap(mat, m, tag)
	if err != nil {
		m.unreserve(size)
		return nil, err
	}
	m.register(sm, size)
	return sm, nil
}

func (m *Manager) reserve(size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.usedMemory+size > m.maxMemory {
		return fmt.Errorf("memory limit exceeded: would use %d bytes, limit is %d",
			m.usedMemory+size, m.maxMemory)
	}
	m.usedMemory += size
	if m.usedMemory > m.peakMemory {
		m.peakMemory = m.usedMemory
	}
	return nil
}

func (m *Manager) unreserve(size int64) {
	m.mu.Lock()
	m.usedMemory -= size
	m.mu.Unlock()
}

func (m *Manager) register(mat *safe.Mat, size int64) {
	m.mu.Lock()
	m.allocCount++
	m.activeMats[mat.ID()] = &MatInfo{
		ID:        mat.ID(),
		Tag:       mat.Tag(),
		Size:      size,
		Timestamp: time.Now(),
	}
	m.mu.Unlock()
}

// TrackDeallocation is called by safe.Mat.Close.
func (m *Manager) TrackDeallocation(id uint64, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deallocCount++
	if info, ok := m.activeMats[id]; ok {
		delete(m.activeMats, id)
		m.usedMemory -= info.Size
	}
}

func (m *Manager) ReleaseMat(mat *safe.Mat) {
	if mat != nil {
		mat.Close()
	}
}

func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Allocations:   m.allocCount,
		Deallocations: m.deallocCount,
		UsedBytes:     m.usedMemory,
		PeakBytes:     m.peakMemory,
		ActiveMats:    len(m.activeMats),
	}
}

// LogStats writes the counters at debug level and warns about Mats that
// are still open, oldest first.
func (m *Manager) LogStats(component string) {
	st := m.Stats()
	m.logger.Debug(component, "memory statistics", map[string]interface{}{
		"allocations":   st.Allocations,
		"deallocations": st.Deallocations,
		"used_bytes":    st.UsedBytes,
		"peak_bytes":    st.PeakBytes,
		"active_mats":   st.ActiveMats,
	})
	if st.ActiveMats > 0 {
		m.logOldestMats(component, 5)
	}
}

func (m *Manager) logOldestMats(component string, count int) {
	m.mu.Lock()
	infos := make([]MatInfo, 0, len(m.activeMats))
	for _, info := range m.activeMats {
		infos = append(infos, *info)
	}
	m.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Timestamp.Before(infos[j].Timestamp)
	})

	now := time.Now()
	for _, info := range infos[:min(count, len(infos))] {
		m.logger.Warning(component, "unreleased Mat", map[string]interface{}{
			"tag":  info.Tag,
			"size": info.Size,
			"age":  now.Sub(info.Timestamp).String(),
		})
	}
}
