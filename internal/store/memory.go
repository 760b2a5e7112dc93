package store

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is a simple in-memory store used when no database URL is set.
type Memory struct {
	mu    sync.Mutex
	runs  map[string]Run
	order []string // insertion order
}

func NewMemory() *Memory {
	return &Memory{runs: map[string]Run{}}
}

func (m *Memory) SaveRun(ctx context.Context, r Run) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.Solution = slices.Clone(r.Solution)
	r.Meta = maps.Clone(r.Meta)
	if _, ok := m.runs[r.ID]; !ok {
		m.order = append(m.order, r.ID)
	}
	m.runs[r.ID] = r
	return r.ID, nil
}

func (m *Memory) GetRun(ctx context.Context, id string) (Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return Run{}, ErrNotFound
	}
	r.Solution = slices.Clone(r.Solution)
	r.Meta = maps.Clone(r.Meta)
	return r, nil
}

func (m *Memory) ListRuns(ctx context.Context, algorithm string, limit int) ([]Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Run
	for i := len(m.order) - 1; i >= 0; i-- {
		r := m.runs[m.order[i]]
		if algorithm != "" && r.Algorithm != algorithm {
			continue
		}
		r.Solution = slices.Clone(r.Solution)
		r.Meta = maps.Clone(r.Meta)
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
