package store

import (
	"context"
	"sync"

	"routesolver/internal/model"
)

// Memory is a simple in-memory store used when no DATABASE_URL is set.
type Memory struct {
	mu      sync.Mutex
	results map[string]model.SolveResult // id -> result
	order   []string                     // insertion order for listing
}

func NewMemory() *Memory {
	return &Memory{results: map[string]model.SolveResult{}}
}

func (m *Memory) SaveResult(ctx context.Context, res model.SolveResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.results[res.ID]; !ok {
		m.order = append(m.order, res.ID)
	}
	m.results[res.ID] = res
	return nil
}

func (m *Memory) GetResult(ctx context.Context, id string) (model.SolveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.results[id]
	if !ok {
		return model.SolveResult{}, ErrNotFound
	}
	return res, nil
}

func (m *Memory) ListResults(ctx context.Context, cursor string, limit int) ([]model.SolveResult, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := 0
	if cursor != "" {
		for i, id := range m.order {
			if id == cursor {
				start = i + 1
				break
			}
		}
	}
	if limit <= 0 {
		limit = 100
	}
	out := []model.SolveResult{}
	var last string
	for i := start; i < len(m.order) && len(out) < limit; i++ {
		out = append(out, m.results[m.order[i]])
		last = m.order[i]
	}
	var next string
	if len(out) == limit && start+len(out) < len(m.order) {
		next = last
	}
	return out, next, nil
}
