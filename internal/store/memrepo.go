package store

import (
	"context"
	"sort"
	"sync"
)

// MemRepository is an in-memory Repository for development and tests.
type MemRepository struct {
	mu      sync.RWMutex
	games   map[string]*GameRecord
	reports map[string][]byte
}

// NewMemRepository returns an empty in-memory repository.
func NewMemRepository() *MemRepository {
	return &MemRepository{
		games:   make(map[string]*GameRecord),
		reports: make(map[string][]byte),
	}
}

func (m *MemRepository) SaveGame(_ context.Context, g *GameRecord) error {
	if g == nil {
		return nil
	}
	cp := *g
	cp.Moves = append([]byte(nil), g.Moves...)
	m.mu.Lock()
	m.games[g.ID] = &cp
	m.mu.Unlock()
	return nil
}

func (m *MemRepository) SaveReport(_ context.Context, gameID string, stats []byte) error {
	m.mu.Lock()
	m.reports[gameID] = append([]byte(nil), stats...)
	m.mu.Unlock()
	return nil
}

func (m *MemRepository) GetGame(_ context.Context, id string) (*GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *MemRepository) ListGames(_ context.Context, limit int) ([]*GameRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*GameRecord, 0, len(m.games))
	for _, g := range m.games {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndedAt.After(out[j].EndedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemRepository) GetReport(_ context.Context, gameID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats, ok := m.reports[gameID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), stats...), nil
}

func (m *MemRepository) Close() error { return nil }
