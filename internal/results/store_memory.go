package results

import (
	"context"
	"sync"

	"vigil/internal/screening/models"
)

// MemoryStore keeps results in memory for tests and standalone runs.
type MemoryStore struct {
	mu      sync.RWMutex
	results []models.ScreeningResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveScreening(ctx context.Context, result *models.ScreeningResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, *result)
	return nil
}

func (s *MemoryStore) RecentScreenings(ctx context.Context, limit int) ([]models.ScreeningResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.results)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.ScreeningResult, 0, n)
	for i := len(s.results) - 1; i >= 0 && len(out) < n; i-- {
		r := s.results[i]
		r.Findings = nil
		out = append(out, r)
	}
	return out, nil
}
