package watchlist

import (
	"context"
	"sync"

	"vigil/internal/screening/models"
)

// MemoryStore is an in-memory Store for tests and standalone runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.WatchlistRecord
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Add inserts a record, assigning an ID when the caller left it zero.
func (s *MemoryStore) Add(records ...models.WatchlistRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if r.ID == 0 {
			r.ID = s.nextID
		}
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
		s.records = append(s.records, r)
	}
}

func (s *MemoryStore) ActiveRecords(ctx context.Context) ([]models.WatchlistRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.WatchlistRecord, 0, len(s.records))
	for _, r := range s.records {
		if r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) Lists(ctx context.Context) ([]ListInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var lists []ListInfo
	for _, r := range s.records {
		if _, ok := seen[r.ListName]; ok {
			continue
		}
		seen[r.ListName] = struct{}{}
		lists = append(lists, ListInfo{Name: r.ListName, Source: r.Source})
	}
	return lists, nil
}
