package watchlist

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"vigil/internal/screening/models"
)

const (
	cacheKeyRecords = "vigil:watchlist:active"
	cacheKeyLists   = "vigil:watchlist:lists"
)

// CachedStore is a read-through cache in front of another Store. Screening
// fetches the full active snapshot on every call, so caching it keeps the
// database off the hot path. Cache failures fall back to the inner store.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (s *CachedStore) ActiveRecords(ctx context.Context) ([]models.WatchlistRecord, error) {
	if data, err := s.client.Get(ctx, cacheKeyRecords).Bytes(); err == nil {
		var records []models.WatchlistRecord
		if err := json.Unmarshal(data, &records); err == nil {
			return records, nil
		}
		// Corrupt cache entry: drop it and reload from the store.
		s.client.Del(ctx, cacheKeyRecords)
	}

	records, err := s.inner.ActiveRecords(ctx)
	if err != nil {
		return nil, err
	}
	s.set(ctx, cacheKeyRecords, records)
	return records, nil
}

func (s *CachedStore) Lists(ctx context.Context) ([]ListInfo, error) {
	if data, err := s.client.Get(ctx, cacheKeyLists).Bytes(); err == nil {
		var lists []ListInfo
		if err := json.Unmarshal(data, &lists); err == nil {
			return lists, nil
		}
		s.client.Del(ctx, cacheKeyLists)
	}

	lists, err := s.inner.Lists(ctx)
	if err != nil {
		return nil, err
	}
	s.set(ctx, cacheKeyLists, lists)
	return lists, nil
}

// Invalidate clears the cached snapshot, e.g. after a seed or refresh.
func (s *CachedStore) Invalidate(ctx context.Context) {
	if err := s.client.Del(ctx, cacheKeyRecords, cacheKeyLists).Err(); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "watchlist cache invalidation failed", "error", err)
	}
}

func (s *CachedStore) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "watchlist cache write failed", "key", key, "error", err)
	}
}
