//go:build integration

package watchlist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vigil/internal/platform/logger"
	"vigil/internal/screening/models"
	"vigil/internal/watchlist"
	"vigil/pkg/testutil/containers"
)

type CachedStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	inner *watchlist.MemoryStore
	store *watchlist.CachedStore
	ctx   context.Context
}

func TestCachedStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedStoreSuite))
}

func (s *CachedStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *CachedStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.inner = watchlist.NewMemoryStore()
	s.inner.Add(models.WatchlistRecord{Name: "Viktor Petrov", ListName: "OFAC SDN List", Source: "OFAC", Active: true})
	s.store = watchlist.NewCachedStore(s.inner, s.redis.Client, time.Minute, logger.New())
}

// TestReadThrough verifies the first read populates the cache and later
// writes to the inner store stay invisible until invalidation.
func (s *CachedStoreSuite) TestReadThrough() {
	records, err := s.store.ActiveRecords(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 1)

	s.inner.Add(models.WatchlistRecord{Name: "New Entry", ListName: "EU Sanctions", Source: "EU", Active: true})

	cached, err := s.store.ActiveRecords(s.ctx)
	s.Require().NoError(err)
	s.Len(cached, 1, "cached snapshot should not see the new record")

	s.store.Invalidate(s.ctx)

	fresh, err := s.store.ActiveRecords(s.ctx)
	s.Require().NoError(err)
	s.Len(fresh, 2)
}

// TestCorruptEntryFallsBack verifies garbage in the cache is dropped and the
// inner store serves the read.
func (s *CachedStoreSuite) TestCorruptEntryFallsBack() {
	s.Require().NoError(s.redis.Client.Set(s.ctx, "vigil:watchlist:active", "not json", time.Minute).Err())

	records, err := s.store.ActiveRecords(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 1)
}

// TestListsCached verifies list enumeration also round-trips the cache.
func (s *CachedStoreSuite) TestListsCached() {
	lists, err := s.store.Lists(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(lists, 1)
	s.Equal("OFAC SDN List", lists[0].Name)

	again, err := s.store.Lists(s.ctx)
	s.Require().NoError(err)
	s.Equal(lists, again)
}
