//go:build integration

package watchlist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"vigil/internal/screening/models"
	"vigil/internal/watchlist"
	"vigil/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *watchlist.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = watchlist.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "watchlist_records"))
}

// TestInsertAndFetch verifies round-tripping a record through the table,
// including array and nullable columns.
func (s *PostgresStoreSuite) TestInsertAndFetch() {
	ctx := context.Background()

	id, err := s.store.Insert(ctx, models.WatchlistRecord{
		ListName:        "OFAC SDN List",
		Source:          "OFAC",
		Country:         "United States",
		Name:            "Viktor Petrov",
		Aliases:         []string{"V. Petrov", "Victor Petrov"},
		DateOfBirth:     "1960-04-01",
		Nationality:     "Russian",
		Type:            models.EntityIndividual,
		DesignationDate: "2022-03-01",
		Reason:          "Sanctions evasion",
		Active:          true,
	})
	s.Require().NoError(err)
	s.Positive(id)

	records, err := s.store.ActiveRecords(ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 1)

	r := records[0]
	s.Equal("Viktor Petrov", r.Name)
	s.Equal([]string{"V. Petrov", "Victor Petrov"}, r.Aliases)
	s.Equal("1960-04-01", r.DateOfBirth)
	s.Equal(models.EntityIndividual, r.Type)
	s.True(r.Active)
}

// TestInactiveExcluded verifies delisted records never reach screening.
func (s *PostgresStoreSuite) TestInactiveExcluded() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, models.WatchlistRecord{
		ListName: "EU Sanctions", Source: "EU", Name: "Delisted Person",
		Type: models.EntityIndividual, Active: false,
	})
	s.Require().NoError(err)

	records, err := s.store.ActiveRecords(ctx)
	s.Require().NoError(err)
	s.Empty(records)
}

// TestNullableColumnsScanEmpty verifies NULL optional columns scan as empty
// strings.
func (s *PostgresStoreSuite) TestNullableColumnsScanEmpty() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, models.WatchlistRecord{
		ListName: "UN Security Council", Source: "UN", Name: "Minimal Entry",
		Type: models.EntityOrganization, Active: true,
	})
	s.Require().NoError(err)

	records, err := s.store.ActiveRecords(ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Empty(records[0].DateOfBirth)
	s.Empty(records[0].PassportNumber)
}

// TestLists verifies distinct list enumeration.
func (s *PostgresStoreSuite) TestLists() {
	ctx := context.Background()

	for _, r := range []models.WatchlistRecord{
		{ListName: "OFAC SDN List", Source: "OFAC", Name: "A", Type: models.EntityIndividual, Active: true},
		{ListName: "OFAC SDN List", Source: "OFAC", Name: "B", Type: models.EntityIndividual, Active: true},
		{ListName: "EU Sanctions", Source: "EU", Name: "C", Type: models.EntityIndividual, Active: true},
	} {
		_, err := s.store.Insert(ctx, r)
		s.Require().NoError(err)
	}

	lists, err := s.store.Lists(ctx)
	s.Require().NoError(err)
	s.Len(lists, 2)
}
