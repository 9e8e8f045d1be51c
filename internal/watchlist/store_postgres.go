package watchlist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"vigil/internal/screening/models"
)

// PostgresStore reads watchlist records from Postgres. The ingest pipeline
// writes the table; this service only selects from it.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ActiveRecords(ctx context.Context) ([]models.WatchlistRecord, error) {
	query := `
		SELECT id, list_name, source, country, name, aliases,
		       COALESCE(date_of_birth, ''), COALESCE(nationality, ''),
		       COALESCE(passport_number, ''), entity_type,
		       COALESCE(designation_date, ''), COALESCE(reason, '')
		FROM watchlist_records
		WHERE active = TRUE
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query active watchlist records: %w", err)
	}
	defer rows.Close()

	var records []models.WatchlistRecord
	for rows.Next() {
		var r models.WatchlistRecord
		var entityType string
		if err := rows.Scan(
			&r.ID, &r.ListName, &r.Source, &r.Country, &r.Name,
			pq.Array(&r.Aliases), &r.DateOfBirth, &r.Nationality,
			&r.PassportNumber, &entityType, &r.DesignationDate, &r.Reason,
		); err != nil {
			return nil, fmt.Errorf("scan watchlist record: %w", err)
		}
		r.Type = models.EntityType(entityType)
		r.Active = true
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist records: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) Lists(ctx context.Context) ([]ListInfo, error) {
	query := `SELECT DISTINCT list_name, source FROM watchlist_records ORDER BY list_name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query watchlist lists: %w", err)
	}
	defer rows.Close()

	var lists []ListInfo
	for rows.Next() {
		var l ListInfo
		if err := rows.Scan(&l.Name, &l.Source); err != nil {
			return nil, fmt.Errorf("scan watchlist list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// Insert adds a record. Used by seeding and by integration tests; the real
// ingest path lives outside this service.
func (s *PostgresStore) Insert(ctx context.Context, r models.WatchlistRecord) (int64, error) {
	query := `
		INSERT INTO watchlist_records
			(list_name, source, country, name, aliases, date_of_birth,
			 nationality, passport_number, entity_type, designation_date, reason, active)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, NULLIF($10, ''), NULLIF($11, ''), $12)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		r.ListName, r.Source, r.Country, r.Name, pq.Array(r.Aliases),
		r.DateOfBirth, r.Nationality, r.PassportNumber, string(r.Type),
		r.DesignationDate, r.Reason, r.Active,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert watchlist record: %w", err)
	}
	return id, nil
}
