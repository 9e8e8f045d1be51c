//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schema mirrors the production DDL the ingest pipeline provisions.
const schema = `
CREATE TABLE IF NOT EXISTS watchlist_records (
	id               BIGSERIAL PRIMARY KEY,
	list_name        TEXT NOT NULL,
	source           TEXT NOT NULL,
	country          TEXT NOT NULL DEFAULT '',
	name             TEXT NOT NULL,
	aliases          TEXT[] NOT NULL DEFAULT '{}',
	date_of_birth    TEXT,
	nationality      TEXT,
	passport_number  TEXT,
	entity_type      TEXT NOT NULL DEFAULT 'individual',
	designation_date TEXT,
	reason           TEXT,
	active           BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS screening_results (
	id             UUID PRIMARY KEY,
	candidate_name TEXT NOT NULL,
	candidate_type TEXT NOT NULL,
	risk_score     DOUBLE PRECISION NOT NULL,
	decision       TEXT NOT NULL,
	confidence     DOUBLE PRECISION NOT NULL,
	latency_ms     BIGINT NOT NULL,
	screened_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS screening_matches (
	id             BIGSERIAL PRIMARY KEY,
	screening_id   UUID NOT NULL REFERENCES screening_results(id) ON DELETE CASCADE,
	record_id      BIGINT NOT NULL,
	record_name    TEXT NOT NULL,
	list_name      TEXT NOT NULL,
	source         TEXT NOT NULL,
	matched_fields TEXT[] NOT NULL DEFAULT '{}',
	strategy       TEXT NOT NULL,
	confidence     DOUBLE PRECISION NOT NULL,
	risk_score     DOUBLE PRECISION NOT NULL
);
`

// PostgresContainer wraps a testcontainers Postgres instance with an open
// connection pool and the screening schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a Postgres container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("vigil_test"),
		tcpostgres.WithUsername("vigil"),
		tcpostgres.WithPassword("vigil"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	return &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        db,
	}
}

// TruncateTables empties the given tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", "))
	_, err := p.DB.ExecContext(ctx, query)
	return err
}
