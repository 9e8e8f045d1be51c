package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"vigil/internal/screening/models"
)

// PostgresStore writes screening results to the screening_results and
// screening_matches tables inside one transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveScreening(ctx context.Context, result *models.ScreeningResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin screening tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO screening_results
			(id, candidate_name, candidate_type, risk_score, decision, confidence,
			 latency_ms, screened_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		result.ID, result.Candidate.Name, string(result.Candidate.Type),
		result.RiskScore, string(result.Decision), result.Confidence,
		result.Latency.Milliseconds(), result.ScreenedAt,
	)
	if err != nil {
		return fmt.Errorf("insert screening result: %w", err)
	}

	for _, f := range result.Findings {
		fields := make([]string, len(f.MatchedFields))
		for i, mf := range f.MatchedFields {
			fields[i] = string(mf)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO screening_matches
				(screening_id, record_id, record_name, list_name, source,
				 matched_fields, strategy, confidence, risk_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			result.ID, f.RecordID, f.RecordName, f.ListName, f.Source,
			pq.Array(fields), string(f.Strategy), f.Confidence, f.RiskScore,
		)
		if err != nil {
			return fmt.Errorf("insert screening match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit screening tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecentScreenings(ctx context.Context, limit int) ([]models.ScreeningResult, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, candidate_name, candidate_type, risk_score, decision,
		       confidence, latency_ms, screened_at
		FROM screening_results
		ORDER BY screened_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent screenings: %w", err)
	}
	defer rows.Close()

	var out []models.ScreeningResult
	for rows.Next() {
		var r models.ScreeningResult
		var candidateType, decision string
		var latencyMS int64
		if err := rows.Scan(
			&r.ID, &r.Candidate.Name, &candidateType, &r.RiskScore,
			&decision, &r.Confidence, &latencyMS, &r.ScreenedAt,
		); err != nil {
			return nil, fmt.Errorf("scan screening result: %w", err)
		}
		r.Candidate.Type = models.EntityType(candidateType)
		r.Decision = models.Decision(decision)
		r.Latency = time.Duration(latencyMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}
