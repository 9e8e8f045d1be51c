// Package results persists completed screening results for audit review.
package results

import (
	"context"

	"vigil/internal/screening/models"
)

// Store writes screening results and their findings.
type Store interface {
	SaveScreening(ctx context.Context, result *models.ScreeningResult) error
	// RecentScreenings returns the newest results first, without findings.
	RecentScreenings(ctx context.Context, limit int) ([]models.ScreeningResult, error)
}
