// Package watchlist owns sanctioned-entity records. The screening core only
// reads snapshots; ingestion and refresh happen outside this service.
package watchlist

import (
	"context"

	"vigil/internal/screening/models"
)

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store

// ListInfo describes one distinct watchlist.
type ListInfo struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Store provides read access to watchlist records.
type Store interface {
	// ActiveRecords returns a snapshot of every active record.
	ActiveRecords(ctx context.Context) ([]models.WatchlistRecord, error)

	// Lists enumerates the distinct list names and their sources.
	Lists(ctx context.Context) ([]ListInfo, error)
}
