package port

import (
	"context"
	"time"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
)

// AssetRepository is the catalog of tracked assets. Read-mostly; Upsert is
// used by seeding and administration.
type AssetRepository interface {
	// ListActive returns active assets ordered by symbol.
	ListActive(ctx context.Context) ([]domain.Asset, error)

	// FindBySymbol matches the symbol case-insensitively. Returns
	// domain.ErrNotFound when no catalog entry exists.
	FindBySymbol(ctx context.Context, symbol string) (*domain.Asset, error)

	// FindByBlockchain resolves an asset by its upstream blockchain id.
	// Returns domain.ErrNotFound when no catalog entry exists.
	FindByBlockchain(ctx context.Context, blockchain string) (*domain.Asset, error)

	// Upsert inserts or updates an asset keyed by symbol.
	Upsert(ctx context.Context, asset *domain.Asset) (*domain.Asset, error)
}

// SnapshotRepository stores the append-only time series per asset.
type SnapshotRepository interface {
	// Latest returns the most recent snapshot by timestamp, or nil when the
	// asset has none yet.
	Latest(ctx context.Context, assetID string) (*domain.Snapshot, error)

	// Range returns snapshots with from <= timestamp <= to, ascending.
	Range(ctx context.Context, assetID string, from, to time.Time) ([]domain.Snapshot, error)

	Insert(ctx context.Context, snapshot *domain.Snapshot) error

	// BulkInsert inserts many snapshots, skipping duplicates.
	BulkInsert(ctx context.Context, snapshots []domain.Snapshot) error
}

// InsightsRepository reads the auxiliary prediction and sentiment tables.
type InsightsRepository interface {
	LatestPredictions(ctx context.Context, assetID string, limit int) ([]domain.Prediction, error)
	LatestSentiment(ctx context.Context, assetID string, limit int) ([]domain.NewsSentiment, error)
}
