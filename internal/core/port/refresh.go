package port

import (
	"context"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
)

// RefreshService is the data-refresh pipeline: cache-aside reads over the
// catalog, fetch-on-miss against the upstream provider, and snapshot writes
// on explicit refresh.
type RefreshService interface {
	// GetAssetData assembles the composite for one symbol. forceRefresh
	// bypasses cache reads but not cache writes. Returns domain.ErrNotFound
	// for symbols outside the catalog.
	GetAssetData(ctx context.Context, symbol string, forceRefresh bool) (*domain.AssetComposite, error)

	// GetAllAssets assembles composites for the whole active catalog.
	GetAllAssets(ctx context.Context, forceRefresh bool) ([]domain.AssetComposite, error)

	// StoreSnapshot fetches live stats for a blockchain and appends a
	// snapshot row. Unknown blockchains and upstream failures are logged
	// no-ops; persistence failures propagate.
	StoreSnapshot(ctx context.Context, blockchain string) error

	// RefreshAll runs StoreSnapshot for every active asset with a bounded
	// worker pool. Per-asset failures are logged, never cancel siblings.
	RefreshAll(ctx context.Context) error

	// HistoricalRange returns snapshots within a coarse trailing window
	// ("1h", "24h", "7d", "30d"; default "24h").
	HistoricalRange(ctx context.Context, symbol, rangeTag string) ([]domain.Snapshot, error)
}

// InsightsService reads the auxiliary prediction and sentiment data.
type InsightsService interface {
	Predictions(ctx context.Context, symbol string) ([]domain.Prediction, error)
	Sentiment(ctx context.Context, symbol string) ([]domain.NewsSentiment, error)
}
