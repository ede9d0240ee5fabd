package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/core/port"
)

// The initial catalog. Upsert keyed by symbol keeps reruns idempotent.
var seedAssets = []domain.Asset{
	{Symbol: "BTC", Name: "Bitcoin", Blockchain: "bitcoin", BlockchairID: "bitcoin", CoingeckoID: "bitcoin", IsActive: true},
	{Symbol: "ETH", Name: "Ethereum", Blockchain: "ethereum", BlockchairID: "ethereum", CoingeckoID: "ethereum", IsActive: true},
	{Symbol: "BCH", Name: "Bitcoin Cash", Blockchain: "bitcoin-cash", BlockchairID: "bitcoin-cash", CoingeckoID: "bitcoin-cash", IsActive: true},
	{Symbol: "LTC", Name: "Litecoin", Blockchain: "litecoin", BlockchairID: "litecoin", CoingeckoID: "litecoin", IsActive: true},
}

// Seed ensures the default assets exist.
func Seed(ctx context.Context, repo port.AssetRepository) error {
	for i := range seedAssets {
		asset := seedAssets[i]
		if _, err := repo.Upsert(ctx, &asset); err != nil {
			return fmt.Errorf("failed to seed asset %s: %w", asset.Symbol, err)
		}
		slog.Debug("Seeded asset", "symbol", asset.Symbol)
	}
	return nil
}
