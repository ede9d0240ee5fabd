package refresh

import (
	"time"

	"github.com/KeliLabs/cryptoview/internal/core/domain"

	"github.com/shopspring/decimal"
)

// buildSnapshot normalizes the upstream partial record into a snapshot row.
// Price keeps its full decimal precision; market cap, volume and hash rate
// are floored to integers; block and transaction counts pass through.
// Absent source fields stay nil, never defaulted to zero.
func buildSnapshot(assetID string, stats *domain.BlockchainStats, ts time.Time) *domain.Snapshot {
	snapshot := &domain.Snapshot{
		AssetID:    assetID,
		Timestamp:  ts,
		DataSource: dataSource,
	}

	if stats.MarketPriceUSD != nil {
		price := *stats.MarketPriceUSD
		snapshot.Price = &price
	}

	snapshot.MarketCap = floorInt64(stats.MarketCapUSD)
	snapshot.Volume24h = floorInt64(stats.Volume24h)
	snapshot.BlockCount = copyInt64(stats.Blocks)
	snapshot.TransactionCount = copyInt64(stats.Transactions)

	if stats.HashRate24h != nil {
		hashRate := new(domain.BigInt)
		hashRate.Set(&stats.HashRate24h.Int)
		snapshot.HashRate = hashRate
	}

	return snapshot
}

func floorInt64(d *decimal.Decimal) *int64 {
	if d == nil {
		return nil
	}
	v := d.Floor().IntPart()
	return &v
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
