package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a tracked cryptocurrency in the catalog. Symbols are stored
// uppercase and matched case-insensitively on lookup.
type Asset struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Blockchain   string    `json:"blockchain"`
	BlockchairID string    `json:"blockchairId,omitempty"`
	CoingeckoID  string    `json:"coingeckoId,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Snapshot is one timestamped record of market and chain statistics for an
// asset. Rows are append-only; every field sourced from upstream is optional
// and stays nil when the provider omitted it.
type Snapshot struct {
	ID               string           `json:"id"`
	AssetID          string           `json:"assetId"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	MarketCap        *int64           `json:"marketCap,omitempty"`
	Volume24h        *int64           `json:"volume24h,omitempty"`
	BlockCount       *int64           `json:"blockCount,omitempty"`
	TransactionCount *int64           `json:"transactionCount,omitempty"`
	HashRate         *BigInt          `json:"hashRate,omitempty"`
	Timestamp        time.Time        `json:"timestamp"`
	DataSource       string           `json:"dataSource"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// AssetComposite is the per-request assembly the dashboard renders: the
// catalog entry, its most recent snapshot if one exists, and live upstream
// statistics when the chain is known to the provider.
type AssetComposite struct {
	Asset
	LatestSnapshot  *Snapshot        `json:"latestData,omitempty"`
	BlockchainStats *BlockchainStats `json:"blockchainStats,omitempty"`
}
