package domain

import "github.com/shopspring/decimal"

// BlockchainStats is the upstream statistics payload modeled as an explicit
// partial record: every field the provider may omit is a pointer and stays
// nil when absent. Presence is decided once, when the client decodes the
// response, not re-checked ad hoc downstream.
type BlockchainStats struct {
	Blocks                   *int64           `json:"blocks,omitempty"`
	Transactions             *int64           `json:"transactions,omitempty"`
	Outputs                  *int64           `json:"outputs,omitempty"`
	MempoolTransactions      *int64           `json:"mempool_transactions,omitempty"`
	MempoolSize              *int64           `json:"mempool_size,omitempty"`
	MarketPriceUSD           *decimal.Decimal `json:"market_price_usd,omitempty"`
	MarketPriceBTC           *decimal.Decimal `json:"market_price_btc,omitempty"`
	MarketCapUSD             *decimal.Decimal `json:"market_cap_usd,omitempty"`
	VolumeUSD                *decimal.Decimal `json:"volume_usd,omitempty"`
	Volume24h                *decimal.Decimal `json:"volume_24h,omitempty"`
	InflationUSD             *decimal.Decimal `json:"inflation_usd,omitempty"`
	AverageTransactionFeeUSD *decimal.Decimal `json:"average_transaction_fee_usd,omitempty"`
	HashRate24h              *BigInt          `json:"hashrate_24h,omitempty"`
}
