package refresh

import "strings"

// Cache keys are derived deterministically from (namespace, id, optional
// range tag) so entries can be invalidated by pattern.

func assetKey(symbol string) string {
	return "cryptocurrency:" + strings.ToUpper(symbol)
}

func blockchainStatsKey(blockchain string) string {
	return "blockchain:stats:" + blockchain
}

func historicalKey(symbol, rangeTag string) string {
	return "historical:" + strings.ToUpper(symbol) + ":" + rangeTag
}
