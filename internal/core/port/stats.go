package port

import (
	"context"
	"encoding/json"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
)

// StatsProvider is the upstream blockchain-statistics API. One attempt per
// call, no retries; the caller decides what a failure means.
type StatsProvider interface {
	// FetchStats returns the decoded statistics for a blockchain id, or a
	// *domain.UpstreamError on network failure, non-2xx status, or a
	// malformed payload.
	FetchStats(ctx context.Context, blockchain string) (*domain.BlockchainStats, error)

	// FetchRawStats returns the provider's response verbatim. Used by the
	// diagnostic endpoint only.
	FetchRawStats(ctx context.Context, blockchain string) (json.RawMessage, error)

	// FetchAddressDetail returns the provider's address dashboard verbatim.
	FetchAddressDetail(ctx context.Context, blockchain, address string) (json.RawMessage, error)
}
