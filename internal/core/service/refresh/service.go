package refresh

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/core/port"
	"github.com/KeliLabs/cryptoview/internal/metrics"
	"github.com/KeliLabs/cryptoview/internal/utils"
)

const (
	// Fixed TTLs for the two cache tiers.
	compositeTTL = 5 * time.Minute
	statsTTL     = 5 * time.Minute
	historyTTL   = 10 * time.Minute

	dataSource = "blockchair"
)

// Service is the data-refresh pipeline: cache-aside reads over the catalog,
// fetch-on-miss against the upstream provider, and append-only snapshot
// writes on explicit refresh. Cache and upstream failures degrade to
// partial results; persistence failures propagate to the request boundary.
type Service struct {
	cache     port.Cache
	assets    port.AssetRepository
	snapshots port.SnapshotRepository
	stats     port.StatsProvider
	workers   int

	now func() time.Time
}

func NewService(
	cache port.Cache,
	assets port.AssetRepository,
	snapshots port.SnapshotRepository,
	stats port.StatsProvider,
	workers int,
) *Service {
	if workers <= 0 {
		workers = 4
	}
	return &Service{
		cache:     cache,
		assets:    assets,
		snapshots: snapshots,
		stats:     stats,
		workers:   workers,
		now:       time.Now,
	}
}

// GetAssetData assembles the composite for one symbol. forceRefresh bypasses
// cache reads but never cache writes.
func (s *Service) GetAssetData(ctx context.Context, symbol string, forceRefresh bool) (*domain.AssetComposite, error) {
	key := assetKey(symbol)

	if !forceRefresh && s.cache != nil {
		var cached domain.AssetComposite
		if s.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	asset, err := s.assets.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// Latest snapshot is best-effort context for the dashboard; having none
	// yet is fine.
	latest, err := s.snapshots.Latest(ctx, asset.ID)
	if err != nil {
		return nil, err
	}

	var stats *domain.BlockchainStats
	if asset.BlockchairID != "" {
		stats = s.blockchainStats(ctx, asset.BlockchairID, forceRefresh)
	}

	composite := &domain.AssetComposite{
		Asset:           *asset,
		LatestSnapshot:  latest,
		BlockchainStats: stats,
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, composite, compositeTTL)
	}

	return composite, nil
}

// blockchainStats runs the inner cache-then-upstream lookup per chain.
// Upstream failures are logged and collapse to nil; the composite is still
// served with stats absent.
func (s *Service) blockchainStats(ctx context.Context, blockchain string, forceRefresh bool) *domain.BlockchainStats {
	key := blockchainStatsKey(blockchain)

	if !forceRefresh && s.cache != nil {
		var cached domain.BlockchainStats
		if s.cache.Get(ctx, key, &cached) {
			return &cached
		}
	}

	stats, err := s.stats.FetchStats(ctx, blockchain)
	if err != nil {
		slog.Error("Upstream stats fetch failed, continuing without stats",
			"blockchain", blockchain, "error", err)
		return nil
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, stats, statsTTL)
	}

	return stats
}

// GetAllAssets assembles composites for the whole active catalog. An asset
// whose assembly fails falls back to its bare catalog entry.
func (s *Service) GetAllAssets(ctx context.Context, forceRefresh bool) ([]domain.AssetComposite, error) {
	assets, err := s.assets.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.AssetComposite, len(assets))
	s.forEach(len(assets), func(i int) {
		composite, err := s.GetAssetData(ctx, assets[i].Symbol, forceRefresh)
		if err != nil {
			slog.Error("Failed to assemble composite, returning catalog entry only",
				"symbol", assets[i].Symbol, "error", err)
			results[i] = domain.AssetComposite{Asset: assets[i]}
			return
		}
		results[i] = *composite
	})

	return results, nil
}

// StoreSnapshot fetches live stats for a blockchain and appends one snapshot
// row. An unknown blockchain or a failed fetch is a logged no-op; only
// persistence failures surface to the caller. There is no transaction across
// fetch and insert: a write failure after a successful fetch drops the data.
func (s *Service) StoreSnapshot(ctx context.Context, blockchain string) error {
	asset, err := s.assets.FindByBlockchain(ctx, blockchain)
	if errors.Is(err, domain.ErrNotFound) {
		slog.Error("No catalog entry for blockchain, skipping snapshot", "blockchain", blockchain)
		metrics.RefreshFailures.WithLabelValues("resolve").Inc()
		return nil
	}
	if err != nil {
		return err
	}

	// Force the inner lookup so a refresh always hits the provider.
	stats := s.blockchainStats(ctx, blockchain, true)
	if stats == nil {
		slog.Error("No stats data for blockchain, skipping snapshot", "blockchain", blockchain)
		metrics.RefreshFailures.WithLabelValues("fetch").Inc()
		return nil
	}

	snapshot := buildSnapshot(asset.ID, stats, s.now())
	if err := s.snapshots.Insert(ctx, snapshot); err != nil {
		metrics.RefreshFailures.WithLabelValues("store").Inc()
		return err
	}

	metrics.SnapshotsStored.Inc()
	slog.Info("Stored snapshot", "blockchain", blockchain, "asset_id", asset.ID)
	return nil
}

// RefreshAll stores a snapshot for every active asset with an upstream id.
// Failures are logged per asset and never cancel the siblings.
func (s *Service) RefreshAll(ctx context.Context) error {
	assets, err := s.assets.ListActive(ctx)
	if err != nil {
		return err
	}

	s.forEach(len(assets), func(i int) {
		asset := assets[i]
		if asset.BlockchairID == "" {
			return
		}
		if err := s.StoreSnapshot(ctx, asset.BlockchairID); err != nil {
			slog.Error("Refresh failed for asset", "symbol", asset.Symbol, "error", err)
		}
	})

	return nil
}

// HistoricalRange returns snapshots within the trailing window for a coarse
// range tag, cached per (symbol, tag). An unknown symbol yields an empty
// slice, not an error.
func (s *Service) HistoricalRange(ctx context.Context, symbol, rangeTag string) ([]domain.Snapshot, error) {
	tag := utils.NormalizeRange(rangeTag)
	key := historicalKey(symbol, tag)

	if s.cache != nil {
		var cached []domain.Snapshot
		if s.cache.Get(ctx, key, &cached) {
			return cached, nil
		}
	}

	asset, err := s.assets.FindBySymbol(ctx, symbol)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Snapshot{}, nil
	}
	if err != nil {
		return nil, err
	}

	from, to := utils.RangeWindow(tag)
	snapshots, err := s.snapshots.Range(ctx, asset.ID, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, snapshots, historyTTL)
	}

	return snapshots, nil
}

// forEach runs fn over indexes [0, n) on a bounded worker pool.
func (s *Service) forEach(n int, fn func(i int)) {
	if n == 0 {
		return
	}

	workers := s.workers
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
