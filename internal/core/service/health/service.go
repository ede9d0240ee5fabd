package health

import (
	"context"
	"database/sql"
	"time"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/core/port"
)

type HealthService struct {
	db    *sql.DB
	cache port.Cache
	stats port.StatsProvider
}

func NewHealthService(db *sql.DB, cache port.Cache, stats port.StatsProvider) port.HealthService {
	return &HealthService{
		db:    db,
		cache: cache,
		stats: stats,
	}
}

func (s *HealthService) GetSystemHealth(ctx context.Context) (*domain.HealthStatus, error) {
	status := &domain.HealthStatus{
		Components: make(map[string]string),
		Timestamp:  time.Now().Unix(),
	}

	allHealthy := true

	// Check PostgreSQL
	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			status.Components["database"] = "unhealthy"
			allHealthy = false
		} else {
			status.Components["database"] = "healthy"
		}
	} else {
		status.Components["database"] = "unavailable"
		allHealthy = false
	}

	// Check Redis. The cache is advisory, so a broken cache only degrades.
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			status.Components["cache"] = "unhealthy"
			allHealthy = false
		} else {
			status.Components["cache"] = "healthy"
		}
	} else {
		status.Components["cache"] = "unavailable"
		allHealthy = false
	}

	// Determine overall status. Persistence is the only component fatal to
	// requests; everything else degrades.
	if allHealthy {
		status.Status = "healthy"
		status.Message = "All systems operational"
	} else if status.Components["database"] != "healthy" {
		status.Status = "unhealthy"
		status.Message = "Database is down"
	} else {
		status.Status = "degraded"
		status.Message = "Some components are not fully operational"
	}

	return status, nil
}

// GetDetailedHealth additionally probes the upstream statistics provider
// with a live request, so it is slower and rate-limited by the provider.
func (s *HealthService) GetDetailedHealth(ctx context.Context) (*domain.HealthStatus, error) {
	status, err := s.GetSystemHealth(ctx)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if _, err := s.stats.FetchRawStats(probeCtx, "bitcoin"); err != nil {
			status.Components["upstream"] = "unhealthy"
			if status.Status == "healthy" {
				status.Status = "degraded"
				status.Message = "Upstream statistics provider is unreachable"
			}
		} else {
			status.Components["upstream"] = "healthy"
		}
	} else {
		status.Components["upstream"] = "unavailable"
	}

	return status, nil
}
