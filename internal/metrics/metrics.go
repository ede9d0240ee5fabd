package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cryptoview_cache_hits_total",
		Help: "Total number of cache reads that returned a usable value",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cryptoview_cache_misses_total",
		Help: "Total number of cache reads treated as a miss, including backend errors",
	})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptoview_upstream_requests_total",
		Help: "Total number of requests issued to the upstream statistics provider",
	}, []string{"blockchain"})

	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptoview_upstream_errors_total",
		Help: "Total number of failed upstream requests",
	}, []string{"blockchain"})

	SnapshotsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cryptoview_snapshots_stored_total",
		Help: "Total number of snapshot rows written by the refresh pipeline",
	})

	RefreshFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptoview_refresh_failures_total",
		Help: "Total number of per-asset refresh failures",
	}, []string{"stage"})
)
