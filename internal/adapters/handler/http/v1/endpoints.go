// File: internal/adapters/handler/http/v1/endpoints.go
package v1

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetDashboardRoutes sets up all dashboard API routes
func SetDashboardRoutes(router *http.ServeMux, cryptoHandler *CryptoHandler, insightsHandler *InsightsHandler, healthHandler *HealthHandler) {
	// Dashboard data routes
	router.HandleFunc("GET /cryptocurrencies", cryptoHandler.GetCryptocurrencies)
	router.HandleFunc("GET /historical-data", cryptoHandler.GetHistoricalData)
	router.HandleFunc("POST /refresh-data", cryptoHandler.RefreshData)

	// Auxiliary insight routes
	router.HandleFunc("GET /predictions", insightsHandler.GetPredictions)
	router.HandleFunc("GET /sentiment", insightsHandler.GetSentiment)

	// System health routes
	router.HandleFunc("GET /health", healthHandler.GetSystemHealth)
	router.HandleFunc("GET /health/detailed", healthHandler.GetDetailedHealth)

	// Prometheus metrics
	router.Handle("GET /metrics", promhttp.Handler())
}

// SetDiagnosticRoutes sets up upstream passthrough routes (debugging aid)
func SetDiagnosticRoutes(router *http.ServeMux, diagnosticHandler *DiagnosticHandler) {
	router.HandleFunc("GET /blockchair-test", diagnosticHandler.GetBlockchairTest)
	router.HandleFunc("GET /whale-tracker", diagnosticHandler.GetWhaleTracker)
}
