package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/core/port"
)

type HealthHandler struct {
	healthService port.HealthService
}

func NewHealthHandler(healthService port.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Timestamp  int64             `json:"timestamp"`
	Message    string            `json:"message,omitempty"`
}

// GetSystemHealth handles GET /health.
func (h *HealthHandler) GetSystemHealth(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, func(ctx context.Context) (*domain.HealthStatus, error) {
		return h.healthService.GetSystemHealth(ctx)
	})
}

// GetDetailedHealth handles GET /health/detailed. Slower: it probes the
// upstream provider with a live request.
func (h *HealthHandler) GetDetailedHealth(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, func(ctx context.Context) (*domain.HealthStatus, error) {
		return h.healthService.GetDetailedHealth(ctx)
	})
}

func (h *HealthHandler) render(w http.ResponseWriter, r *http.Request, check func(context.Context) (*domain.HealthStatus, error)) {
	if h.healthService == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "health service not available")
		return
	}

	healthStatus, err := check(r.Context())
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "failed to get system health: "+err.Error())
		return
	}

	// An unhealthy system still answers; the status code carries the verdict.
	// Degraded means operational with warnings, so it stays 200.
	statusCode := http.StatusOK
	switch healthStatus.Status {
	case "unhealthy":
		statusCode = http.StatusServiceUnavailable
	case "healthy", "degraded":
		statusCode = http.StatusOK
	default:
		statusCode = http.StatusInternalServerError
	}

	h.writeJSONResponse(w, statusCode, HealthResponse{
		Status:     healthStatus.Status,
		Components: healthStatus.Components,
		Timestamp:  healthStatus.Timestamp,
		Message:    healthStatus.Message,
	})
}

func (h *HealthHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		w.Write([]byte(`{"error":"internal_error","message":"failed to encode response"}`))
	}
}

func (h *HealthHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errorType := "internal_error"
	switch statusCode {
	case http.StatusServiceUnavailable:
		errorType = "service_unavailable"
	case http.StatusBadRequest:
		errorType = "bad_request"
	}

	h.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}
