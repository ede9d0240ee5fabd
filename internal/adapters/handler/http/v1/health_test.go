package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KeliLabs/cryptoview/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHealth struct {
	status   *domain.HealthStatus
	detailed *domain.HealthStatus
	err      error
}

func (s *stubHealth) GetSystemHealth(_ context.Context) (*domain.HealthStatus, error) {
	return s.status, s.err
}

func (s *stubHealth) GetDetailedHealth(_ context.Context) (*domain.HealthStatus, error) {
	return s.detailed, s.err
}

func TestGetSystemHealth_StatusCodes(t *testing.T) {
	cases := []struct {
		status   string
		wantCode int
	}{
		{"healthy", http.StatusOK},
		{"degraded", http.StatusOK},
		{"unhealthy", http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			handler := NewHealthHandler(&stubHealth{status: &domain.HealthStatus{
				Status:     tc.status,
				Components: map[string]string{"database": "healthy"},
				Timestamp:  1700000000,
			}})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			handler.GetSystemHealth(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tc.status, resp.Status)
			assert.Equal(t, "healthy", resp.Components["database"])
		})
	}
}

func TestGetDetailedHealth(t *testing.T) {
	handler := NewHealthHandler(&stubHealth{detailed: &domain.HealthStatus{
		Status:     "degraded",
		Components: map[string]string{"database": "healthy", "upstream": "unhealthy"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/health/detailed", nil)
	rec := httptest.NewRecorder()
	handler.GetDetailedHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "unhealthy", resp.Components["upstream"])
}

func TestGetSystemHealth_ServiceError(t *testing.T) {
	handler := NewHealthHandler(&stubHealth{err: errors.New("ping timeout")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.GetSystemHealth(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "internal_error", resp.Error)
}

func TestGetSystemHealth_NoService(t *testing.T) {
	handler := NewHealthHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.GetSystemHealth(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "service_unavailable", resp.Error)
}
