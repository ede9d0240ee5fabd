package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/core/port"
)

type InsightsHandler struct {
	insightsService port.InsightsService
}

func NewInsightsHandler(insightsService port.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
	}
}

// GetPredictions handles GET /predictions?symbol=BTC.
func (h *InsightsHandler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "symbol parameter is required")
		return
	}

	predictions, err := h.insightsService.Predictions(r.Context(), symbol)
	if errors.Is(err, domain.ErrNotFound) {
		h.writeErrorResponse(w, http.StatusNotFound, "cryptocurrency not found: "+symbol)
		return
	}
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "failed to fetch predictions: "+err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, predictions)
}

// GetSentiment handles GET /sentiment?symbol=BTC.
func (h *InsightsHandler) GetSentiment(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "symbol parameter is required")
		return
	}

	sentiment, err := h.insightsService.Sentiment(r.Context(), symbol)
	if errors.Is(err, domain.ErrNotFound) {
		h.writeErrorResponse(w, http.StatusNotFound, "cryptocurrency not found: "+symbol)
		return
	}
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "failed to fetch sentiment: "+err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, sentiment)
}

func (h *InsightsHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		w.Write([]byte(`{"error":"internal_error","message":"failed to encode response"}`))
	}
}

func (h *InsightsHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errorType := "bad_request"
	switch statusCode {
	case http.StatusNotFound:
		errorType = "not_found"
	case http.StatusInternalServerError:
		errorType = "internal_error"
	}

	h.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}
