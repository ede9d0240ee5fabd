package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/core/port"
)

type CryptoHandler struct {
	refreshService port.RefreshService
}

func NewCryptoHandler(
	refreshService port.RefreshService,
) *CryptoHandler {
	return &CryptoHandler{
		refreshService: refreshService,
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// GetCryptocurrencies handles GET /cryptocurrencies.
// With ?symbol= it returns one composite, otherwise the whole catalog.
// ?refresh=true bypasses cache reads.
func (h *CryptoHandler) GetCryptocurrencies(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	if symbol != "" {
		data, err := h.refreshService.GetAssetData(r.Context(), symbol, forceRefresh)
		if errors.Is(err, domain.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "cryptocurrency not found: "+symbol)
			return
		}
		if err != nil {
			h.writeErrorResponse(w, http.StatusInternalServerError, "failed to fetch data: "+err.Error())
			return
		}

		h.writeJSONResponse(w, http.StatusOK, data)
		return
	}

	data, err := h.refreshService.GetAllAssets(r.Context(), forceRefresh)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "failed to fetch data: "+err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, data)
}

// GetHistoricalData handles GET /historical-data?symbol=BTC&range=7d.
func (h *CryptoHandler) GetHistoricalData(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "symbol parameter is required")
		return
	}

	rangeTag := r.URL.Query().Get("range")

	data, err := h.refreshService.HistoricalRange(r.Context(), symbol, rangeTag)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "failed to fetch historical data: "+err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, data)
}

// RefreshData handles POST /refresh-data. With ?blockchain= it refreshes one
// chain, otherwise the whole catalog.
func (h *CryptoHandler) RefreshData(w http.ResponseWriter, r *http.Request) {
	blockchain := r.URL.Query().Get("blockchain")

	if blockchain != "" {
		if err := h.refreshService.StoreSnapshot(r.Context(), blockchain); err != nil {
			h.writeErrorResponse(w, http.StatusInternalServerError, "failed to refresh data: "+err.Error())
			return
		}
		h.writeJSONResponse(w, http.StatusOK, MessageResponse{Message: "Data refreshed for " + blockchain})
		return
	}

	if err := h.refreshService.RefreshAll(r.Context()); err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "failed to refresh data: "+err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, MessageResponse{Message: "All data refreshed"})
}

// Helper methods

func (h *CryptoHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		w.Write([]byte(`{"error":"internal_error","message":"failed to encode response"}`))
	}
}

func (h *CryptoHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errorType := "bad_request"
	switch statusCode {
	case http.StatusNotFound:
		errorType = "not_found"
	case http.StatusInternalServerError:
		errorType = "internal_error"
	}

	response := ErrorResponse{
		Error:   errorType,
		Message: message,
	}

	h.writeJSONResponse(w, statusCode, response)
}
