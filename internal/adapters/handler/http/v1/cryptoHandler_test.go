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

// stubRefresh is a canned port.RefreshService that records call arguments.
type stubRefresh struct {
	composite  *domain.AssetComposite
	composites []domain.AssetComposite
	snapshots  []domain.Snapshot
	err        error

	gotSymbol     string
	gotForce      bool
	gotBlockchain string
	gotRange      string
	refreshedAll  bool
}

func (s *stubRefresh) GetAssetData(_ context.Context, symbol string, forceRefresh bool) (*domain.AssetComposite, error) {
	s.gotSymbol = symbol
	s.gotForce = forceRefresh
	return s.composite, s.err
}

func (s *stubRefresh) GetAllAssets(_ context.Context, forceRefresh bool) ([]domain.AssetComposite, error) {
	s.gotForce = forceRefresh
	return s.composites, s.err
}

func (s *stubRefresh) StoreSnapshot(_ context.Context, blockchain string) error {
	s.gotBlockchain = blockchain
	return s.err
}

func (s *stubRefresh) RefreshAll(_ context.Context) error {
	s.refreshedAll = true
	return s.err
}

func (s *stubRefresh) HistoricalRange(_ context.Context, symbol, rangeTag string) ([]domain.Snapshot, error) {
	s.gotSymbol = symbol
	s.gotRange = rangeTag
	return s.snapshots, s.err
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestGetCryptocurrencies_SingleSymbol(t *testing.T) {
	stub := &stubRefresh{composite: &domain.AssetComposite{Asset: domain.Asset{Symbol: "BTC", Name: "Bitcoin"}}}
	handler := NewCryptoHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/cryptocurrencies?symbol=BTC&refresh=true", nil)
	rec := httptest.NewRecorder()
	handler.GetCryptocurrencies(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "BTC", stub.gotSymbol)
	assert.True(t, stub.gotForce)

	var got domain.AssetComposite
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Bitcoin", got.Name)
}

func TestGetCryptocurrencies_AllAssets(t *testing.T) {
	stub := &stubRefresh{composites: []domain.AssetComposite{
		{Asset: domain.Asset{Symbol: "BTC"}},
		{Asset: domain.Asset{Symbol: "ETH"}},
	}}
	handler := NewCryptoHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/cryptocurrencies", nil)
	rec := httptest.NewRecorder()
	handler.GetCryptocurrencies(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, stub.gotForce)

	var got []domain.AssetComposite
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, 2)
}

func TestGetCryptocurrencies_NotFound(t *testing.T) {
	stub := &stubRefresh{err: domain.ErrNotFound}
	handler := NewCryptoHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/cryptocurrencies?symbol=DOGE", nil)
	rec := httptest.NewRecorder()
	handler.GetCryptocurrencies(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "not_found", resp.Error)
	assert.Contains(t, resp.Message, "DOGE")
}

func TestGetCryptocurrencies_ServiceError(t *testing.T) {
	stub := &stubRefresh{err: errors.New("db down")}
	handler := NewCryptoHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/cryptocurrencies?symbol=BTC", nil)
	rec := httptest.NewRecorder()
	handler.GetCryptocurrencies(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Error)
}

func TestGetHistoricalData_RequiresSymbol(t *testing.T) {
	handler := NewCryptoHandler(&stubRefresh{})

	req := httptest.NewRequest(http.MethodGet, "/historical-data", nil)
	rec := httptest.NewRecorder()
	handler.GetHistoricalData(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Error)
}

func TestGetHistoricalData_PassesRangeThrough(t *testing.T) {
	stub := &stubRefresh{snapshots: []domain.Snapshot{{ID: "snap-1"}}}
	handler := NewCryptoHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/historical-data?symbol=btc&range=7d", nil)
	rec := httptest.NewRecorder()
	handler.GetHistoricalData(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "btc", stub.gotSymbol)
	assert.Equal(t, "7d", stub.gotRange)

	var got []domain.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, 1)
}

func TestRefreshData_SingleBlockchain(t *testing.T) {
	stub := &stubRefresh{}
	handler := NewCryptoHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/refresh-data?blockchain=bitcoin", nil)
	rec := httptest.NewRecorder()
	handler.RefreshData(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bitcoin", stub.gotBlockchain)
	assert.False(t, stub.refreshedAll)

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Data refreshed for bitcoin", resp.Message)
}

func TestRefreshData_AllBlockchains(t *testing.T) {
	stub := &stubRefresh{}
	handler := NewCryptoHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/refresh-data", nil)
	rec := httptest.NewRecorder()
	handler.RefreshData(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.refreshedAll)

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "All data refreshed", resp.Message)
}

func TestRefreshData_StoreFailure(t *testing.T) {
	stub := &stubRefresh{err: errors.New("insert failed")}
	handler := NewCryptoHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/refresh-data?blockchain=bitcoin", nil)
	rec := httptest.NewRecorder()
	handler.RefreshData(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Error)
}
