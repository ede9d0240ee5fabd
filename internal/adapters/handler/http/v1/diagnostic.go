package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/KeliLabs/cryptoview/internal/core/port"
)

// DiagnosticHandler exposes passthrough endpoints against the upstream
// provider. Useful when debugging payload shapes; not part of the dashboard
// pipeline.
type DiagnosticHandler struct {
	stats port.StatsProvider
}

func NewDiagnosticHandler(stats port.StatsProvider) *DiagnosticHandler {
	return &DiagnosticHandler{stats: stats}
}

// GetBlockchairTest handles GET /blockchair-test. With ?address= it returns
// the provider's address dashboard, otherwise the general chain stats, both
// verbatim.
func (h *DiagnosticHandler) GetBlockchairTest(w http.ResponseWriter, r *http.Request) {
	blockchain := r.URL.Query().Get("blockchain")
	if blockchain == "" {
		blockchain = "bitcoin"
	}
	address := r.URL.Query().Get("address")

	if address != "" {
		raw, err := h.stats.FetchAddressDetail(r.Context(), blockchain, address)
		if err != nil {
			writeDiagnosticError(w, err)
			return
		}
		writeRawJSON(w, raw)
		return
	}

	raw, err := h.stats.FetchRawStats(r.Context(), blockchain)
	if err != nil {
		writeDiagnosticError(w, err)
		return
	}

	writeRawJSON(w, map[string]json.RawMessage{"general": raw})
}

// Demo whale-tracker response structure. The address list is illustrative;
// a production version would page through the provider's richest-address
// endpoint.
type whaleAddress struct {
	Rank         int    `json:"rank"`
	Address      string `json:"address"`
	BalanceBTC   string `json:"balance_btc"`
	BalanceUSD   string `json:"balance_usd"`
	Transactions int    `json:"transactions"`
	LastActivity string `json:"last_activity"`
	Type         string `json:"type"`
}

var demoWhales = []whaleAddress{
	{Rank: 1, Address: "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh", BalanceBTC: "248,597.34", BalanceUSD: "$12,429,867,000", Transactions: 1834, LastActivity: "2024-01-15T10:30:00Z", Type: "unknown"},
	{Rank: 2, Address: "1P5ZEDWTKTFGxQjZphgWPQUpe554WKDfHQ", BalanceBTC: "194,775.84", BalanceUSD: "$9,738,792,000", Transactions: 892, LastActivity: "2024-01-15T08:45:00Z", Type: "exchange"},
	{Rank: 3, Address: "bc1qazcm763858nkj2dj986etajv6wquslv8uxwczt", BalanceBTC: "118,010.06", BalanceUSD: "$5,900,503,000", Transactions: 456, LastActivity: "2024-01-14T22:15:00Z", Type: "institutional"},
}

// GetWhaleTracker handles GET /whale-tracker, a demo endpoint combining live
// network stats with illustrative top-address data.
func (h *DiagnosticHandler) GetWhaleTracker(w http.ResponseWriter, r *http.Request) {
	blockchain := r.URL.Query().Get("blockchain")
	if blockchain == "" {
		blockchain = "bitcoin"
	}

	stats, err := h.stats.FetchStats(r.Context(), blockchain)
	if err != nil {
		writeDiagnosticError(w, err)
		return
	}

	networkStats := map[string]any{}
	if stats.MarketPriceUSD != nil {
		networkStats["current_price_usd"] = stats.MarketPriceUSD
	}
	if stats.Transactions != nil {
		networkStats["total_transactions"] = *stats.Transactions
	}
	if stats.HashRate24h != nil {
		networkStats["hash_rate"] = stats.HashRate24h
	}

	writeRawJSON(w, map[string]any{
		"success":       true,
		"blockchain":    blockchain,
		"network_stats": networkStats,
		"whale_data": map[string]any{
			"top_addresses": demoWhales,
			"analysis": map[string]any{
				"total_whale_balance_usd": "$28,068,162,000",
				"whale_concentration":     "11.2%",
				"recent_movements":        3,
				"trend":                   "stable",
			},
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeRawJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		w.Write([]byte(`{"error":"internal_error","message":"failed to encode response"}`))
	}
}

func writeDiagnosticError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   "internal_error",
		Message: "failed to fetch data: " + err.Error(),
	})
}
