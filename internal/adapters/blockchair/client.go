package blockchair

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/metrics"
)

// Client talks to the Blockchair statistics API. Each call is a single
// attempt with the configured timeout; there are no retries, no backoff,
// and no circuit breaking. Failures come back as *domain.UpstreamError and
// the caller decides whether they matter.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client. apiKey may be empty; requests then run against
// the provider's unauthenticated rate limits.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// The provider wraps chain statistics in a "data" envelope.
type statsEnvelope struct {
	Data domain.BlockchainStats `json:"data"`
}

// FetchStats fetches and decodes /{blockchain}/stats.
func (c *Client) FetchStats(ctx context.Context, blockchain string) (*domain.BlockchainStats, error) {
	raw, err := c.FetchRawStats(ctx, blockchain)
	if err != nil {
		return nil, err
	}

	var env statsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.UpstreamErrors.WithLabelValues(blockchain).Inc()
		return nil, &domain.UpstreamError{Blockchain: blockchain, Err: fmt.Errorf("malformed payload: %w", err)}
	}

	return &env.Data, nil
}

// FetchRawStats fetches /{blockchain}/stats verbatim.
func (c *Client) FetchRawStats(ctx context.Context, blockchain string) (json.RawMessage, error) {
	return c.get(ctx, blockchain, fmt.Sprintf("%s/%s/stats", c.baseURL, blockchain))
}

// FetchAddressDetail fetches the address dashboard verbatim.
func (c *Client) FetchAddressDetail(ctx context.Context, blockchain, address string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/%s/dashboards/address/%s", c.baseURL, blockchain, url.PathEscape(address))
	return c.get(ctx, blockchain, endpoint)
}

func (c *Client) get(ctx context.Context, blockchain, endpoint string) (json.RawMessage, error) {
	metrics.UpstreamRequests.WithLabelValues(blockchain).Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Blockchain: blockchain, Err: err}
	}

	if c.apiKey != "" {
		q := req.URL.Query()
		q.Set("key", c.apiKey)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(blockchain).Inc()
		return nil, &domain.UpstreamError{Blockchain: blockchain, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamErrors.WithLabelValues(blockchain).Inc()
		return nil, &domain.UpstreamError{Blockchain: blockchain, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(blockchain).Inc()
		return nil, &domain.UpstreamError{Blockchain: blockchain, Err: err}
	}

	return body, nil
}
