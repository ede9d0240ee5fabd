package main

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleStats_KnownChain(t *testing.T) {
	srv := &statsServer{
		chains: newChains(1),
		rng:    rand.New(rand.NewSource(1)),
	}

	req := httptest.NewRequest(http.MethodGet, "/bitcoin/stats", nil)
	rec := httptest.NewRecorder()
	srv.handleStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Contains(t, envelope.Data, "blocks")
	assert.Contains(t, envelope.Data, "market_price_usd")
	assert.Equal(t, `"734512890123456789"`, string(envelope.Data["hashrate_24h"]))
}

func TestHandleStats_UnknownChain(t *testing.T) {
	srv := &statsServer{
		chains: newChains(1),
		rng:    rand.New(rand.NewSource(1)),
	}

	req := httptest.NewRequest(http.MethodGet, "/dogecoin/stats", nil)
	rec := httptest.NewRecorder()
	srv.handleStats(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStats_FailureInjection(t *testing.T) {
	srv := &statsServer{
		chains:  newChains(1),
		failPct: 100,
		rng:     rand.New(rand.NewSource(1)),
	}

	req := httptest.NewRequest(http.MethodGet, "/bitcoin/stats", nil)
	rec := httptest.NewRecorder()
	srv.handleStats(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// Requests and the drift loop run concurrently in production; serving under a
// running ticker must stay race-free (run with -race).
func TestHandleStats_ConcurrentWithDrift(t *testing.T) {
	srv := &statsServer{
		chains:  newChains(1),
		failPct: 50,
		rng:     rand.New(rand.NewSource(1)),
	}

	stop := make(chan struct{})
	var drift sync.WaitGroup
	drift.Add(1)
	go func() {
		defer drift.Done()
		for {
			select {
			case <-stop:
				return
			default:
				for _, chain := range srv.chains {
					chain.tick()
				}
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				req := httptest.NewRequest(http.MethodGet, "/bitcoin/stats", nil)
				rec := httptest.NewRecorder()
				srv.handleStats(rec, req)
				assert.Contains(t, []int{http.StatusOK, http.StatusBadGateway}, rec.Code)
			}
		}()
	}

	wg.Wait()
	close(stop)

	done := make(chan struct{})
	go func() {
		drift.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("drift loop did not stop")
	}
}
