// Test Mode: synthetic upstream statistics server for local development.
// Serves the provider's /{blockchain}/stats envelope with drifting values so
// the dashboard can run without network access or an API key.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"
)

// chainState holds the base figures for one chain plus the random walk state.
// Each chain owns its rng so the drift goroutine and request handlers never
// share generator state across locks.
type chainState struct {
	mu  sync.Mutex
	rng *rand.Rand

	price        float64
	marketCap    float64
	volume24h    float64
	blocks       int64
	transactions int64
	hashRate     *big.Int
	volatility   float64 // fraction of price per tick
}

// tick advances the walk: price drifts, counters only grow.
func (c *chainState) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	drift := (c.rng.Float64()*2 - 1) * c.volatility
	c.price *= 1 + drift
	c.marketCap *= 1 + drift
	c.volume24h *= 1 + (c.rng.Float64()*2-1)*c.volatility*2

	c.blocks += c.rng.Int63n(3)
	c.transactions += c.rng.Int63n(5000)
}

func (c *chainState) payload() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := map[string]any{
		"blocks":           c.blocks,
		"transactions":     c.transactions,
		"market_price_usd": round2(c.price),
		"market_cap_usd":   round2(c.marketCap),
		"volume_24h":       round2(c.volume24h),
	}
	if c.hashRate != nil {
		data["hashrate_24h"] = c.hashRate.String()
	}
	return map[string]any{"data": data}
}

func round2(v float64) float64 {
	return float64(int64(v*100)) / 100
}

func newChains(seed int64) map[string]*chainState {
	hr := func(s string) *big.Int {
		n, _ := new(big.Int).SetString(s, 10)
		return n
	}
	chains := map[string]*chainState{
		"bitcoin": {
			price: 65000, marketCap: 1.28e12, volume24h: 3.2e10,
			blocks: 861204, transactions: 1_054_331_020,
			hashRate: hr("734512890123456789"), volatility: 0.004,
		},
		"ethereum": {
			price: 3450, marketCap: 4.1e11, volume24h: 1.6e10,
			blocks: 20731455, transactions: 2_489_120_774,
			volatility: 0.006,
		},
		"bitcoin-cash": {
			price: 345, marketCap: 6.8e9, volume24h: 2.4e8,
			blocks: 861990, transactions: 401_220_553,
			hashRate: hr("3121456789012345"), volatility: 0.01,
		},
		"litecoin": {
			price: 68, marketCap: 5.1e9, volume24h: 3.9e8,
			blocks: 2734801, transactions: 221_004_918,
			hashRate: hr("912345678901234"), volatility: 0.008,
		},
	}

	offset := int64(0)
	for _, chain := range chains {
		offset++
		chain.rng = rand.New(rand.NewSource(seed + offset))
	}
	return chains
}

type statsServer struct {
	chains  map[string]*chainState
	latency time.Duration
	failPct int
	rng     *rand.Rand
	mu      sync.Mutex
}

func (s *statsServer) handleStats(w http.ResponseWriter, r *http.Request) {
	// Path shape: /{blockchain}/stats
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 || parts[1] != "stats" {
		http.NotFound(w, r)
		return
	}
	chain, ok := s.chains[parts[0]]
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"data":    nil,
			"context": map[string]any{"code": 404, "error": "unknown blockchain"},
		})
		return
	}

	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	s.mu.Lock()
	fail := s.failPct > 0 && s.rng.Intn(100) < s.failPct
	s.mu.Unlock()
	if fail {
		slog.Warn("Injecting upstream failure", "blockchain", parts[0])
		http.Error(w, "simulated upstream outage", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chain.payload())
}

func main() {
	var (
		port      = flag.Int("port", 50101, "Port to listen on")
		interval  = flag.Duration("interval", 5*time.Second, "How often values drift")
		latency   = flag.Duration("latency", 0, "Artificial response latency")
		failPct   = flag.Int("fail-pct", 0, "Percent of requests answered with 502")
		seed      = flag.Int64("seed", 0, "Random seed (0 means time-based)")
		debugFlag = flag.Bool("debug", false, "Enable debug logging")
		helpFlag  = flag.Bool("help", false, "Show help message")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  test-mode [--port <N>] [--interval <D>] [--latency <D>] [--fail-pct <N>]\n")
		fmt.Fprintf(os.Stderr, "  test-mode --help\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  --port N        Port to listen on (default 50101)\n")
		fmt.Fprintf(os.Stderr, "  --interval D    How often values drift (default 5s)\n")
		fmt.Fprintf(os.Stderr, "  --latency D     Artificial response latency (default 0)\n")
		fmt.Fprintf(os.Stderr, "  --fail-pct N    Percent of requests answered with 502 (default 0)\n")
		fmt.Fprintf(os.Stderr, "  --seed N        Random seed, 0 means time-based\n")
		fmt.Fprintf(os.Stderr, "  --debug         Enable debug logging\n")
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	src := *seed
	if src == 0 {
		src = time.Now().UnixNano()
	}
	srv := &statsServer{
		chains:  newChains(src),
		latency: *latency,
		failPct: *failPct,
		rng:     rand.New(rand.NewSource(src)),
	}

	// Background drift so repeated fetches see changing numbers.
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				for name, chain := range srv.chains {
					chain.tick()
					slog.Debug("Drifted chain values", "blockchain", name)
				}
			case <-stop:
				return
			}
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleStats)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: mux,
	}

	go func() {
		slog.Info("Synthetic stats server listening",
			"port", *port, "chains", len(srv.chains), "seed", src)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("Received shutdown signal", "signal", sig.String())

	close(stop)
	httpServer.Close()
	slog.Info("Synthetic stats server stopped")
}
