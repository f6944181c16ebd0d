// Package api is the HTTP surface: JSON data routes, health, metrics and the
// single-page frontend.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"niftyscreener/internal/market"
	"niftyscreener/internal/metrics"
)

// Screener serves the data routes. The bool results report a cache hit.
type Screener interface {
	MarketData(ctx context.Context) ([]market.Quote, bool, error)
	StockData(ctx context.Context, symbol string) (market.StockDetail, bool, error)
	StockChart(ctx context.Context, symbol string) ([]market.ChartPoint, bool, error)
	StockSummary(ctx context.Context, symbol string) (market.Summary, bool, error)
}

type Config struct {
	Screener    Screener
	FrontendDir string
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// NewRouter builds the full handler tree.
func NewRouter(cfg Config) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &handlers{svc: cfg.Screener, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.GetHead)
	r.Use(requestID)
	r.Use(accessLog(log, cfg.Metrics))
	r.Use(recoverPanic(log))
	r.Use(withCORS)
	r.Use(withGzip)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/nifty500-market-data", h.marketData)
		r.Get("/stock-data/{symbol}", h.stockData)
		r.Get("/stock-chart/{symbol}", h.stockChart)
		r.Get("/stock-summary/{symbol}", h.stockSummary)
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, "no such endpoint")
		})
	})

	r.Get("/*", spaHandler(cfg.FrontendDir, log))
	return r
}
