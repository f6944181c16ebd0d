// Package app assembles the screener pipeline from configuration.
package app

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"niftyscreener/internal/cache"
	"niftyscreener/internal/config"
	"niftyscreener/internal/httpx"
	"niftyscreener/internal/metrics"
	"niftyscreener/internal/provider/fmp"
	"niftyscreener/internal/provider/gemini"
	"niftyscreener/internal/screener"
)

// Ceiling for any single outbound request; per-call deadlines are shorter.
const clientTimeout = 60 * time.Second

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

// TTLs converts the cache section of cfg.
func TTLs(c config.Cache) screener.TTLs {
	return screener.TTLs{
		Market:  seconds(c.MarketTTLSec),
		Stock:   seconds(c.StockTTLSec),
		Chart:   seconds(c.ChartTTLSec),
		Summary: seconds(c.SummaryTTLSec),
	}
}

// NewHTTPClient returns the shared outbound client. Requests are logged at
// debug level by path only, since query strings carry credentials.
func NewHTTPClient(log *zap.Logger) *httpx.Client {
	c := httpx.New(clientTimeout)
	c.Observe = func(req *http.Request, resp *http.Response, err error, elapsed time.Duration) {
		fields := []zap.Field{
			zap.String("host", req.URL.Host),
			zap.String("path", req.URL.Path),
			zap.Duration("elapsed", elapsed),
		}
		if err != nil {
			log.Debug("outbound request failed", append(fields, zap.Error(err))...)
			return
		}
		log.Debug("outbound request", append(fields, zap.Int("status", resp.StatusCode))...)
	}
	return c
}

// NewService builds both upstream clients, the cache and the pipeline
// service. Missing credentials are logged, not fatal.
func NewService(ctx context.Context, cfg config.Config, log *zap.Logger, m *metrics.Metrics) (*screener.Service, error) {
	httpClient := NewHTTPClient(log.Named("http"))

	quotes := fmp.NewClient(cfg.FMP.APIKey,
		fmp.WithBaseURL(cfg.FMP.BaseURL),
		fmp.WithHTTPClient(httpClient),
		fmp.WithTimeouts(fmp.Timeouts{
			Bulk:    seconds(cfg.FMP.BulkTimeoutSec),
			Quote:   seconds(cfg.FMP.QuoteTimeoutSec),
			Chart:   seconds(cfg.FMP.ChartTimeoutSec),
			Profile: seconds(cfg.FMP.ProfileTimeoutSec),
		}),
		fmp.WithObserver(func(endpoint, outcome string, elapsed time.Duration) {
			m.ObserveUpstream(fmp.Name, endpoint, outcome, elapsed)
		}),
		fmp.WithLogger(log.Named("fmp")),
	)
	if !quotes.Enabled() {
		log.Warn("FMP_API_KEY not set; market data routes will fail")
	}

	gen, err := gemini.NewClient(ctx, cfg.Gemini.APIKey,
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithTimeout(seconds(cfg.Gemini.TimeoutSec)),
		gemini.WithHTTPClient(httpClient.Standard()),
		gemini.WithObserver(func(endpoint, outcome string, elapsed time.Duration) {
			m.ObserveUpstream(gemini.Name, endpoint, outcome, elapsed)
		}),
		gemini.WithLogger(log.Named("gemini")),
	)
	if err != nil {
		return nil, err
	}
	if !gen.Enabled() {
		log.Warn("GEMINI_API_KEY not set; summary route will fail")
	}

	c := cache.New(
		cache.WithSingleFlight(cfg.Cache.SingleFlight),
		cache.WithRecorder(m),
		cache.WithLogger(log.Named("cache")),
	)

	return screener.New(quotes, gen, c,
		screener.WithTTLs(TTLs(cfg.Cache)),
		screener.WithLookback(cfg.FMP.HistoryDays),
		screener.WithLogger(log.Named("screener")),
	), nil
}
