// Package screener runs each data pipeline: cache lookup, upstream call,
// normalization.
package screener

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"niftyscreener/internal/cache"
	"niftyscreener/internal/market"
	"niftyscreener/internal/provider/gemini"
)

// Cache routes. They double as metric labels.
const (
	RouteMarketData   = "nifty500-market-data"
	RouteStockData    = "stock-data"
	RouteStockChart   = "stock-chart"
	RouteStockSummary = "stock-summary"
)

// QuoteClient is the market data provider.
type QuoteClient interface {
	BulkQuotes(ctx context.Context, symbols []string) ([]market.RawQuote, error)
	Quote(ctx context.Context, symbol string) (market.RawQuote, error)
	Historical(ctx context.Context, symbol string, lookback int) ([]market.RawBar, error)
	Profile(ctx context.Context, symbol string) (market.RawProfile, error)
}

// TTLs sets cache lifetimes per route. Zero disables caching for that route.
type TTLs struct {
	Market  time.Duration
	Stock   time.Duration
	Chart   time.Duration
	Summary time.Duration
}

// DefaultTTLs are ten minutes for the bulk list, five for a single quote, an
// hour for charts and a day for summaries.
var DefaultTTLs = TTLs{
	Market:  10 * time.Minute,
	Stock:   5 * time.Minute,
	Chart:   time.Hour,
	Summary: 24 * time.Hour,
}

type Service struct {
	quotes   QuoteClient
	gen      gemini.Generator
	cache    *cache.Cache
	ttl      TTLs
	lookback int
	universe []string
	log      *zap.Logger
}

type Option func(*Service)

func WithTTLs(ttl TTLs) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithLookback sets how many daily bars a chart holds.
func WithLookback(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.lookback = days
		}
	}
}

// WithUniverse replaces the symbols served by MarketData.
func WithUniverse(symbols []string) Option {
	return func(s *Service) {
		s.universe = symbols
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func New(quotes QuoteClient, gen gemini.Generator, c *cache.Cache, options ...Option) *Service {
	s := &Service{
		quotes:   quotes,
		gen:      gen,
		cache:    c,
		ttl:      DefaultTTLs,
		lookback: 252,
		universe: market.Nifty500,
		log:      zap.NewNop(),
	}
	if s.cache == nil {
		s.cache = cache.New()
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// MarketData returns one normalized quote per universe symbol, in upstream order.
func (s *Service) MarketData(ctx context.Context) (quotes []market.Quote, cached bool, err error) {
	key := cache.Key{Route: RouteMarketData}
	return load(ctx, s, key, s.ttl.Market, func(ctx context.Context) ([]market.Quote, error) {
		raw, err := s.quotes.BulkQuotes(ctx, s.universe)
		if err != nil {
			return nil, err
		}
		return market.NormalizeQuotes(raw), nil
	})
}

// StockData returns the detail view for one symbol.
func (s *Service) StockData(ctx context.Context, symbol string) (detail market.StockDetail, cached bool, err error) {
	key := cache.Key{Route: RouteStockData, Symbol: canonical(symbol)}
	return load(ctx, s, key, s.ttl.Stock, func(ctx context.Context) (market.StockDetail, error) {
		raw, err := s.quotes.Quote(ctx, symbol)
		if err != nil {
			return market.StockDetail{}, err
		}
		return market.NormalizeDetail(raw), nil
	})
}

// StockChart returns daily bars oldest first. Unknown symbols yield an empty series.
func (s *Service) StockChart(ctx context.Context, symbol string) (points []market.ChartPoint, cached bool, err error) {
	key := cache.Key{Route: RouteStockChart, Symbol: canonical(symbol)}
	return load(ctx, s, key, s.ttl.Chart, func(ctx context.Context) ([]market.ChartPoint, error) {
		bars, err := s.quotes.Historical(ctx, symbol, s.lookback)
		if err != nil {
			return nil, err
		}
		return market.NormalizeChart(bars), nil
	})
}

// StockSummary generates an overview from the company profile. The symbol in
// the result is the caller's string, so the cache key is too.
func (s *Service) StockSummary(ctx context.Context, symbol string) (summary market.Summary, cached bool, err error) {
	key := cache.Key{Route: RouteStockSummary, Symbol: symbol}
	return load(ctx, s, key, s.ttl.Summary, func(ctx context.Context) (market.Summary, error) {
		if !s.gen.Enabled() {
			return market.Summary{}, gemini.ErrMissingKey()
		}
		profile, err := s.quotes.Profile(ctx, symbol)
		if err != nil {
			return market.Summary{}, err
		}
		text, err := s.gen.Generate(ctx, gemini.BuildPrompt(gemini.FactsFromProfile(symbol, profile)))
		if err != nil {
			return market.Summary{}, err
		}
		return market.NormalizeSummary(symbol, text), nil
	})
}

func load[T any](ctx context.Context, s *Service, key cache.Key, ttl time.Duration, fetch func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	v, hit, err := s.cache.GetOrLoad(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		s.log.Warn("pipeline failed", zap.Stringer("key", key), zap.Error(err))
		return zero, false, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, false, fmt.Errorf("cache entry %s holds %T", key, v)
	}
	return out, hit, nil
}

func canonical(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
