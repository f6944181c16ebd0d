package fmp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"niftyscreener/internal/market"
)

const baseURL = "https://financialmodelingprep.com/api/v3"

// Name labels this provider in logs and metrics.
const Name = "fmp"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=fmp_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer receives the outcome of every upstream call.
type Observer func(endpoint, outcome string, elapsed time.Duration)

// Timeouts bounds each kind of call. Zero values fall back to defaults.
type Timeouts struct {
	Bulk    time.Duration
	Quote   time.Duration
	Chart   time.Duration
	Profile time.Duration
}

var defaultTimeouts = Timeouts{
	Bulk:    30 * time.Second,
	Quote:   10 * time.Second,
	Chart:   15 * time.Second,
	Profile: 10 * time.Second,
}

// Client is a client for the Financial Modeling Prep v3 API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query carries the api key and any additional query parameters.
	query    url.Values
	hasKey   bool
	timeouts Timeouts
	observe  Observer
	log      *zap.Logger
}

// Option is a configuration option for the FMP client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithTimeouts overrides per-call timeouts; zero fields keep their default.
func WithTimeouts(t Timeouts) Option {
	return func(c *Client) {
		if t.Bulk > 0 {
			c.timeouts.Bulk = t.Bulk
		}
		if t.Quote > 0 {
			c.timeouts.Quote = t.Quote
		}
		if t.Chart > 0 {
			c.timeouts.Chart = t.Chart
		}
		if t.Profile > 0 {
			c.timeouts.Profile = t.Profile
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observe = o
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a new FMP client. An empty key yields a client whose calls
// fail with market.ErrMissingCredential without touching the network.
func NewClient(key string, options ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
		timeouts:   defaultTimeouts,
		log:        zap.NewNop(),
	}
	if key != "" {
		// https://site.financialmodelingprep.com/developer/docs
		c.query.Set("apikey", key)
		c.hasKey = true
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.hasKey }

func errMissingKey() error {
	return fmt.Errorf("%w: FMP_API_KEY is not configured", market.ErrMissingCredential)
}

// get performs GET {baseURL}{path}?{query} under timeout and decodes the JSON
// body into out. Every failure wraps market.ErrUpstreamUnavailable.
func (c *Client) get(ctx context.Context, endpoint, path string, extra url.Values, timeout time.Duration, out any) (err error) {
	if !c.hasKey {
		return errMissingKey()
	}

	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		c.record(endpoint, outcome, time.Since(start))
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	query := maps.Clone(c.query)
	for k, vs := range extra {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	target := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: creating %s request: %v", market.ErrUpstreamUnavailable, endpoint, redact(err))
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: performing %s request: %v", market.ErrUpstreamUnavailable, endpoint, redact(err))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return fmt.Errorf("%w: %s returned status %d: %s", market.ErrUpstreamUnavailable, endpoint, res.StatusCode, string(b))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", market.ErrUpstreamUnavailable, endpoint, err)
	}
	c.log.Debug("upstream call",
		zap.String("endpoint", endpoint),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// redact drops the request URL (which carries the api key) from transport errors.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func (c *Client) record(endpoint, outcome string, elapsed time.Duration) {
	if c.observe != nil {
		c.observe(endpoint, outcome, elapsed)
	}
}
