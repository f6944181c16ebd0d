package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"niftyscreener/internal/market"
)

// Name labels this provider in logs and metrics.
const Name = "gemini"

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
)

// Generator turns a prompt into text. Enabled reports whether calls can
// succeed at all, so callers can fail fast before gathering prompt inputs.
type Generator interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

var _ Generator = (*Client)(nil)

// Observer receives the outcome of every generation call.
type Observer func(endpoint, outcome string, elapsed time.Duration)

// Client generates text through the Gemini API.
type Client struct {
	sdk        *genai.Client
	model      string
	timeout    time.Duration
	httpClient *http.Client
	baseURL    string
	observe    Observer
	log        *zap.Logger
}

type Option func(*Client)

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient routes SDK traffic through httpClient.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL points the SDK at another endpoint, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
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

// NewClient builds a Gemini client. An empty key yields a client whose calls
// fail with market.ErrMissingCredential without touching the network.
func NewClient(ctx context.Context, key string, options ...Option) (*Client, error) {
	c := &Client{
		model:   defaultModel,
		timeout: defaultTimeout,
		log:     zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	if key == "" {
		return c, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	sdk, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	c.sdk = sdk
	return c, nil
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.sdk != nil }

// ErrMissingKey is returned by every call on a client built without a key.
func ErrMissingKey() error {
	return fmt.Errorf("%w: GEMINI_API_KEY is not configured", market.ErrMissingCredential)
}

// Generate sends prompt to the configured model and returns the response
// text. Provider failures and blank responses wrap
// market.ErrGenerationUnavailable.
func (c *Client) Generate(ctx context.Context, prompt string) (text string, err error) {
	if c.sdk == nil {
		return "", ErrMissingKey()
	}

	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		if c.observe != nil {
			c.observe("generate", outcome, time.Since(start))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.sdk.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", market.ErrGenerationUnavailable, err)
	}
	text = resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: model %s returned no text", market.ErrGenerationUnavailable, c.model)
	}
	c.log.Debug("generated summary",
		zap.String("model", c.model),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
