package httpx

import (
	"net"
	"net/http"
	"time"
)

// Observer is told about every completed round trip. resp is nil when err is set.
type Observer func(req *http.Request, resp *http.Response, err error, elapsed time.Duration)

// Client wraps http.Client with upstream-friendly transport defaults and
// default headers. It satisfies the HTTPClient interfaces of the provider
// packages.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string
	Observe   Observer
}

// New builds a client whose overall ceiling is timeout; per-call deadlines
// come from the request context.
func New(timeout time.Duration) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{HTTP: &http.Client{Timeout: timeout, Transport: transport}, UserAgent: "nifty-screener/1.0"}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.prepare(req)
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if c.Observe != nil {
		c.Observe(req, resp, err, time.Since(start))
	}
	return resp, err
}

func (c *Client) prepare(req *http.Request) {
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
}

// Transport exposes the client as a RoundTripper so SDKs that take an
// *http.Client get the same headers and observation.
func (c *Client) Transport() http.RoundTripper {
	return roundTripper{c: c}
}

// Standard returns an *http.Client routed through c.
func (c *Client) Standard() *http.Client {
	return &http.Client{Timeout: c.HTTP.Timeout, Transport: c.Transport()}
}

type roundTripper struct{ c *Client }

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	rt.c.prepare(req)
	start := time.Now()
	resp, err := rt.c.HTTP.Transport.RoundTrip(req)
	if rt.c.Observe != nil {
		rt.c.Observe(req, resp, err, time.Since(start))
	}
	return resp, err
}
