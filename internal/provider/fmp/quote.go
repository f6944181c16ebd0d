package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"niftyscreener/internal/market"
)

// BulkQuotes fetches quotes for all symbols in one request. Symbols are
// caller tickers; the exchange suffix is added here. An empty result is
// treated as the provider being unavailable.
func (c *Client) BulkQuotes(ctx context.Context, symbols []string) ([]market.RawQuote, error) {
	tickers := market.UpstreamList(symbols)
	if len(tickers) == 0 {
		return nil, fmt.Errorf("%w: no symbols requested", market.ErrUpstreamUnavailable)
	}

	var quotes []market.RawQuote
	if err := c.get(ctx, "bulk_quote", "/quote/"+joinPath(tickers), nil, c.timeouts.Bulk, &quotes); err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: bulk quote endpoint returned no data", market.ErrUpstreamUnavailable)
	}
	return quotes, nil
}

// Quote fetches a single symbol. The provider answers unknown symbols with an
// empty list, reported as market.ErrNotFound.
func (c *Client) Quote(ctx context.Context, symbol string) (market.RawQuote, error) {
	ticker := market.ToUpstream(symbol)

	var quotes []market.RawQuote
	if err := c.get(ctx, "quote", "/quote/"+url.PathEscape(ticker), nil, c.timeouts.Quote, &quotes); err != nil {
		return market.RawQuote{}, err
	}
	if len(quotes) == 0 {
		return market.RawQuote{}, fmt.Errorf("%w: no quote for %s", market.ErrNotFound, market.FromUpstream(ticker))
	}
	return quotes[0], nil
}

func joinPath(tickers []string) string {
	escaped := make([]string, len(tickers))
	for i, t := range tickers {
		escaped[i] = url.PathEscape(t)
	}
	return strings.Join(escaped, ",")
}
