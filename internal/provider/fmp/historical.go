package fmp

import (
	"context"
	"net/url"
	"strconv"

	"niftyscreener/internal/market"
)

// DefaultLookback is one trading year of daily bars.
const DefaultLookback = 252

type historicalResponse struct {
	Symbol     string          `json:"symbol"`
	Historical []market.RawBar `json:"historical"`
}

// Historical fetches the trailing lookback daily bars, newest first as the
// provider returns them. A symbol without history yields an empty series.
func (c *Client) Historical(ctx context.Context, symbol string, lookback int) ([]market.RawBar, error) {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	ticker := market.ToUpstream(symbol)
	q := url.Values{"timeseries": []string{strconv.Itoa(lookback)}}

	var body historicalResponse
	if err := c.get(ctx, "historical", "/historical-price-full/"+url.PathEscape(ticker), q, c.timeouts.Chart, &body); err != nil {
		return nil, err
	}
	if body.Historical == nil {
		return []market.RawBar{}, nil
	}
	return body.Historical, nil
}
