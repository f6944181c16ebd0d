package fmp

import (
	"context"
	"fmt"
	"net/url"

	"niftyscreener/internal/market"
)

// Profile fetches company attributes for the summary prompt.
func (c *Client) Profile(ctx context.Context, symbol string) (market.RawProfile, error) {
	ticker := market.ToUpstream(symbol)

	var profiles []market.RawProfile
	if err := c.get(ctx, "profile", "/profile/"+url.PathEscape(ticker), nil, c.timeouts.Profile, &profiles); err != nil {
		return market.RawProfile{}, err
	}
	if len(profiles) == 0 {
		return market.RawProfile{}, fmt.Errorf("%w: no profile for %s", market.ErrNotFound, market.FromUpstream(ticker))
	}
	return profiles[0], nil
}
