package market

import "github.com/shopspring/decimal"

// NormalizeQuote maps a provider quote into a bulk row.
func NormalizeQuote(r RawQuote) Quote {
	price, prev := deref(r.Price), deref(r.PreviousClose)
	change, pct := changes(price, prev)
	q := Quote{
		Symbol:        FromUpstream(r.Symbol),
		Price:         price,
		PreviousClose: prev,
		Change:        change,
		PercentChange: pct,
		Volume:        r.Volume,
		MarketCap:     r.MarketCap,
	}
	if r.Name != nil {
		q.Name = *r.Name
	}
	return q
}

// NormalizeQuotes keeps the provider's ordering.
func NormalizeQuotes(rs []RawQuote) []Quote {
	out := make([]Quote, 0, len(rs))
	for _, r := range rs {
		out = append(out, NormalizeQuote(r))
	}
	return out
}

// NormalizeDetail maps a provider quote into the single-stock view.
func NormalizeDetail(r RawQuote) StockDetail {
	change, pct := changes(deref(r.Price), deref(r.PreviousClose))
	return StockDetail{
		Symbol:        FromUpstream(r.Symbol),
		LongName:      r.Name,
		CurrentPrice:  r.Price,
		PreviousClose: r.PreviousClose,
		DayHigh:       r.DayHigh,
		DayLow:        r.DayLow,
		Change:        change,
		PercentChange: pct,
		Volume:        r.Volume,
		MarketCap:     r.MarketCap,
	}
}

// NormalizeChart turns a newest-first provider series into an oldest-first
// chart series carrying only date and OHLC.
func NormalizeChart(bars []RawBar) []ChartPoint {
	out := make([]ChartPoint, 0, len(bars))
	for i := len(bars) - 1; i >= 0; i-- {
		b := bars[i]
		out = append(out, ChartPoint{Time: b.Date, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close})
	}
	return out
}

// NormalizeSummary echoes the symbol exactly as the caller sent it.
func NormalizeSummary(requested, text string) Summary {
	return Summary{Symbol: requested, Summary: text}
}

// changes returns absolute and percent change rounded to 2 places.
// Percent change is 0 when there is no previous close.
func changes(price, prev float64) (float64, float64) {
	p := decimal.NewFromFloat(price)
	pc := decimal.NewFromFloat(prev)
	change := p.Sub(pc)
	pct := decimal.Zero
	if !pc.IsZero() {
		pct = change.Div(pc).Mul(decimal.NewFromInt(100))
	}
	return change.Round(2).InexactFloat64(), pct.Round(2).InexactFloat64()
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
