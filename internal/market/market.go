package market

import "errors"

// Error kinds surfaced by the upstream clients. Callers wrap them with
// fmt.Errorf("...: %w") and the HTTP layer classifies with errors.Is.
var (
	ErrMissingCredential     = errors.New("missing credential")
	ErrUpstreamUnavailable   = errors.New("upstream unavailable")
	ErrNotFound              = errors.New("not found")
	ErrGenerationUnavailable = errors.New("generation unavailable")
)

// Quote is one row of the bulk market-data response.
type Quote struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	PreviousClose float64  `json:"previousClose"`
	Change        float64  `json:"change"`
	PercentChange float64  `json:"percentChange"`
	Volume        *float64 `json:"volume"`
	MarketCap     *float64 `json:"marketCap"`
}

// StockDetail is the single-symbol view. Absent upstream values stay null.
type StockDetail struct {
	Symbol        string   `json:"symbol"`
	LongName      *string  `json:"longName"`
	CurrentPrice  *float64 `json:"currentPrice"`
	PreviousClose *float64 `json:"previousClose"`
	DayHigh       *float64 `json:"dayHigh"`
	DayLow        *float64 `json:"dayLow"`
	Change        float64  `json:"change"`
	PercentChange float64  `json:"percentChange"`
	Volume        *float64 `json:"volume"`
	MarketCap     *float64 `json:"marketCap"`
}

// ChartPoint is one daily bar in a chart series. Time is the bar date (YYYY-MM-DD).
type ChartPoint struct {
	Time  string  `json:"time"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// Summary is a generated company overview.
type Summary struct {
	Symbol  string `json:"symbol"`
	Summary string `json:"summary"`
}

// RawQuote mirrors the quote provider's quote object. Pointer fields keep
// "absent" distinct from zero.
type RawQuote struct {
	Symbol        string   `json:"symbol"`
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	PreviousClose *float64 `json:"previousClose"`
	DayHigh       *float64 `json:"dayHigh"`
	DayLow        *float64 `json:"dayLow"`
	Volume        *float64 `json:"volume"`
	MarketCap     *float64 `json:"marketCap"`
}

// RawBar is one entry of the provider's historical series (newest first).
type RawBar struct {
	Date  string  `json:"date"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// RawProfile holds the company profile attributes used to build summary prompts.
type RawProfile struct {
	Symbol      string  `json:"symbol"`
	CompanyName *string `json:"companyName"`
	Sector      *string `json:"sector"`
	Industry    *string `json:"industry"`
	Description *string `json:"description"`
}
