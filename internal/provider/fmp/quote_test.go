package fmp_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"niftyscreener/internal/market"
	"niftyscreener/internal/provider/fmp"
)

func TestBulkQuotes(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodGet, req.Method)
			require.Equal(t, "/api/v3/quote/TCS.NS,INFY.NS", req.URL.Path)
			require.Equal(t, "secret", req.URL.Query().Get("apikey"))
			return jsonResponse(t, http.StatusOK, []map[string]any{
				{"symbol": "TCS.NS", "name": "Tata Consultancy Services Limited", "price": 3912.35, "previousClose": 3850.10},
				{"symbol": "INFY.NS", "name": "Infosys Limited", "price": 1500.0, "previousClose": 1523.45, "volume": 100},
			}), nil
		}).
		Times(1)

	client := fmp.NewClient("secret", fmp.WithHTTPClient(httpClient))

	// Act
	quotes, err := client.BulkQuotes(t.Context(), []string{"TCS", "infy", "TCS"})

	// Assert
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	require.Equal(t, "TCS.NS", quotes[0].Symbol)
	require.Equal(t, 3912.35, *quotes[0].Price)
	require.Nil(t, quotes[0].Volume)
	require.Equal(t, 100.0, *quotes[1].Volume)
}

func TestBulkQuotes_EmptyResultIsUnavailable(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(t, http.StatusOK, []any{}), nil)

	client := fmp.NewClient("secret", fmp.WithHTTPClient(httpClient))
	_, err := client.BulkQuotes(t.Context(), []string{"TCS"})

	require.ErrorIs(t, err, market.ErrUpstreamUnavailable)
}

func TestBulkQuotes_NoSymbols(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Times(0)

	client := fmp.NewClient("secret", fmp.WithHTTPClient(httpClient))
	_, err := client.BulkQuotes(t.Context(), []string{"", " "})

	require.ErrorIs(t, err, market.ErrUpstreamUnavailable)
}

func TestBulkQuotes_StatusError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Return(rawResponse(http.StatusTooManyRequests, `{"Error Message":"Limit Reach"}`), nil)

	client := fmp.NewClient("secret", fmp.WithHTTPClient(httpClient))
	_, err := client.BulkQuotes(t.Context(), []string{"TCS"})

	require.ErrorIs(t, err, market.ErrUpstreamUnavailable)
	require.Contains(t, err.Error(), "429")
}

func TestBulkQuotes_MalformedBody(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Return(rawResponse(http.StatusOK, `<html>`), nil)

	client := fmp.NewClient("secret", fmp.WithHTTPClient(httpClient))
	_, err := client.BulkQuotes(t.Context(), []string{"TCS"})

	require.ErrorIs(t, err, market.ErrUpstreamUnavailable)
}

func TestQuote_TransportErrorHidesKey(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return nil, &url.Error{Op: "Get", URL: req.URL.String(), Err: errors.New("dial tcp: connection refused")}
		})

	client := fmp.NewClient("top-secret", fmp.WithHTTPClient(httpClient))
	_, err := client.Quote(t.Context(), "TCS")

	require.ErrorIs(t, err, market.ErrUpstreamUnavailable)
	require.Contains(t, err.Error(), "connection refused")
	require.NotContains(t, err.Error(), "top-secret")
}

func TestQuote(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/api/v3/quote/RELIANCE.NS", req.URL.Path)
			return jsonResponse(t, http.StatusOK, []map[string]any{
				{"symbol": "RELIANCE.NS", "name": "Reliance Industries Limited", "price": 2950, "dayHigh": 2961.5, "dayLow": 2890.25},
			}), nil
		})

	client := fmp.NewClient("secret", fmp.WithHTTPClient(httpClient))
	quote, err := client.Quote(t.Context(), "reliance")

	require.NoError(t, err)
	require.Equal(t, "RELIANCE.NS", quote.Symbol)
	require.Equal(t, 2961.5, *quote.DayHigh)
	require.Nil(t, quote.PreviousClose)
}

func TestQuote_UnknownSymbol(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(t, http.StatusOK, []any{}), nil)

	client := fmp.NewClient("secret", fmp.WithHTTPClient(httpClient))
	_, err := client.Quote(t.Context(), "NOPE")

	require.ErrorIs(t, err, market.ErrNotFound)
}
