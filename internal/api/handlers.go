package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"niftyscreener/internal/market"
)

type handlers struct {
	svc Screener
	log *zap.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) marketData(w http.ResponseWriter, r *http.Request) {
	quotes, cached, err := h.svc.MarketData(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	setCacheHeader(w, cached)
	writeJSON(w, http.StatusOK, quotes)
}

func (h *handlers) stockData(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	detail, cached, err := h.svc.StockData(r.Context(), symbol)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	setCacheHeader(w, cached)
	writeJSON(w, http.StatusOK, detail)
}

func (h *handlers) stockChart(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	points, cached, err := h.svc.StockChart(r.Context(), symbol)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	setCacheHeader(w, cached)
	writeJSON(w, http.StatusOK, points)
}

func (h *handlers) stockSummary(w http.ResponseWriter, r *http.Request) {
	symbol, ok := symbolParam(w, r)
	if !ok {
		return
	}
	summary, cached, err := h.svc.StockSummary(r.Context(), symbol)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	setCacheHeader(w, cached)
	writeJSON(w, http.StatusOK, summary)
}

func symbolParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	symbol := strings.TrimSpace(chi.URLParam(r, "symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "missing symbol")
		return "", false
	}
	return symbol, true
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	h.log.Warn("request failed",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	writeError(w, status, err.Error())
}

// statusFor maps error kinds to HTTP statuses. Missing credentials and
// anything unclassified are server errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, market.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, market.ErrUpstreamUnavailable), errors.Is(err, market.ErrGenerationUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func setCacheHeader(w http.ResponseWriter, cached bool) {
	if cached {
		w.Header().Set("X-Cache", "HIT")
		return
	}
	w.Header().Set("X-Cache", "MISS")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
