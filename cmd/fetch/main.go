package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"niftyscreener/internal/app"
	"niftyscreener/internal/config"
	"niftyscreener/internal/logging"
	"niftyscreener/internal/screener"
)

func main() {
	var kind, symbol, configPath string
	var timeout int

	flag.StringVar(&kind, "kind", "quote", "pipeline to run: market, quote, chart or summary")
	flag.StringVar(&symbol, "symbol", "TCS", "ticker without exchange suffix")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config file (optional)")
	flag.IntVar(&timeout, "timeout", 60, "overall timeout seconds")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Logging)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	svc, err := app.NewService(ctx, cfg, logger, nil)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	out, err := fetch(ctx, svc, kind, symbol)
	if err != nil {
		log.Fatalf("%s: %v", kind, err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

func fetch(ctx context.Context, svc *screener.Service, kind, symbol string) (any, error) {
	switch strings.ToLower(kind) {
	case "market", "bulk":
		v, _, err := svc.MarketData(ctx)
		return v, err
	case "quote", "stock":
		v, _, err := svc.StockData(ctx, symbol)
		return v, err
	case "chart":
		v, _, err := svc.StockChart(ctx, symbol)
		return v, err
	case "summary":
		v, _, err := svc.StockSummary(ctx, symbol)
		return v, err
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}
