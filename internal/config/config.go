package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Server struct {
	Port               string `mapstructure:"port" validate:"required,numeric"`
	FrontendDir        string `mapstructure:"frontend_dir" validate:"required"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" validate:"min=1"`
}

type FMP struct {
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url" validate:"required,url"`
	BulkTimeoutSec    int    `mapstructure:"bulk_timeout_sec" validate:"min=1"`
	QuoteTimeoutSec   int    `mapstructure:"quote_timeout_sec" validate:"min=1"`
	ChartTimeoutSec   int    `mapstructure:"chart_timeout_sec" validate:"min=1"`
	ProfileTimeoutSec int    `mapstructure:"profile_timeout_sec" validate:"min=1"`
	HistoryDays       int    `mapstructure:"history_days" validate:"min=1"`
}

type Gemini struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model" validate:"required"`
	TimeoutSec int    `mapstructure:"timeout_sec" validate:"min=1"`
}

// Cache TTLs are in seconds; 0 disables caching for that route.
type Cache struct {
	SingleFlight  bool `mapstructure:"single_flight"`
	MarketTTLSec  int  `mapstructure:"market_ttl_sec" validate:"min=0"`
	StockTTLSec   int  `mapstructure:"stock_ttl_sec" validate:"min=0"`
	ChartTTLSec   int  `mapstructure:"chart_ttl_sec" validate:"min=0"`
	SummaryTTLSec int  `mapstructure:"summary_ttl_sec" validate:"min=0"`
}

type Logging struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	File   string `mapstructure:"file"`
}

type Config struct {
	Server  Server  `mapstructure:"server"`
	FMP     FMP     `mapstructure:"fmp"`
	Gemini  Gemini  `mapstructure:"gemini"`
	Cache   Cache   `mapstructure:"cache"`
	Logging Logging `mapstructure:"logging"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "5001", FrontendDir: "frontend/build", ShutdownTimeoutSec: 5},
		FMP: FMP{
			BaseURL:           "https://financialmodelingprep.com/api/v3",
			BulkTimeoutSec:    30,
			QuoteTimeoutSec:   10,
			ChartTimeoutSec:   15,
			ProfileTimeoutSec: 10,
			HistoryDays:       252,
		},
		Gemini: Gemini{Model: "gemini-2.5-flash", TimeoutSec: 30},
		Cache: Cache{
			SingleFlight:  true,
			MarketTTLSec:  600,
			StockTTLSec:   300,
			ChartTTLSec:   3600,
			SummaryTTLSec: 86400,
		},
		Logging: Logging{Level: "info", Format: "json"},
	}
}

// envKeys maps config keys to the environment variables that override them.
var envKeys = map[string]string{
	"server.port":           "PORT",
	"server.frontend_dir":   "FRONTEND_DIR",
	"fmp.api_key":           "FMP_API_KEY",
	"fmp.base_url":          "FMP_BASE_URL",
	"gemini.api_key":        "GEMINI_API_KEY",
	"gemini.model":          "GEMINI_MODEL",
	"cache.single_flight":   "CACHE_SINGLE_FLIGHT",
	"cache.market_ttl_sec":  "CACHE_TTL_MARKET_SEC",
	"cache.stock_ttl_sec":   "CACHE_TTL_STOCK_SEC",
	"cache.chart_ttl_sec":   "CACHE_TTL_CHART_SEC",
	"cache.summary_ttl_sec": "CACHE_TTL_SUMMARY_SEC",
	"logging.level":         "LOG_LEVEL",
	"logging.format":        "LOG_FORMAT",
	"logging.file":          "LOG_FILE",
}

// Load reads config from path (JSON or YAML). If path is empty it probes
// config.json and config.yaml in the working directory; a missing file means
// defaults. Precedence: environment, then .env, then file, then defaults.
func Load(path string) (Config, error) {
	return load(path, ".env")
}

func load(path, dotenvPath string) (Config, error) {
	cfg := Default()
	v := viper.New()
	setDefaults(v, cfg)

	if path == "" {
		for _, candidate := range []string{"config.json", "config.yaml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	dotenv, err := readDotenv(dotenvPath)
	if err != nil {
		return cfg, err
	}
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return cfg, fmt.Errorf("bind %s: %w", env, err)
		}
		if _, set := os.LookupEnv(env); set {
			continue
		}
		if val, ok := dotenv[strings.ToLower(env)]; ok {
			v.Set(key, val)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints. API keys are optional: routes that need
// a missing key report it per request.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.frontend_dir", cfg.Server.FrontendDir)
	v.SetDefault("server.shutdown_timeout_sec", cfg.Server.ShutdownTimeoutSec)

	v.SetDefault("fmp.api_key", cfg.FMP.APIKey)
	v.SetDefault("fmp.base_url", cfg.FMP.BaseURL)
	v.SetDefault("fmp.bulk_timeout_sec", cfg.FMP.BulkTimeoutSec)
	v.SetDefault("fmp.quote_timeout_sec", cfg.FMP.QuoteTimeoutSec)
	v.SetDefault("fmp.chart_timeout_sec", cfg.FMP.ChartTimeoutSec)
	v.SetDefault("fmp.profile_timeout_sec", cfg.FMP.ProfileTimeoutSec)
	v.SetDefault("fmp.history_days", cfg.FMP.HistoryDays)

	v.SetDefault("gemini.api_key", cfg.Gemini.APIKey)
	v.SetDefault("gemini.model", cfg.Gemini.Model)
	v.SetDefault("gemini.timeout_sec", cfg.Gemini.TimeoutSec)

	v.SetDefault("cache.single_flight", cfg.Cache.SingleFlight)
	v.SetDefault("cache.market_ttl_sec", cfg.Cache.MarketTTLSec)
	v.SetDefault("cache.stock_ttl_sec", cfg.Cache.StockTTLSec)
	v.SetDefault("cache.chart_ttl_sec", cfg.Cache.ChartTTLSec)
	v.SetDefault("cache.summary_ttl_sec", cfg.Cache.SummaryTTLSec)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
}

// readDotenv returns KEY=VALUE pairs from a dotenv file, keyed lower-case.
// A missing file yields an empty map.
func readDotenv(path string) (map[string]string, error) {
	out := map[string]string{}
	if path == "" {
		return out, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	dv := viper.New()
	dv.SetConfigFile(path)
	dv.SetConfigType("env")
	if err := dv.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	for _, k := range dv.AllKeys() {
		out[k] = dv.GetString(k)
	}
	return out, nil
}
