package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	for _, k := range []string{"PORT", "FMP_API_KEY", "GEMINI_API_KEY", "LOG_LEVEL"} {
		unsetEnv(t, k)
	}

	cfg, err := load(filepath.Join(t.TempDir(), "missing.json"), "")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "5001", cfg.Server.Port)
	require.Equal(t, 600, cfg.Cache.MarketTTLSec)
	require.Equal(t, 300, cfg.Cache.StockTTLSec)
	require.Equal(t, 3600, cfg.Cache.ChartTTLSec)
	require.Equal(t, 86400, cfg.Cache.SummaryTTLSec)
	require.Empty(t, cfg.FMP.APIKey)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	unsetEnv(t, "PORT")
	unsetEnv(t, "CACHE_TTL_CHART_SEC")

	p := writeFile(t, "config.json", `{
		"server": {"port": "9090"},
		"cache": {"chart_ttl_sec": 120, "single_flight": false},
		"fmp": {"history_days": 100}
	}`)

	cfg, err := load(p, "")
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, 120, cfg.Cache.ChartTTLSec)
	require.False(t, cfg.Cache.SingleFlight)
	require.Equal(t, 100, cfg.FMP.HistoryDays)
	require.Equal(t, 600, cfg.Cache.MarketTTLSec)
}

func TestLoad_YAMLFile(t *testing.T) {
	unsetEnv(t, "LOG_FORMAT")

	p := writeFile(t, "config.yaml", "logging:\n  format: console\n")
	cfg, err := load(p, "")
	require.NoError(t, err)
	require.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("FMP_API_KEY", "fmp-secret")
	t.Setenv("CACHE_TTL_STOCK_SEC", "42")
	t.Setenv("CACHE_SINGLE_FLIGHT", "false")

	p := writeFile(t, "config.json", `{"server": {"port": "9090"}}`)
	cfg, err := load(p, "")
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.Server.Port)
	require.Equal(t, "fmp-secret", cfg.FMP.APIKey)
	require.Equal(t, 42, cfg.Cache.StockTTLSec)
	require.False(t, cfg.Cache.SingleFlight)
}

func TestLoad_DotenvFillsUnsetEnv(t *testing.T) {
	unsetEnv(t, "GEMINI_API_KEY")
	t.Setenv("FMP_API_KEY", "from-env")

	dotenv := writeFile(t, ".env", "GEMINI_API_KEY=from-dotenv\nFMP_API_KEY=ignored\n")
	cfg, err := load(filepath.Join(t.TempDir(), "missing.json"), dotenv)
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.Gemini.APIKey)
	require.Equal(t, "from-env", cfg.FMP.APIKey)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := load(filepath.Join(t.TempDir(), "missing.json"), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid config")
}

func TestLoad_MalformedFile(t *testing.T) {
	p := writeFile(t, "config.json", `{"server": `)
	_, err := load(p, "")
	require.Error(t, err)
}

func TestValidate_Default(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(Default()))

	bad := Default()
	bad.FMP.BaseURL = "not a url"
	require.Error(t, Validate(bad))
}
