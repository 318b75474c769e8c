package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"STOCKFOLIO_DATA_FILE", "ALPHA_VANTAGE_API_KEY", "STOCKFOLIO_CACHE", "STOCKFOLIO_HTTP_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("fromEnv() error = %v", err)
	}
	if cfg.DataFile != "portfolio_data.csv" {
		t.Errorf("DataFile = %q, want %q", cfg.DataFile, "portfolio_data.csv")
	}
	if cfg.APIKey != "demo" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "demo")
	}
	if !cfg.Cache {
		t.Errorf("Cache = false, want true")
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STOCKFOLIO_DATA_FILE", "/tmp/data.csv")
	t.Setenv("ALPHA_VANTAGE_API_KEY", "secret")
	t.Setenv("STOCKFOLIO_CACHE", "false")
	t.Setenv("STOCKFOLIO_LOG_LEVEL", "debug")
	t.Setenv("STOCKFOLIO_HTTP_TIMEOUT", "3s")

	cfg, err := fromEnv()
	if err != nil {
		t.Fatalf("fromEnv() error = %v", err)
	}
	want := Config{
		DataFile:    "/tmp/data.csv",
		APIKey:      "secret",
		APIURL:      "https://www.alphavantage.co/query",
		Cache:       false,
		LogLevel:    "debug",
		HTTPTimeout: 3 * time.Second,
	}
	if *cfg != want {
		t.Errorf("fromEnv() = %+v, want %+v", *cfg, want)
	}
}
