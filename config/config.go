// Package config resolves the application settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the stockfolio settings.
type Config struct {
	DataFile    string        `mapstructure:"data_file"`
	APIKey      string        `mapstructure:"api_key"`
	APIURL      string        `mapstructure:"api_url"`
	Cache       bool          `mapstructure:"cache"`
	CacheDir    string        `mapstructure:"cache_dir"`
	LogLevel    string        `mapstructure:"log_level"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Load reads an optional .env file from the working directory, then
// resolves every setting from the environment or its default.
func Load() (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("stockfolio")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_file", "portfolio_data.csv")
	v.SetDefault("api_url", "https://www.alphavantage.co/query")
	v.SetDefault("cache", true)
	v.SetDefault("cache_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_timeout", 10*time.Second)

	// The api key keeps the variable name of the quote service.
	if err := v.BindEnv("api_key", "ALPHA_VANTAGE_API_KEY"); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	v.SetDefault("api_key", "demo")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config error: cannot decode settings: %w", err)
	}
	return &cfg, nil
}
