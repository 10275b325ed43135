/*
Package config loads pipeline configuration from environment variables and an
optional config file.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for one pipeline run. Secrets are read once
// at startup and treated as read-only for the run's duration.
type Config struct {
	GeminiAPIKey  string `mapstructure:"gemini_api_key"`
	EmailPassword string `mapstructure:"email_password"`

	StockSymbols []string `mapstructure:"stock_symbols"`

	// Base URLs are overridable for testing.
	YahooBaseURL  string `mapstructure:"yahoo_base_url"`
	GeminiBaseURL string `mapstructure:"gemini_base_url"`

	// ConfirmCost is an advisory interlock against accidental repeated calls
	// to the metered analysis API. When false, no analysis request is made.
	ConfirmCost bool `mapstructure:"confirm_cost"`

	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`

	// Server mode only.
	ListenAddr   string `mapstructure:"listen_addr"`
	CronSchedule string `mapstructure:"cron_schedule"`
}

// defaultSymbols is the fixed portfolio analyzed each run.
var defaultSymbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NFLX", "BA", "DIS"}

// Load reads configuration from environment variables and an optional
// config.yaml. Environment variables take precedence over file values.
//
// Required environment variables:
//   - GEMINI_API_KEY (or legacy GEMINI)
//   - EMAIL_PASSWORD (or legacy EMAIL)
//
// Optional:
//   - STOCK_SYMBOLS, YAHOO_BASE_URL, GEMINI_BASE_URL, CONFIRM_COST,
//     SMTP_HOST, SMTP_PORT, LISTEN_ADDR, CRON_SCHEDULE
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("stock_symbols", defaultSymbols)
	v.SetDefault("yahoo_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("confirm_cost", true)
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("listen_addr", ":8080")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.BindEnv("gemini_api_key", "GEMINI_API_KEY", "GEMINI")
	v.BindEnv("email_password", "EMAIL_PASSWORD", "EMAIL")
	v.BindEnv("stock_symbols", "STOCK_SYMBOLS")
	v.BindEnv("yahoo_base_url", "YAHOO_BASE_URL")
	v.BindEnv("gemini_base_url", "GEMINI_BASE_URL")
	v.BindEnv("confirm_cost", "CONFIRM_COST")
	v.BindEnv("smtp_host", "SMTP_HOST")
	v.BindEnv("smtp_port", "SMTP_PORT")
	v.BindEnv("listen_addr", "LISTEN_ADDR")
	v.BindEnv("cron_schedule", "CRON_SCHEDULE")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.StockSymbols = normalizeSymbols(config.StockSymbols)

	var missing []string
	if config.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if config.EmailPassword == "" {
		missing = append(missing, "EMAIL_PASSWORD")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if len(config.StockSymbols) == 0 {
		return nil, fmt.Errorf("stock symbol list must not be empty")
	}

	return config, nil
}

// normalizeSymbols trims and upper-cases each symbol, preserving order.
// Entries sourced from the environment may arrive as one comma-separated
// string.
func normalizeSymbols(in []string) []string {
	var symbols []string
	for _, entry := range in {
		for _, part := range strings.Split(entry, ",") {
			trimmed := strings.ToUpper(strings.TrimSpace(part))
			if trimmed != "" {
				symbols = append(symbols, trimmed)
			}
		}
	}
	return symbols
}
