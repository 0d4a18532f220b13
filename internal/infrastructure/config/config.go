package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App   AppConfig
	Log   LogConfig
	Store StoreConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StoreConfig holds storefront settings
type StoreConfig struct {
	Currency   string // ISO 4217 code for all prices
	TaxRate    string // decimal tax rate, e.g. "0.10"
	MaxPerLine int    // per-addition quantity cap
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with BOOKSTORE_ prefix (e.g., BOOKSTORE_LOG_LEVEL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.bookstore")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("BOOKSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Store: StoreConfig{
			Currency:   v.GetString("store.currency"),
			TaxRate:    v.GetString("store.tax_rate"),
			MaxPerLine: v.GetInt("store.max_per_line"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "bookstore"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		// The terminal is busy rendering the store; keep log noise on stderr
		cfg.Log.Output = "stderr"
	}
	if cfg.Store.Currency == "" {
		cfg.Store.Currency = "USD"
	}
	if cfg.Store.TaxRate == "" {
		cfg.Store.TaxRate = "0.10"
	}
	if cfg.Store.MaxPerLine == 0 {
		cfg.Store.MaxPerLine = 5
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	rate, err := decimal.NewFromString(c.Store.TaxRate)
	if err != nil {
		return fmt.Errorf("store.tax_rate is not a valid decimal: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("store.tax_rate must be in [0, 1), got %s", c.Store.TaxRate)
	}
	if c.Store.MaxPerLine < 1 {
		return fmt.Errorf("store.max_per_line must be positive, got %d", c.Store.MaxPerLine)
	}
	if len(c.Store.Currency) != 3 {
		return fmt.Errorf("store.currency must be a 3-letter ISO 4217 code, got %q", c.Store.Currency)
	}
	return nil
}

// TaxRateDecimal returns the configured tax rate as a decimal
func (c *Config) TaxRateDecimal() decimal.Decimal {
	rate, err := decimal.NewFromString(c.Store.TaxRate)
	if err != nil {
		// validate() already guaranteed parseability
		panic(err)
	}
	return rate
}
