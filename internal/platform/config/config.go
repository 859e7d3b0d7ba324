package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// FX engine settings
	BuySpreadBps        int64
	SellSpreadBps       int64
	QuoteValidity       time.Duration
	HubCurrency         string
	SupportedCurrencies []string

	// Rate feed settings
	RateFeedURL        string
	StalenessThreshold time.Duration
	SeedRatesOnStart   bool

	// Transport settings
	RateLimitRPM int64
}

// FXConfig is the slice of configuration the core services need. It is passed
// explicitly into service constructors so the core stays testable without a
// live process context.
type FXConfig struct {
	BuySpreadBps        int64
	SellSpreadBps       int64
	QuoteValidity       time.Duration
	HubCurrency         string
	SupportedCurrencies []string
	StalenessThreshold  time.Duration
}

// FX extracts the core service configuration.
func (c *Config) FX() FXConfig {
	return FXConfig{
		BuySpreadBps:        c.BuySpreadBps,
		SellSpreadBps:       c.SellSpreadBps,
		QuoteValidity:       c.QuoteValidity,
		HubCurrency:         c.HubCurrency,
		SupportedCurrencies: c.SupportedCurrencies,
		StalenessThreshold:  c.StalenessThreshold,
	}
}

// Supports reports whether the given currency code is in the supported set.
func (c FXConfig) Supports(code string) bool {
	for _, s := range c.SupportedCurrencies {
		if s == code {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BUY_SPREAD_BPS", 50)
	viper.SetDefault("SELL_SPREAD_BPS", 50)
	viper.SetDefault("QUOTE_VALIDITY", "60s")
	viper.SetDefault("HUB_CURRENCY", "USD")
	viper.SetDefault("SUPPORTED_CURRENCIES", "USD,EUR,KES,NGN")
	viper.SetDefault("RATE_FEED_URL", "https://api.exchangerate-api.com/v4/latest/")
	viper.SetDefault("RATE_STALENESS_THRESHOLD", "24h")
	viper.SetDefault("SEED_RATES_ON_START", true)
	viper.SetDefault("RATE_LIMIT_RPM", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.BuySpreadBps = viper.GetInt64("BUY_SPREAD_BPS")
	cfg.SellSpreadBps = viper.GetInt64("SELL_SPREAD_BPS")
	if cfg.BuySpreadBps < 0 || cfg.SellSpreadBps < 0 {
		log.Println("Warning: negative spread configured; falling back to 0.")
		if cfg.BuySpreadBps < 0 {
			cfg.BuySpreadBps = 0
		}
		if cfg.SellSpreadBps < 0 {
			cfg.SellSpreadBps = 0
		}
	}

	quoteValidityStr := viper.GetString("QUOTE_VALIDITY")
	quoteValidity, err := time.ParseDuration(quoteValidityStr)
	if err != nil || quoteValidity <= 0 {
		quoteValidity = 60 * time.Second
		log.Printf("Warning: Invalid value for QUOTE_VALIDITY ('%s'). Defaulting to %s.\n", quoteValidityStr, quoteValidity)
	}
	cfg.QuoteValidity = quoteValidity

	cfg.HubCurrency = strings.ToUpper(viper.GetString("HUB_CURRENCY"))

	for _, code := range strings.Split(viper.GetString("SUPPORTED_CURRENCIES"), ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			cfg.SupportedCurrencies = append(cfg.SupportedCurrencies, code)
		}
	}

	cfg.RateFeedURL = viper.GetString("RATE_FEED_URL")

	stalenessStr := viper.GetString("RATE_STALENESS_THRESHOLD")
	staleness, err := time.ParseDuration(stalenessStr)
	if err != nil || staleness <= 0 {
		staleness = 24 * time.Hour
		log.Printf("Warning: Invalid value for RATE_STALENESS_THRESHOLD ('%s'). Defaulting to %s.\n", stalenessStr, staleness)
	}
	cfg.StalenessThreshold = staleness

	cfg.SeedRatesOnStart = viper.GetBool("SEED_RATES_ON_START")

	cfg.RateLimitRPM = viper.GetInt64("RATE_LIMIT_RPM")

	return cfg, nil
}
