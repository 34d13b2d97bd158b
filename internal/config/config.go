package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	// Database; empty keeps everything in memory
	DatabaseURL string

	// Auth0; both empty disables authentication
	Auth0Domain   string
	Auth0Audience string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int

	// Alert rules
	LargeTransactionThreshold decimal.Decimal
	GoalDueWindowDays         int
	GoalCheckInterval         time.Duration

	// Alert sinks
	AMQP           AMQPConfig
	WebhookTimeout time.Duration

	SeedDemoData bool
}

// AMQPConfig holds the optional broker settings for alert fan-out
type AMQPConfig struct {
	URL        string // Empty = AMQP sink disabled
	Exchange   string
	RoutingKey string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
		AMQP: AMQPConfig{
			URL:        getEnv("AMQP_URL", ""),
			Exchange:   getEnv("AMQP_EXCHANGE", "budget-assist.alerts"),
			RoutingKey: getEnv("AMQP_ROUTING_KEY", "alerts"),
		},
	}

	var err error
	if cfg.RateLimitPerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", 120); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 20); err != nil {
		return nil, err
	}
	if cfg.GoalDueWindowDays, err = getEnvInt("GOAL_DUE_WINDOW_DAYS", 5); err != nil {
		return nil, err
	}
	if cfg.GoalCheckInterval, err = getEnvDuration("GOAL_CHECK_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.WebhookTimeout, err = getEnvDuration("WEBHOOK_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.SeedDemoData, err = getEnvBool("SEED_DEMO_DATA", false); err != nil {
		return nil, err
	}
	threshold := getEnv("LARGE_TRANSACTION_THRESHOLD", "500")
	if cfg.LargeTransactionThreshold, err = decimal.NewFromString(threshold); err != nil {
		return nil, fmt.Errorf("LARGE_TRANSACTION_THRESHOLD must be a number: %q", threshold)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AuthEnabled reports whether Auth0 JWT validation is configured
func (c *Config) AuthEnabled() bool {
	return c.Auth0Domain != "" && c.Auth0Audience != ""
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if (c.Auth0Domain == "") != (c.Auth0Audience == "") {
		return fmt.Errorf("AUTH0_DOMAIN and AUTH0_AUDIENCE must be set together")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}
	if !c.LargeTransactionThreshold.IsPositive() {
		return fmt.Errorf("LARGE_TRANSACTION_THRESHOLD must be positive")
	}
	if c.GoalDueWindowDays <= 0 {
		return fmt.Errorf("GOAL_DUE_WINDOW_DAYS must be positive")
	}
	if c.GoalCheckInterval <= 0 {
		return fmt.Errorf("GOAL_CHECK_INTERVAL must be positive")
	}
	if c.WebhookTimeout <= 0 {
		return fmt.Errorf("WEBHOOK_TIMEOUT must be positive")
	}
	if c.AMQP.URL != "" && c.AMQP.Exchange == "" {
		return fmt.Errorf("AMQP_EXCHANGE is required when AMQP_URL is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %q", key, value)
	}
	return d, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false: %q", key, value)
	}
	return b, nil
}
