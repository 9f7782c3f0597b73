// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Server   ServerConfig
	Stellar  StellarConfig
	Campaign CampaignConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StellarConfig struct {
	// Network is the human-readable network name echoed by debug
	// endpoints, for example "testnet" or "public".
	Network           string
	HorizonURL        string
	NetworkPassphrase string
	CampaignSecret    string
	DonorSecret       string
	RequestTimeout    time.Duration
}

type CampaignConfig struct {
	Title       string
	Description string
	Goal        decimal.Decimal
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Stellar: StellarConfig{
			Network:           getEnv("STELLAR_NETWORK", "testnet"),
			HorizonURL:        getEnv("HORIZON_URL", "https://horizon-testnet.stellar.org"),
			NetworkPassphrase: getEnv("NETWORK_PASSPHRASE", "Test SDF Network ; September 2015"),
			CampaignSecret:    getEnv("CAMPAIGN_ACCOUNT_SECRET", ""),
			DonorSecret:       getEnv("DONOR_ACCOUNT_SECRET", ""),
			RequestTimeout:    getDurationEnv("HORIZON_REQUEST_TIMEOUT", 10*time.Second),
		},
		Campaign: CampaignConfig{
			Title:       getEnv("CAMPAIGN_TITLE", "Community Crowdfunding"),
			Description: getEnv("CAMPAIGN_DESCRIPTION", "Help our project!"),
			Goal:        getDecimalEnv("CAMPAIGN_GOAL_XLM", decimal.NewFromInt(100)),
		},
		Redis: RedisConfig{
			URL:      normalizeRedisURL(getEnv("REDIS_URL", "")),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
	}
}

// Validate checks settings the process cannot run without.
func (c *Config) Validate() error {
	if c.Stellar.CampaignSecret == "" {
		return fmt.Errorf("CAMPAIGN_ACCOUNT_SECRET is required")
	}
	if c.Stellar.DonorSecret == "" {
		return fmt.Errorf("DONOR_ACCOUNT_SECRET is required")
	}
	if !c.Campaign.Goal.IsPositive() {
		return fmt.Errorf("CAMPAIGN_GOAL_XLM must be positive, got %s", c.Campaign.Goal)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func normalizeRedisURL(url string) string {
	// Strip redis:// or redis+tls:// scheme if present
	if strings.HasPrefix(url, "redis+tls://") {
		return url[len("redis+tls://"):]
	}
	if strings.HasPrefix(url, "redis://") {
		return url[len("redis://"):]
	}
	return url
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
