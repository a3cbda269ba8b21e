package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Razorpay RazorpayConfig
	Media    MediaConfig
	Report   ReportConfig
	Catalog  CatalogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// RazorpayConfig contains credentials for the Razorpay Orders API.
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

// MediaConfig holds product image storage settings.
type MediaConfig struct {
	Dir     string
	BaseURL string
}

// ReportConfig holds scheduler-related settings.
type ReportConfig struct {
	CronSchedule string
}

// CatalogConfig selects the product data source.
// "postgres" is the normal mode; "fixture" serves the built-in demo catalog.
type CatalogConfig struct {
	DataSource string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Auth: AuthConfig{
			JWTSecret: getenvWithDefault("JWT_SECRET", "dev-only-secret"),
			TokenTTL:  hoursWithDefault("TOKEN_TTL_HOURS", 24),
		},
		Razorpay: RazorpayConfig{
			KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			BaseURL:   getenvWithDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		},
		Media: MediaConfig{
			Dir:     getenvWithDefault("MEDIA_DIR", "./uploads"),
			BaseURL: getenvWithDefault("MEDIA_BASE_URL", "/uploads"),
		},
		Report: ReportConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON", "5 0 * * *"),
		},
		Catalog: CatalogConfig{
			DataSource: getenvWithDefault("CATALOG_SOURCE", "postgres"),
		},
	}

	if cfg.Catalog.DataSource != "fixture" && cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return cfg, nil
}

func getenvWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func hoursWithDefault(key string, def int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(def) * time.Hour
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return time.Duration(def) * time.Hour
	}
	return time.Duration(n) * time.Hour
}
