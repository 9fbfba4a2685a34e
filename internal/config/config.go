// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env              string        `mapstructure:"APP_ENV"`
	CatalogBaseURL   string        `mapstructure:"CATALOG_BASE_URL"`
	HTTPTimeout      time.Duration `mapstructure:"HTTP_TIMEOUT"`
	UserPassword     string        `mapstructure:"USER_PASSWORD"`
	ProductTarget    int           `mapstructure:"PRODUCT_TARGET"`
	ProductMaxTries  int           `mapstructure:"PRODUCT_MAX_ATTEMPTS"`
	ProgressEvery    int           `mapstructure:"PROGRESS_EVERY"`
	ThrottleInterval time.Duration `mapstructure:"THROTTLE_INTERVAL"`
	RandomSeed       int64         `mapstructure:"RANDOM_SEED"`
	MetricsAddr      string        `mapstructure:"METRICS_ADDR"`
	TracingEnabled   bool          `mapstructure:"TRACING_ENABLED"`
	TracingExporter  string        `mapstructure:"TRACING_EXPORTER"`
	TracingSample    float64       `mapstructure:"TRACING_SAMPLE_RATIO"`
	OTLPEndpoint     string        `mapstructure:"OTLP_ENDPOINT"`
	StubPort         string        `mapstructure:"STUB_PORT"`
	StubDBDriver     string        `mapstructure:"STUB_DB_DRIVER"`
	StubDBDSN        string        `mapstructure:"STUB_DB_DSN"`
}

// Defaults for a seeding run.
const (
	DefaultBaseURL       = "http://localhost:8080/api"
	DefaultProductTarget = 1000
	DefaultPassword      = "Password123"
)

// Override adjusts a loaded configuration before it is normalized and
// validated, e.g. from command-line flags.
type Override func(*Config)

// LoadConfig loads application configuration from .env, config file and
// environment variables, then applies overrides in order.
func LoadConfig(overrides ...Override) (*Config, error) {
	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment overrides from .env")
	}

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	env := strings.TrimSpace(viper.GetString("APP_ENV"))
	if env != "" && env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err == nil {
			log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
		}
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	for _, o := range overrides {
		o(&config)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("CATALOG_BASE_URL", DefaultBaseURL)
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.SetDefault("USER_PASSWORD", DefaultPassword)
	viper.SetDefault("PRODUCT_TARGET", DefaultProductTarget)
	viper.SetDefault("PRODUCT_MAX_ATTEMPTS", DefaultProductTarget*10)
	viper.SetDefault("PROGRESS_EVERY", 100)
	viper.SetDefault("THROTTLE_INTERVAL", "20ms")
	viper.SetDefault("RANDOM_SEED", 0)
	viper.SetDefault("METRICS_ADDR", "")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("TRACING_SAMPLE_RATIO", 1.0)
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("STUB_PORT", "8080")
	viper.SetDefault("STUB_DB_DRIVER", "sqlite")
	viper.SetDefault("STUB_DB_DSN", "file::memory:?cache=shared")
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.CatalogBaseURL = strings.TrimRight(strings.TrimSpace(c.CatalogBaseURL), "/")
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))
	c.StubDBDriver = strings.ToLower(strings.TrimSpace(c.StubDBDriver))
}

// Validate ensures that required configuration values are present and consistent.
func (c *Config) Validate() error {
	if c.CatalogBaseURL == "" {
		return errors.New("CATALOG_BASE_URL is required")
	}
	u, err := url.Parse(c.CatalogBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("CATALOG_BASE_URL must be an absolute http(s) URL, got %q", c.CatalogBaseURL)
	}
	if c.ProductTarget <= 0 {
		return errors.New("PRODUCT_TARGET must be positive")
	}
	if c.ProductMaxTries < 0 {
		return errors.New("PRODUCT_MAX_ATTEMPTS must not be negative")
	}
	if c.ProductMaxTries > 0 && c.ProductMaxTries < c.ProductTarget {
		return fmt.Errorf("PRODUCT_MAX_ATTEMPTS (%d) is below PRODUCT_TARGET (%d)", c.ProductMaxTries, c.ProductTarget)
	}
	if c.ProgressEvery <= 0 {
		return errors.New("PROGRESS_EVERY must be positive")
	}
	if c.ThrottleInterval < 0 || c.HTTPTimeout < 0 {
		return errors.New("THROTTLE_INTERVAL and HTTP_TIMEOUT must not be negative")
	}
	if c.UserPassword == "" {
		return errors.New("USER_PASSWORD is required")
	}
	switch c.TracingExporter {
	case "stdout", "otlp":
	default:
		return fmt.Errorf("TRACING_EXPORTER must be stdout or otlp, got %q", c.TracingExporter)
	}
	if c.TracingSample < 0 || c.TracingSample > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATIO must be within [0, 1], got %v", c.TracingSample)
	}
	switch c.StubDBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("STUB_DB_DRIVER must be sqlite or postgres, got %q", c.StubDBDriver)
	}

	if c.Env == "production" || c.Env == "prod" {
		if c.ProductMaxTries == 0 {
			log.Println("WARNING: PRODUCT_MAX_ATTEMPTS is 0; the product stage will retry forever against a failing service.")
		}
	}

	return nil
}
