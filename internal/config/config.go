package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/altai/formrelay/internal/logging"
)

// ErrInvalidConfig is wrapped by every error returned from Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string        `env:"ENV" envDefault:"development"`
	Port        string        `env:"PORT" envDefault:"3000"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	// Proxies whose forwarding headers are believed; empty trusts none
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Logging Configuration
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE" envDefault:"./logs/formrelay.log"`
	LogMaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"`
	LogRequests   bool   `env:"LOG_REQUESTS" envDefault:"true"`

	// CORS Configuration
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"https://front-altai.netlify.app"`

	// reCAPTCHA Configuration
	RecaptchaSecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaVerifyURL string  `env:"RECAPTCHA_VERIFY_URL" envDefault:"https://www.google.com/recaptcha/api/siteverify"`
	RecaptchaMinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0"`

	// Salesforce Web-to-Lead Configuration
	SalesforceURL string `env:"SALESFORCE_URL" envDefault:"https://webto.salesforce.com/servlet/servlet.WebToLead?encoding=UTF-8"`
	SalesforceOID string `env:"SALESFORCE_OID" envDefault:"00Do0000000b6Io"`

	// Form Configuration
	DocumentURL   string `env:"DOCUMENT_URL" envDefault:"https://javer.com.mx/descargables/1748907914225.pdf"`
	NameMinLength int    `env:"NAME_MIN_LENGTH" envDefault:"4"`

	// Rate Limit Configuration
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Telemetry Configuration
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"formrelay"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv never overrides variables already present in the process
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Logging returns the logger configuration derived from c
func (c *Config) Logging() *logging.Config {
	return &logging.Config{
		Level:       c.LogLevel,
		File:        c.LogFile,
		MaxSize:     c.LogMaxSize,
		MaxBackups:  c.LogMaxBackups,
		MaxAge:      c.LogMaxAge,
		LogRequests: c.LogRequests,
	}
}

// Validate checks everything the server needs before it accepts traffic
func (c *Config) Validate() error {
	if c.RecaptchaSecretKey == "" {
		return fmt.Errorf("%w: RECAPTCHA_SECRET_KEY is required", ErrInvalidConfig)
	}

	for name, raw := range map[string]string{
		"RECAPTCHA_VERIFY_URL": c.RecaptchaVerifyURL,
		"SALESFORCE_URL":       c.SalesforceURL,
	} {
		if err := validateAbsoluteURL(raw); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}

	if c.AllowedOrigin != "*" {
		if err := validateAbsoluteURL(c.AllowedOrigin); err != nil {
			return fmt.Errorf("%w: ALLOWED_ORIGIN: %v", ErrInvalidConfig, err)
		}
	}

	if c.DocumentURL != "" {
		if err := validateAbsoluteURL(c.DocumentURL); err != nil {
			return fmt.Errorf("%w: DOCUMENT_URL: %v", ErrInvalidConfig, err)
		}
	}

	if c.SalesforceOID == "" {
		return fmt.Errorf("%w: SALESFORCE_OID is required", ErrInvalidConfig)
	}

	if c.RecaptchaMinScore < 0 || c.RecaptchaMinScore > 1 {
		return fmt.Errorf("%w: RECAPTCHA_MIN_SCORE must be between 0 and 1", ErrInvalidConfig)
	}

	if c.NameMinLength < 1 {
		return fmt.Errorf("%w: NAME_MIN_LENGTH must be positive", ErrInvalidConfig)
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: rate limit values must be positive", ErrInvalidConfig)
	}

	for _, proxy := range c.TrustedProxies {
		if err := validateProxy(proxy); err != nil {
			return fmt.Errorf("%w: TRUSTED_PROXIES: %v", ErrInvalidConfig, err)
		}
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: HTTP_TIMEOUT must be positive", ErrInvalidConfig)
	}

	if err := c.Logging().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

func validateProxy(proxy string) error {
	if strings.Contains(proxy, "/") {
		_, _, err := net.ParseCIDR(proxy)
		return err
	}
	if net.ParseIP(proxy) == nil {
		return fmt.Errorf("invalid IP %q", proxy)
	}
	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
