package config

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	apperrors "github.com/alexjbarnes/page-token-broker/internal/errors"
	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// DefaultRedirectURI is used when REDIRECT_URI is not set. It must match
// the redirect URI registered with the Facebook app.
const DefaultRedirectURI = "https://instaface.app.n8n.cloud/webhook/logins"

// Config holds all environment-based configuration for the broker.
type Config struct {
	// Facebook app credentials (required)
	ClientID     string `env:"FACEBOOK_CLIENT_ID"`
	ClientSecret string `env:"FACEBOOK_CLIENT_SECRET"`
	RedirectURI  string `env:"REDIRECT_URI" envDefault:"https://instaface.app.n8n.cloud/webhook/logins"`

	// Process-wide secret mixed into every per-record key (required)
	EncryptionKey string `env:"ENCRYPTION_KEY"`

	Port int `env:"PORT" envDefault:"3000"`

	// Environment controls log format
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Graph API settings. The base URL is overridable for tests and
	// egress proxies; the timeout bounds each outbound call.
	GraphBaseURL string        `env:"GRAPH_BASE_URL" envDefault:"https://graph.facebook.com"`
	GraphTimeout time.Duration `env:"GRAPH_TIMEOUT" envDefault:"10s"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions. The file holds the app secret and the
// encryption key.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return // file does not exist, nothing to check
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
// Variables already set in the environment take precedence over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.GraphBaseURL = strings.TrimRight(cfg.GraphBaseURL, "/")

	return cfg, nil
}

// validate reports every missing required variable at once, then
// checks the optional settings.
func (c *Config) validate() error {
	var missing []string

	if c.ClientID == "" {
		missing = append(missing, "FACEBOOK_CLIENT_ID")
	}

	if c.ClientSecret == "" {
		missing = append(missing, "FACEBOOK_CLIENT_SECRET")
	}

	if c.EncryptionKey == "" {
		missing = append(missing, "ENCRYPTION_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrMissingConfig, strings.Join(missing, ", "))
	}

	var result *multierror.Error

	if c.Port < 1 || c.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("%w: PORT must be between 1 and 65535, got %d", apperrors.ErrInvalidConfig, c.Port))
	}

	if c.RedirectURI == "" {
		result = multierror.Append(result, fmt.Errorf("%w: REDIRECT_URI must not be empty", apperrors.ErrInvalidConfig))
	}

	if c.GraphBaseURL == "" {
		result = multierror.Append(result, fmt.Errorf("%w: GRAPH_BASE_URL must not be empty", apperrors.ErrInvalidConfig))
	}

	if c.GraphTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: GRAPH_TIMEOUT must be positive", apperrors.ErrInvalidConfig))
	}

	return result.ErrorOrNil()
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
