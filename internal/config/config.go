// Package config loads the folio configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/folio/pkg/canonical"
	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/db"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/redis"
	"github.com/dmitrymomot/folio/pkg/storage"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrMissingSecret = errors.New("config: COOKIE_SECRET must be at least 32 bytes")
	ErrMissingOrigin = errors.New("config: BASE_URL is required in production")
)

// Config is the full application configuration.
type Config struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	// BaseURL is the canonical origin of the blog, e.g. https://blog.example.com.
	BaseURL         string `env:"BASE_URL"`
	SiteName        string `env:"SITE_NAME" envDefault:"Folio"`
	SiteDescription string `env:"SITE_DESCRIPTION"`

	// StoreDriver selects persistence: postgres or memory.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	HTTP    HTTPConfig
	Auth    AuthConfig
	Media   MediaConfig
	DB      db.Config
	Redis   redis.Config
	Storage storage.Config
	Log     logger.Config
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// Empty disables CORS; the dashboard is then same-origin only.
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	// Zero disables sitemap caching.
	SitemapCacheTTL time.Duration `env:"SITEMAP_CACHE_TTL" envDefault:"10m"`
}

// AuthConfig configures sessions and cookies.
type AuthConfig struct {
	CookieSecret string        `env:"COOKIE_SECRET"`
	CookieDomain string        `env:"COOKIE_DOMAIN"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"true"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Failed sign-ins per email before it is locked out for LoginLockout.
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginLockout     time.Duration `env:"LOGIN_LOCKOUT" envDefault:"15m"`

	// When both are set, serve creates this admin on startup if missing.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// MediaConfig configures the media library.
type MediaConfig struct {
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`
}

// Load parses the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.StoreDriver != DriverPostgres && c.StoreDriver != DriverMemory {
		errs = append(errs, fmt.Errorf("%w: STORE_DRIVER must be %q or %q, got %q", ErrInvalidConfig, DriverPostgres, DriverMemory, c.StoreDriver))
	}
	if c.BaseURL != "" && !canonical.Valid(c.BaseURL) {
		errs = append(errs, fmt.Errorf("%w: BASE_URL must be an absolute http or https URL", ErrInvalidConfig))
	}
	if c.Media.MaxUploadSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: MAX_UPLOAD_SIZE must be positive", ErrInvalidConfig))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: SESSION_TTL must be positive", ErrInvalidConfig))
	}
	if c.Auth.LoginMaxAttempts <= 0 || c.Auth.LoginLockout <= 0 {
		errs = append(errs, fmt.Errorf("%w: LOGIN_MAX_ATTEMPTS and LOGIN_LOCKOUT must be positive", ErrInvalidConfig))
	}
	if c.HTTP.SitemapCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("%w: SITEMAP_CACHE_TTL must not be negative", ErrInvalidConfig))
	}
	if c.StoreDriver == DriverPostgres {
		if err := c.DB.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ValidateServer checks the settings only the HTTP server needs.
func (c *Config) ValidateServer() error {
	var errs []error
	if len(c.Auth.CookieSecret) < cookie.MinSecretLength {
		errs = append(errs, ErrMissingSecret)
	}
	if c.BaseURL == "" && c.Production() {
		errs = append(errs, ErrMissingOrigin)
	}
	return errors.Join(errs...)
}

// Production reports whether APP_ENV is production.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Canonical returns the canonical URL builder for BaseURL.
func (c *Config) Canonical() canonical.Builder {
	return canonical.NewBuilder(c.BaseURL)
}
