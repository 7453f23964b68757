package cookie

import (
	"net/http"

	"github.com/dmitrymomot/sealcookie/pkg/secrets"
)

// Config holds cookie configuration loaded from the environment.
// COOKIE_SECRETS is a comma separated list, current secret first.
type Config struct {
	Secrets  string        `env:"COOKIE_SECRETS" envDefault:""`
	Encrypt  bool          `env:"COOKIE_ENCRYPT" envDefault:"false"`
	Strict   bool          `env:"COOKIE_STRICT" envDefault:"false"`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN" envDefault:""`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // 2 = SameSiteLaxMode
}

// DefaultConfig returns the configuration matching the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewFromConfig creates a cookie descriptor from cfg. Only non-zero values
// are applied; opts are applied last and win.
func NewFromConfig(name string, cfg Config, opts ...Option) (*Cookie, error) {
	configOpts := make([]Option, 0, 10+len(opts))

	if ring := secrets.ParseRing(cfg.Secrets); !ring.IsEmpty() {
		configOpts = append(configOpts, WithSecrets(ring.Verification()...))
	}
	if cfg.Encrypt {
		configOpts = append(configOpts, WithEncryption(true))
	}
	if cfg.Strict {
		configOpts = append(configOpts, WithStrictVerification(true))
	}
	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.MaxAge != 0 {
		configOpts = append(configOpts, WithMaxAge(cfg.MaxAge))
	}
	if cfg.Secure {
		configOpts = append(configOpts, WithSecure(true))
	}
	if cfg.HttpOnly {
		configOpts = append(configOpts, WithHTTPOnly(true))
	}
	if cfg.SameSite != 0 {
		configOpts = append(configOpts, WithSameSite(cfg.SameSite))
	}

	configOpts = append(configOpts, opts...)

	return New(name, configOpts...)
}
