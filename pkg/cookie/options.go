package cookie

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/sealcookie/pkg/diagnostics"
)

// Options is the descriptor configuration. Secrets, Encrypt and
// StrictVerification are fixed at construction; the remaining fields are
// cookie attributes and may be overridden per call.
type Options struct {
	Secrets            []string
	Encrypt            bool
	StrictVerification bool

	Path        string
	Domain      string
	MaxAge      int       // seconds; 0 means unset, negative deletes
	Expires     time.Time // zero means unset
	Secure      bool
	HttpOnly    bool
	SameSite    http.SameSite
	Partitioned bool

	now    func() time.Time
	logger *slog.Logger
	warner *diagnostics.Warner
}

type Option func(*Options)

// WithSecrets sets the secret ring, current secret first.
func WithSecrets(secrets ...string) Option {
	return func(o *Options) {
		o.Secrets = slices.Clone(secrets)
	}
}

// WithEncryption switches the codec from signing to encryption.
func WithEncryption(encrypt bool) Option {
	return func(o *Options) {
		o.Encrypt = encrypt
	}
}

// WithStrictVerification rejects values no secret verifies instead of
// reading them unsecured.
func WithStrictVerification(strict bool) Option {
	return func(o *Options) {
		o.StrictVerification = strict
	}
}

func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithMaxAge sets a rolling lifetime in seconds.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

// WithExpires sets a fixed expiry date.
func WithExpires(t time.Time) Option {
	return func(o *Options) {
		o.Expires = t
	}
}

func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HttpOnly = httpOnly
	}
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = sameSite
	}
}

func WithPartitioned(partitioned bool) Option {
	return func(o *Options) {
		o.Partitioned = partitioned
	}
}

// WithClock overrides the time source used for expiry and issued-at claims.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWarner routes misconfiguration warnings to w instead of the process-wide warner.
func WithWarner(w *diagnostics.Warner) Option {
	return func(o *Options) {
		if w != nil {
			o.warner = w
		}
	}
}

func defaultOptions() Options {
	return Options{
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		now:      time.Now,
		warner:   diagnostics.Default(),
	}
}

// applyOptions returns a copy of base with opts applied in order; base is not modified.
func applyOptions(base Options, opts []Option) Options {
	result := base
	result.Secrets = slices.Clone(base.Secrets)

	for _, opt := range opts {
		opt(&result)
	}

	return result
}

// expires derives the effective expiry: now+MaxAge wins over a fixed date.
func (o Options) expires() (time.Time, bool) {
	if o.MaxAge != 0 {
		return o.now().Add(time.Duration(o.MaxAge) * time.Second), true
	}
	if !o.Expires.IsZero() {
		return o.Expires, true
	}
	return time.Time{}, false
}

func (o Options) httpCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:        name,
		Value:       value,
		Path:        o.Path,
		Domain:      o.Domain,
		Expires:     o.Expires,
		MaxAge:      o.MaxAge,
		Secure:      o.Secure,
		HttpOnly:    o.HttpOnly,
		SameSite:    o.SameSite,
		Partitioned: o.Partitioned,
	}
}
