package token

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sealcookie/pkg/logger"
	"github.com/dmitrymomot/sealcookie/pkg/secrets"
)

const (
	// DefaultPBES2Count is the PBKDF2 iteration count used for both the JWE
	// key wrapping and the JWS MAC key derivation.
	DefaultPBES2Count = 10000

	// macKeySalt separates MAC keys from any other use of the same secret.
	macKeySalt = "sealcookie:HS256"
)

// sharedKeys caches MAC keys across every codec that does not bring its own cache.
var sharedKeys = secrets.NewKeyCache(secrets.DefaultKeyCacheSize)

// Codec turns values into compact tokens and back.
// A Codec holds only configuration and is safe for concurrent use.
type Codec struct {
	mode       Mode
	strict     bool
	pbes2Count int
	now        func() time.Time
	logger     *slog.Logger
	keys       *secrets.KeyCache
}

// Option configures a Codec.
type Option func(*Codec)

// WithMode selects signing (default) or encryption for secured tokens.
func WithMode(mode Mode) Option {
	return func(c *Codec) {
		c.mode = mode
	}
}

// WithStrictVerification makes Decode return ErrVerificationFailed when a
// non-empty ring fails to verify a token, instead of reading it unsecured.
func WithStrictVerification() Option {
	return func(c *Codec) {
		c.strict = true
	}
}

// WithPBES2Count sets the PBKDF2 iteration count. Non-positive values are ignored.
func WithPBES2Count(n int) Option {
	return func(c *Codec) {
		if n > 0 {
			c.pbes2Count = n
		}
	}
}

// WithClock overrides the time source of the issued-at claim.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithKeyCache isolates derived MAC keys in the given cache.
func WithKeyCache(keys *secrets.KeyCache) Option {
	return func(c *Codec) {
		if keys != nil {
			c.keys = keys
		}
	}
}

// New creates a Codec. Defaults: sign mode, fallback to unsecured decoding,
// DefaultPBES2Count iterations, time.Now, slog.Default().
func New(opts ...Option) *Codec {
	c := &Codec{
		mode:       ModeSign,
		pbes2Count: DefaultPBES2Count,
		now:        time.Now,
		keys:       sharedKeys,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logger.OrDefault(c.logger).With(logger.Component("token"), logger.Mode(c.mode))
	return c
}

// Mode returns the configured mode.
func (c *Codec) Mode() Mode {
	return c.mode
}

// Encode turns value into a token using a default codec in the given mode.
func Encode(value any, ring secrets.Ring, mode Mode) (string, error) {
	return New(WithMode(mode)).Encode(value, ring)
}

// Decode reads a token using a default codec in the given mode.
func Decode(token string, ring secrets.Ring, mode Mode) (any, error) {
	return New(WithMode(mode)).Decode(token, ring)
}

func (c *Codec) macKey(secret string) ([]byte, error) {
	return c.keys.Derive(secret, []byte(macKeySalt), c.pbes2Count, secrets.KeySize)
}
