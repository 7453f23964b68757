package cookie

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/sealcookie/pkg/logger"
	"github.com/dmitrymomot/sealcookie/pkg/secrets"
	"github.com/dmitrymomot/sealcookie/pkg/token"
)

// MaxSize is the largest Set-Cookie value browsers are required to store.
const MaxSize = 4096

// Cookie describes one logical cookie: its name, attributes and how its value
// is encoded. It holds no per-request state and is safe for concurrent use.
type Cookie struct {
	name     string
	ring     secrets.Ring
	codec    *token.Codec
	defaults Options
	logger   *slog.Logger
}

// New creates a cookie descriptor. Defaults: Path "/", SameSite Lax, no
// secrets (unsecured values), signing rather than encryption.
func New(name string, opts ...Option) (*Cookie, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := (&http.Cookie{Name: name}).Valid(); err != nil {
		return nil, errors.Join(ErrInvalidName, err)
	}

	defaults := applyOptions(defaultOptions(), opts)
	log := logger.OrDefault(defaults.logger).With(logger.Cookie(name))

	mode := token.ModeSign
	if defaults.Encrypt {
		mode = token.ModeEncrypt
	}
	codecOpts := []token.Option{
		token.WithMode(mode),
		token.WithClock(defaults.now),
		token.WithLogger(log),
	}
	if defaults.StrictVerification {
		codecOpts = append(codecOpts, token.WithStrictVerification())
	}

	c := &Cookie{
		name:     name,
		ring:     secrets.NewRing(defaults.Secrets...),
		codec:    token.New(codecOpts...),
		defaults: defaults,
		logger:   log,
	}
	c.warnMisconfiguration()

	return c, nil
}

func (c *Cookie) Name() string {
	return c.name
}

// IsSigned reports whether values are protected by at least one secret.
func (c *Cookie) IsSigned() bool {
	return !c.ring.IsEmpty()
}

// Expires returns the effective expiry, recomputed on every call: now+MaxAge
// when MaxAge is set, otherwise the fixed Expires option. Options override
// the descriptor's attributes the same way they do for Serialize.
func (c *Cookie) Expires(opts ...Option) (time.Time, bool) {
	return applyOptions(c.defaults, opts).expires()
}

// Parse extracts and decodes this cookie's value from a Cookie request header.
// It returns ErrCookieNotFound when the header is blank or does not carry the
// cookie, and the empty string when the cookie is present but empty.
func (c *Cookie) Parse(header string) (any, error) {
	if strings.TrimSpace(header) == "" {
		return nil, ErrCookieNotFound
	}

	r := &http.Request{Header: http.Header{"Cookie": []string{header}}}
	return c.Read(r)
}

// Read is Parse over the cookies of an incoming request.
func (c *Cookie) Read(r *http.Request) (any, error) {
	hc, err := r.Cookie(c.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, ErrCookieNotFound
		}
		return nil, err
	}

	if hc.Value == "" {
		return "", nil
	}

	value, err := c.codec.Decode(hc.Value, c.ring)
	if err != nil {
		c.logger.Debug("cookie value rejected", logger.Error(err))
		return nil, err
	}
	return value, nil
}

// Serialize encodes value and returns a Set-Cookie header value. Options
// override the descriptor's attributes for this call only. The empty string
// is written as an empty cookie without encoding.
func (c *Cookie) Serialize(value any, opts ...Option) (string, error) {
	o := applyOptions(c.defaults, opts)

	var raw string
	if s, ok := value.(string); !ok || s != "" {
		encoded, err := c.codec.Encode(value, c.ring)
		if err != nil {
			return "", fmt.Errorf("cookie %q: %w", c.name, err)
		}
		raw = encoded
	}

	return o.httpCookie(c.name, raw).String(), nil
}

// Write serializes value and appends the Set-Cookie header to w.
func (c *Cookie) Write(w http.ResponseWriter, value any, opts ...Option) error {
	header, err := c.Serialize(value, opts...)
	if err != nil {
		return err
	}
	w.Header().Add("Set-Cookie", header)
	return nil
}

// Expire returns a Set-Cookie header value that makes the client drop the cookie.
func (c *Cookie) Expire(opts ...Option) string {
	o := applyOptions(c.defaults, opts)
	o.MaxAge = -1
	o.Expires = time.Unix(0, 0)
	return o.httpCookie(c.name, "").String()
}

// Delete instructs the client to drop the cookie.
func (c *Cookie) Delete(w http.ResponseWriter, opts ...Option) {
	w.Header().Add("Set-Cookie", c.Expire(opts...))
}

func (c *Cookie) warnMisconfiguration() {
	w := c.defaults.warner

	if c.defaults.MaxAge == 0 && !c.defaults.Expires.IsZero() {
		w.WarnOnce(fmt.Sprintf(
			"cookie %q has a fixed Expires date that will not move forward when the cookie is serialized again; "+
				"use WithMaxAge, or pass WithExpires to Serialize or CommitSession instead", c.name),
			logger.Cookie(c.name))
	}

	if c.defaults.Encrypt && c.ring.IsEmpty() {
		w.WarnOnce(fmt.Sprintf(
			"cookie %q requests encryption but has no secrets; its values are stored unsecured", c.name),
			logger.Cookie(c.name))
	}
}
