// Package cookie describes named HTTP cookies whose values are arbitrary
// structured data carried as signed, encrypted or unsecured tokens.
//
// # Overview
//
// A Cookie is created once per logical cookie and reused for every request.
// It binds a name, default attributes and a token codec:
//
//	session, err := cookie.New("session",
//	    cookie.WithSecrets("current-secret", "previous-secret"),
//	    cookie.WithMaxAge(3600),
//	    cookie.WithHTTPOnly(true),
//	)
//
//	header, err := session.Serialize(map[string]any{"uid": 42})
//	// session=eyJhbGciOi...; Path=/; Max-Age=3600; HttpOnly; SameSite=Lax
//
//	v, err := session.Parse(r.Header.Get("Cookie"))
//	// map[string]any{"uid": float64(42)}
//
// Read, Write and Delete do the same over *http.Request and
// http.ResponseWriter.
//
// # Secrets
//
// The first secret signs (or encrypts, with WithEncryption) new values; all
// secrets are accepted when reading, so rotating means prepending a new
// secret and dropping the oldest one later. Without secrets, values are
// unsecured tokens. See package token for the formats and for the unsecured
// fallback applied when no secret verifies a value; WithStrictVerification
// turns that fallback off.
//
// # Expiry
//
// WithMaxAge gives a rolling lifetime: Expires reports now+MaxAge every time
// it is called. WithExpires sets a fixed date, which a one-time warning flags
// because it does not move when the cookie is committed again.
//
// # Configuration
//
// Config carries env tags and works with github.com/caarlos0/env through
// pkg/config:
//
//	cfg, err := config.Load[cookie.Config]()
//	session, err := cookie.NewFromConfig("session", cfg)
//
// # Error Handling
//
// ErrCookieNotFound is returned when a header does not carry the cookie.
// Token errors (token.ErrEncoding, token.ErrDecoding,
// token.ErrVerificationFailed) pass through and can be matched with errors.Is.
//
// Cookie header parsing and Set-Cookie rendering are delegated to net/http.
package cookie
