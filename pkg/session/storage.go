package session

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/sealcookie/pkg/cookie"
	"github.com/dmitrymomot/sealcookie/pkg/diagnostics"
	"github.com/dmitrymomot/sealcookie/pkg/logger"
)

// Storage loads sessions from a Cookie request header and produces the
// Set-Cookie header values that persist or destroy them.
type Storage interface {
	// GetSession returns the session carried by header. A blank header, a
	// missing cookie or an unknown id yields a new empty session.
	GetSession(ctx context.Context, header string) (*Session, error)

	// CommitSession persists s and returns the Set-Cookie header value.
	CommitSession(ctx context.Context, s *Session, opts ...cookie.Option) (string, error)

	// DestroySession discards s and returns a Set-Cookie header value that
	// removes the cookie.
	DestroySession(ctx context.Context, s *Session, opts ...cookie.Option) (string, error)
}

// warnUnsigned flags session cookies that clients can tamper with.
func warnUnsigned(w *diagnostics.Warner, c *cookie.Cookie) {
	if c.IsSigned() {
		return
	}
	w.WarnOnce(
		fmt.Sprintf("session cookie %q is not signed; configure secrets so clients cannot tamper with it", c.Name()),
		logger.Cookie(c.Name()),
	)
}
