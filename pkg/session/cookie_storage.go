package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/sealcookie/pkg/cookie"
	"github.com/dmitrymomot/sealcookie/pkg/logger"
)

// CookieStorage keeps the whole session data map in the cookie value.
type CookieStorage struct {
	cookie *cookie.Cookie
	logger *slog.Logger
}

// NewCookieStorage creates a storage that serializes session data into c.
func NewCookieStorage(c *cookie.Cookie, opts ...Option) *CookieStorage {
	o := applyOptions(opts)
	warnUnsigned(o.warner, c)

	return &CookieStorage{
		cookie: c,
		logger: o.logger.With(logger.Cookie(c.Name())),
	}
}

func (cs *CookieStorage) GetSession(ctx context.Context, header string) (*Session, error) {
	return New("", readData(cs.logger, cs.cookie, header)), nil
}

// CommitSession fails with cookie.ErrCookieTooLarge when the resulting header
// exceeds cookie.MaxSize bytes.
func (cs *CookieStorage) CommitSession(ctx context.Context, s *Session, opts ...cookie.Option) (string, error) {
	if s == nil {
		return "", ErrNilSession
	}

	header, err := cs.cookie.Serialize(s.Data(), opts...)
	if err != nil {
		return "", err
	}
	if len(header) > cookie.MaxSize {
		return "", fmt.Errorf("cookie %q is %d bytes, limit is %d: %w",
			cs.cookie.Name(), len(header), cookie.MaxSize, cookie.ErrCookieTooLarge)
	}
	return header, nil
}

func (cs *CookieStorage) DestroySession(ctx context.Context, s *Session, opts ...cookie.Option) (string, error) {
	if s == nil {
		return "", ErrNilSession
	}
	return cs.cookie.Expire(opts...), nil
}

// readData decodes the session map carried by header. Anything that is not
// a readable map yields nil so the caller starts a new session.
func readData(log *slog.Logger, c *cookie.Cookie, header string) map[string]any {
	value, err := c.Parse(header)
	if err != nil {
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			log.Debug("discarding unreadable session cookie", logger.Error(err))
		}
		return nil
	}

	data, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return data
}
