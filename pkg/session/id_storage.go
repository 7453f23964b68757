package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/sealcookie/pkg/cookie"
	"github.com/dmitrymomot/sealcookie/pkg/logger"
)

// IDStorage keeps only the session id in the cookie and the data in a Store.
type IDStorage struct {
	cookie *cookie.Cookie
	store  Store
	logger *slog.Logger
}

// NewIDStorage creates a storage backed by store, with ids carried by c.
func NewIDStorage(c *cookie.Cookie, store Store, opts ...Option) *IDStorage {
	o := applyOptions(opts)
	warnUnsigned(o.warner, c)

	return &IDStorage{
		cookie: c,
		store:  store,
		logger: o.logger.With(logger.Cookie(c.Name())),
	}
}

func (is *IDStorage) GetSession(ctx context.Context, header string) (*Session, error) {
	id := is.readID(header)
	if id == "" {
		return New("", nil), nil
	}

	data, err := is.store.Read(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return New("", nil), nil
		}
		return nil, err
	}
	return New(id, data), nil
}

// CommitSession creates or updates the stored data. Its expiry follows the
// cookie: MaxAge, then Expires, from opts first and the descriptor second.
func (is *IDStorage) CommitSession(ctx context.Context, s *Session, opts ...cookie.Option) (string, error) {
	if s == nil {
		return "", ErrNilSession
	}

	expires, _ := is.cookie.Expires(opts...)

	if s.id == "" {
		id, err := is.store.Create(ctx, s.data, expires)
		if err != nil {
			return "", err
		}
		s.id = id
		is.logger.Debug("session created", logger.SessionID(id))
	} else if err := is.store.Update(ctx, s.id, s.data, expires); err != nil {
		return "", err
	}

	return is.cookie.Serialize(s.id, opts...)
}

func (is *IDStorage) DestroySession(ctx context.Context, s *Session, opts ...cookie.Option) (string, error) {
	if s == nil {
		return "", ErrNilSession
	}

	if s.id != "" {
		if err := is.store.Delete(ctx, s.id); err != nil {
			return "", err
		}
		is.logger.Debug("session destroyed", logger.SessionID(s.id))
		s.id = ""
	}
	return is.cookie.Expire(opts...), nil
}

func (is *IDStorage) readID(header string) string {
	value, err := is.cookie.Parse(header)
	if err != nil {
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			is.logger.Debug("discarding unreadable session id", logger.Error(err))
		}
		return ""
	}

	id, _ := value.(string)
	return id
}
