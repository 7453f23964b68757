package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/sealcookie/pkg/cookie"
)

// Middleware loads the request's session from storage into the request
// context. Requests whose session cannot be loaded are served without one.
func Middleware(storage Storage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Clients may split cookies over several Cookie header lines.
			header := strings.Join(r.Header.Values("Cookie"), "; ")
			s, err := storage.GetSession(r.Context(), header)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// Commit persists s and adds its Set-Cookie header to w. Call it before the
// response body is written.
func Commit(ctx context.Context, w http.ResponseWriter, storage Storage, s *Session, opts ...cookie.Option) error {
	header, err := storage.CommitSession(ctx, s, opts...)
	if err != nil {
		return err
	}
	w.Header().Add("Set-Cookie", header)
	return nil
}

// Destroy discards s and adds the Set-Cookie header that removes its cookie.
func Destroy(ctx context.Context, w http.ResponseWriter, storage Storage, s *Session, opts ...cookie.Option) error {
	header, err := storage.DestroySession(ctx, s, opts...)
	if err != nil {
		return err
	}
	w.Header().Add("Set-Cookie", header)
	return nil
}
