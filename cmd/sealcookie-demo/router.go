package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sealcookie/pkg/logger"
	"github.com/dmitrymomot/sealcookie/pkg/session"
)

type visitResponse struct {
	Visits int    `json:"visits"`
	Notice string `json:"notice,omitempty"`
}

func newRouter(storage session.Storage, log *slog.Logger, checks ...func(context.Context) error) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", healthHandler(log, checks...))

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(storage))
		r.Get("/", visitHandler(storage, log))
		r.Post("/notice", noticeHandler(storage, log))
		r.Post("/logout", logoutHandler(storage, log))
	})

	return r
}

func visitHandler(storage session.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}

		visits, _ := s.GetInt("visits")
		visits++
		s.Set("visits", visits)
		notice, _ := s.GetString("notice")

		if err := session.Commit(r.Context(), w, storage, s); err != nil {
			log.ErrorContext(r.Context(), "commit session", logger.Error(err))
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(visitResponse{Visits: visits, Notice: notice})
	}
}

func noticeHandler(storage session.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}

		s.Flash("notice", r.FormValue("message"))
		if err := session.Commit(r.Context(), w, storage, s); err != nil {
			log.ErrorContext(r.Context(), "commit session", logger.Error(err))
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func logoutHandler(storage session.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if err := session.Destroy(r.Context(), w, storage, s); err != nil {
			log.ErrorContext(r.Context(), "destroy session", logger.Error(err))
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// healthHandler answers READY when every check succeeds.
func healthHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		_, _ = w.Write([]byte("READY"))
	}
}
