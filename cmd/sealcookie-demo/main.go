// Command sealcookie-demo serves a visit counter backed by signed session
// cookies. SESSION_STORAGE selects cookie, memory or redis storage.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/sealcookie/pkg/config"
	"github.com/dmitrymomot/sealcookie/pkg/cookie"
	"github.com/dmitrymomot/sealcookie/pkg/diagnostics"
	"github.com/dmitrymomot/sealcookie/pkg/logger"
	"github.com/dmitrymomot/sealcookie/pkg/redis"
	"github.com/dmitrymomot/sealcookie/pkg/session"
)

type appConfig struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
	Storage         string        `env:"SESSION_STORAGE" envDefault:"cookie"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load[appConfig]()
	if err != nil {
		return err
	}

	log := logger.New(logger.WithEnvironment(cfg.Env, "sealcookie-demo"))
	diagnostics.SetLogger(log)

	cookieCfg, err := config.Load[cookie.Config]()
	if err != nil {
		return err
	}
	c, err := cookie.NewFromConfig(cfg.CookieName, cookieCfg, cookie.WithLogger(log))
	if err != nil {
		return err
	}

	storage, checks, cleanup, err := newStorage(ctx, cfg, c, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(storage, log, checks...),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("server started", slog.String("addr", cfg.Addr), slog.String("storage", cfg.Storage))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func newStorage(ctx context.Context, cfg appConfig, c *cookie.Cookie, log *slog.Logger) (session.Storage, []func(context.Context) error, func(), error) {
	opts := []session.Option{session.WithLogger(log)}

	switch cfg.Storage {
	case "cookie":
		return session.NewCookieStorage(c, opts...), nil, func() {}, nil

	case "memory":
		store := session.NewMemoryStore(cfg.CleanupInterval)
		return session.NewIDStorage(c, store, opts...), nil, func() { _ = store.Close() }, nil

	case "redis":
		redisCfg, err := config.Load[redis.Config]()
		if err != nil {
			return nil, nil, nil, err
		}
		client, err := redis.Connect(ctx, redisCfg, log)
		if err != nil {
			return nil, nil, nil, err
		}
		store := session.NewRedisStore(client, session.WithKeyPrefix(redisCfg.KeyPrefix))
		checks := []func(context.Context) error{redis.Healthcheck(client)}
		return session.NewIDStorage(c, store, opts...), checks, func() { _ = client.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown session storage %q: use cookie, memory or redis", cfg.Storage)
	}
}
