package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option configures Load.
type Option func(*options)

type options struct {
	prefix      string
	files       []string
	environment map[string]string
}

// WithPrefix prepends prefix to every env tag, e.g. "ADMIN_" reads ADMIN_COOKIE_SECRETS.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the given .env files before parsing. Missing files are an error.
// Variables already present in the process environment are not overwritten.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = append(o.files, files...)
	}
}

// WithEnvironment parses from the given map instead of the process environment.
func WithEnvironment(environment map[string]string) Option {
	return func(o *options) {
		o.environment = environment
	}
}

// Load parses environment variables into a new T based on its env tags.
//
// The default .env file in the working directory is loaded once per process
// if it exists. Files given with WithEnvFiles are loaded on every call.
//
// Example:
//
//	cfg, err := config.Load[cookie.Config]()
//	if err != nil {
//		// Handle error
//	}
func Load[T any](opts ...Option) (T, error) {
	defaultEnvLoaded.Do(func() {
		// The default .env file is optional.
		_ = godotenv.Load()
	})

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var cfg T

	if len(o.files) > 0 {
		if err := godotenv.Load(o.files...); err != nil {
			return cfg, errors.Join(ErrLoadingEnvFile, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}

	return cfg, nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the application cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
