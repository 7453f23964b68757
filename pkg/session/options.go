package session

import (
	"log/slog"

	"github.com/dmitrymomot/sealcookie/pkg/diagnostics"
	"github.com/dmitrymomot/sealcookie/pkg/logger"
)

// Option configures a Storage.
type Option func(*options)

type options struct {
	logger *slog.Logger
	warner *diagnostics.Warner
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWarner routes the unsigned cookie warning to w instead of the process-wide warner.
func WithWarner(w *diagnostics.Warner) Option {
	return func(o *options) {
		if w != nil {
			o.warner = w
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{warner: diagnostics.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logger.OrDefault(o.logger).With(logger.Component("session"))
	return o
}
