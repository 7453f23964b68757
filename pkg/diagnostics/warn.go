package diagnostics

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/sealcookie/pkg/logger"
)

// Warner emits each distinct warning message once.
type Warner struct {
	seen   sync.Map // [sha256.Size]byte -> struct{}
	logger atomic.Pointer[slog.Logger]
}

// NewWarner creates a Warner writing to l (slog.Default() when nil).
func NewWarner(l *slog.Logger) *Warner {
	w := &Warner{}
	w.SetLogger(l)
	return w
}

// SetLogger swaps the destination logger. Already emitted messages stay suppressed.
func (w *Warner) SetLogger(l *slog.Logger) {
	w.logger.Store(logger.OrDefault(l))
}

// WarnOnce logs msg at warn level unless the same message was logged before.
// It reports whether the message was emitted by this call.
func (w *Warner) WarnOnce(msg string, attrs ...slog.Attr) bool {
	if _, loaded := w.seen.LoadOrStore(sha256.Sum256([]byte(msg)), struct{}{}); loaded {
		return false
	}
	w.logger.Load().LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
	return true
}

// Seen reports whether msg has already been emitted.
func (w *Warner) Seen(msg string) bool {
	_, ok := w.seen.Load(sha256.Sum256([]byte(msg)))
	return ok
}

var defaultWarner = NewWarner(nil)

// WarnOnce emits msg through the process-wide Warner.
func WarnOnce(msg string, attrs ...slog.Attr) bool {
	return defaultWarner.WarnOnce(msg, attrs...)
}

// SetLogger redirects the process-wide Warner. Nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	defaultWarner.SetLogger(l)
}

// Default returns the process-wide Warner.
func Default() *Warner {
	return defaultWarner
}
