package logger

import (
	"fmt"
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Cookie records a cookie name under the key "cookie".
func Cookie(name string) slog.Attr {
	return slog.String("cookie", name)
}

// Mode records a codec mode under the key "mode".
func Mode(mode fmt.Stringer) slog.Attr {
	if mode == nil {
		return slog.Attr{}
	}
	return slog.String("mode", mode.String())
}

// SecretIndex records the ring position of a secret, never the secret itself.
func SecretIndex(i int) slog.Attr {
	return slog.Int("secret_index", i)
}

// SessionID records a session identifier under the key "session_id".
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}
