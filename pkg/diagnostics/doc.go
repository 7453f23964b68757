// Package diagnostics reports developer-facing misconfiguration warnings at
// most once per distinct message for the lifetime of the process.
//
// A Warner remembers the SHA-256 hash of every message it has emitted; the
// check and the insert happen in a single sync.Map LoadOrStore, so concurrent
// callers racing on the same message produce exactly one log record.
//
//	diagnostics.WarnOnce(`the "session" cookie sets a fixed expires date`,
//	    logger.Cookie("session"))
//
// The package-level WarnOnce uses a process-wide Warner writing to
// slog.Default(). SetLogger redirects it.
package diagnostics
