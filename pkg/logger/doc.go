// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers so log keys stay consistent across packages.
//
// # Usage
//
//	log := logger.New(logger.WithEnvironment(os.Getenv("APP_ENV"), "web"))
//	log.Warn("token rejected", logger.Cookie("session"), logger.SecretIndex(1))
//
// Secrets are never logged. Use SecretIndex to identify which ring entry
// was involved.
//
// NewNope returns a logger that discards output and is handy in tests.
package logger
