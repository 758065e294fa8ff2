// Package logger builds the service's structured logger.
//
// It wraps log/slog with two additions: context extractors that inject
// request-scoped attributes (such as request_id) into every record, and an
// optional Sentry handler that turns error-level records into Sentry issues.
//
// # Usage
//
//	log := logger.New(logger.Config{
//		Level:  "info",
//		Format: "json",
//		Sentry: logger.SentryConfig{DSN: os.Getenv("SENTRY_DSN")},
//	}, middlewares.RequestIDExtractor())
//
//	log.ErrorContext(ctx, "dispatch failed", slog.String("error", err.Error()))
//
// When the Sentry DSN is empty, or Sentry fails to initialise, the logger
// falls back to stdout only. Background components that must never fail on
// logging can use [NewNope] as a default.
package logger
