// Package logger builds folio's structured [log/slog] logger.
//
// Output is JSON (or text with LOG_FORMAT=text) at LOG_LEVEL. Request-scoped
// values are attached through [ContextExtractor] functions, evaluated on every
// record:
//
//	log, flush := logger.New(cfg.Log, os.Stdout,
//		logger.StringExtractor("request_id", middlewares.GetRequestID),
//	)
//	defer flush(context.Background())
//
// # Sentry
//
// When SENTRY_DSN is set, records are also sent to Sentry through
// [github.com/getsentry/sentry-go/slog]. Errors create issues; records at or
// above SENTRY_MIN_LEVEL (warn by default) are stored as Sentry logs. A
// failed Sentry initialization is logged and the logger falls back to the
// local output only.
package logger
