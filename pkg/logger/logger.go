package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

const flushTimeout = 2 * time.Second

// New creates a logger writing to w in the configured format, forwarding
// warnings and errors to Sentry when a DSN is set.
// The returned func flushes buffered Sentry events and fits a shutdown hook.
func New(cfg Config, w io.Writer, extractors ...ContextExtractor) (*slog.Logger, func(context.Context) error) {
	out := newOutputHandler(cfg, w)
	noop := func(context.Context) error { return nil }

	if cfg.Sentry.DSN == "" {
		return slog.New(NewContextHandler(out, extractors...)), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(out).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(out, extractors...)), noop
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   levelsFrom(cfg.Sentry.MinLevel),
	}.NewSentryHandler(context.Background())

	log := slog.New(NewContextHandler(fanout{out, sentryHandler}, extractors...))
	flush := func(context.Context) error {
		sentry.Flush(flushTimeout)
		return nil
	}
	return log, flush
}

func newOutputHandler(cfg Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// levelsFrom lists the standard levels at or above floor, never below warn.
func levelsFrom(floor slog.Level) []slog.Level {
	floor = max(floor, slog.LevelWarn)
	var out []slog.Level
	for _, l := range []slog.Level{slog.LevelWarn, slog.LevelError} {
		if l >= floor {
			out = append(out, l)
		}
	}
	return out
}

// Error returns an error attribute, or an empty attribute for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}
