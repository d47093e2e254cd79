package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/folio/internal/web"
)

// AccessLog logs one record per request after it completes.
// Server errors log at error level, client errors at warn.
func AccessLog() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			c.Logger().LogAttrs(c.Context(), level, "http request",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", rw.Size()),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_addr", c.Request().RemoteAddr),
			)
			return err
		}
	}
}
