package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/folio/internal/web"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout bounds request handling. The handler runs on its own copy of the
// context with a deadline, and its response is buffered. If it has not
// returned when the deadline passes, the buffer is discarded, later writes
// from the handler are dropped and a *TimeoutError is returned to the error
// handler. A handler that gives up on ctx.Done() without writing a response
// is reported the same way. Panics in the handler are re-raised on the
// request goroutine.
func Timeout(timeout time.Duration) web.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			buf := web.NewResponseBuffer()
			hc := web.Buffered(ctx, c, buf)

			done := make(chan error, 1)
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				done <- next(hc)
			}()

			select {
			case p := <-panicked:
				buf.Discard()
				panic(p)
			case err := <-done:
				if err == nil && !hc.Written() && errors.Is(ctx.Err(), context.DeadlineExceeded) {
					buf.Discard()
					return timedOut(c, timeout)
				}
				if cerr := buf.Commit(c.Response()); cerr != nil {
					return errors.Join(err, cerr)
				}
				return err
			case <-ctx.Done():
				buf.Discard()
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return timedOut(c, timeout)
				}
				return ctx.Err()
			}
		}
	}
}

func timedOut(c web.Context, d time.Duration) error {
	c.LogWarn("request timeout", "timeout", d.String())
	return &TimeoutError{Duration: d}
}
