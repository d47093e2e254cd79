package middlewares_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	stopped := make(chan struct{})
	app := web.New(
		web.WithMiddleware(middlewares.Timeout(20*time.Millisecond)),
		web.WithErrorHandler(func(c web.Context, err error) error {
			if te, ok := middlewares.AsTimeoutError(err); ok {
				return c.String(http.StatusServiceUnavailable, te.Error())
			}
			return c.String(http.StatusInternalServerError, err.Error())
		}),
		web.WithHandlers(routes(func(r web.Router) {
			r.GET("/slow", func(c web.Context) error {
				select {
				case <-c.Done():
					close(stopped)
					return nil
				case <-time.After(5 * time.Second):
					return c.String(http.StatusOK, "late")
				}
			})
			r.GET("/fast", func(c web.Context) error {
				if _, ok := c.Deadline(); !ok {
					return c.String(http.StatusOK, "no deadline")
				}
				return c.String(http.StatusOK, "fast")
			})
		})),
	)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "request timeout after 20ms", w.Body.String())

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("handler did not observe the deadline")
	}

	w = serve(app, httptest.NewRequest(http.MethodGet, "/fast", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fast", w.Body.String())
}

func TestTimeout_LateWritesAreDropped(t *testing.T) {
	t.Parallel()

	type lateKey struct{}
	finished := make(chan error, 1)
	app := web.New(
		web.WithMiddleware(middlewares.Timeout(10*time.Millisecond)),
		web.WithErrorHandler(func(c web.Context, err error) error {
			c.SetHeader("X-Error", "1")
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		}),
		web.WithHandlers(routes(func(r web.Router) {
			r.GET("/stubborn", func(c web.Context) error {
				// Ignores the deadline on purpose.
				time.Sleep(50 * time.Millisecond)
				c.Set(lateKey{}, "late")
				c.SetHeader("X-Late", "1")
				err := c.JSON(http.StatusOK, map[string]string{"status": "late"})
				finished <- err
				return err
			})
		})),
	)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/stubborn", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"request timeout after 10ms"}`, w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-Error"))

	select {
	case err := <-finished:
		require.ErrorIs(t, err, web.ErrResponseDiscarded)
	case <-time.After(time.Second):
		t.Fatal("handler did not finish")
	}
	assert.Empty(t, w.Header().Get("X-Late"))
	assert.NotContains(t, w.Body.String(), "late")
}

func TestTimeout_CommitsResponse(t *testing.T) {
	t.Parallel()

	app := web.New(
		web.WithMiddleware(middlewares.Timeout(time.Second)),
		web.WithHandlers(routes(func(r web.Router) {
			r.POST("/things", func(c web.Context) error {
				c.SetHeader("Location", "/things/1")
				return c.String(http.StatusCreated, "created")
			})
		})),
	)

	w := serve(app, httptest.NewRequest(http.MethodPost, "/things", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/things/1", w.Header().Get("Location"))
	assert.Equal(t, "created", w.Body.String())
}

func TestTimeout_PanicReachesRecover(t *testing.T) {
	t.Parallel()

	app := web.New(
		web.WithMiddleware(middlewares.Recover(), middlewares.Timeout(time.Second)),
		web.WithErrorHandler(func(c web.Context, err error) error {
			if pe, ok := middlewares.AsPanicError(err); ok {
				return c.String(http.StatusInternalServerError, fmt.Sprint(pe.Value))
			}
			return c.String(http.StatusTeapot, err.Error())
		}),
		web.WithHandlers(routes(func(r web.Router) {
			r.GET("/panic", func(web.Context) error {
				panic("boom")
			})
		})),
	)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "boom", w.Body.String())
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", &middlewares.TimeoutError{Duration: time.Second})
	te, ok := middlewares.AsTimeoutError(err)
	require.True(t, ok)
	assert.Equal(t, time.Second, te.Duration)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, ok = middlewares.AsTimeoutError(errors.New("plain"))
	assert.False(t, ok)
}
