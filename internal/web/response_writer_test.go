package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/internal/web"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("write header once", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := web.NewResponseWriter(rec)
		assert.False(t, w.Written())
		assert.Equal(t, http.StatusOK, w.Status())

		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusTeapot)

		assert.True(t, w.Written())
		assert.Equal(t, http.StatusCreated, w.Status())
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("write implies 200 and counts bytes", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := web.NewResponseWriter(rec)
		_, _ = w.Write([]byte("hello "))
		_, _ = w.Write([]byte("world"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(11), w.Size())
		assert.Equal(t, "hello world", rec.Body.String())
	})

	t.Run("wrapping is idempotent", func(t *testing.T) {
		t.Parallel()

		w := web.NewResponseWriter(httptest.NewRecorder())
		assert.Same(t, w, web.NewResponseWriter(w))
	})

	t.Run("unwrap and flush", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := web.NewResponseWriter(rec)
		assert.Same(t, rec, w.Unwrap())
		w.Flush()
		assert.True(t, rec.Flushed)
	})
}
