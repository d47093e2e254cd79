package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/media"
	"github.com/dmitrymomot/folio/internal/store"
	"github.com/dmitrymomot/folio/internal/user"
	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/canonical"
	"github.com/dmitrymomot/folio/pkg/storage"
)

// apiPrefix marks routes answered with the JSON envelope.
const apiPrefix = "/api/"

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func ok(c web.Context, code int, data any) error {
	return c.JSON(code, Envelope{Success: true, Data: data})
}

// ErrorHandler renders handler errors. API routes get the JSON envelope,
// public pages get the HTML error page.
func ErrorHandler(pages *Pages) web.ErrorHandler {
	return func(c web.Context, err error) error {
		he := classify(c, err)
		if strings.HasPrefix(c.Request().URL.Path, apiPrefix) || pages == nil {
			return c.JSON(he.Code, Envelope{Error: he.Message, Code: he.ErrorCode})
		}
		return c.Render(he.Code, pages.Error(he.Code, he.Message))
	}
}

// classify maps domain errors onto HTTP errors. Unexpected errors are
// logged and reported as 500 without details.
func classify(c web.Context, err error) *web.HTTPError {
	if he := web.AsHTTPError(err); he != nil {
		if he.Code >= http.StatusInternalServerError {
			c.LogError("request failed", slog.Int("status", he.Code), slog.String("error", err.Error()))
		}
		return he
	}

	var fve *storage.FileValidationError
	switch {
	case errors.As(err, &fve):
		code := http.StatusUnprocessableEntity
		if fve.Code == storage.ErrCodeFileTooLarge {
			code = http.StatusRequestEntityTooLarge
		}
		return web.NewHTTPError(code, fve.Message, web.WithErrorCode(fve.Code), web.WithError(err))
	case errors.Is(err, article.ErrValidation),
		errors.Is(err, media.ErrInvalidInput),
		errors.Is(err, storage.ErrEmptyFile):
		return web.ErrUnprocessable(message(err), web.WithError(err))
	case errors.Is(err, article.ErrSlugConflict):
		return web.ErrConflict(message(err), web.WithErrorCode("slug_conflict"), web.WithError(err))
	case errors.Is(err, media.ErrDuplicate):
		return web.ErrConflict(message(err), web.WithErrorCode("duplicate"), web.WithError(err))
	case errors.Is(err, store.ErrNotFound):
		return web.ErrNotFound("not found", web.WithError(err))
	case errors.Is(err, user.ErrInvalidCredentials):
		return web.ErrUnauthorized("invalid email or password", web.WithError(err))
	case errors.Is(err, auth.ErrUnauthenticated):
		return web.ErrUnauthorized("authentication required", web.WithError(err))
	case errors.Is(err, auth.ErrTooManyAttempts):
		return web.ErrTooManyRequests("too many failed sign-in attempts, try again later",
			web.WithError(err), web.WithErrorCode("too_many_attempts"))
	case errors.Is(err, auth.ErrForbidden):
		return web.ErrForbidden("insufficient permissions", web.WithError(err))
	case errors.Is(err, media.ErrNotConfigured):
		return web.ErrServiceUnavailable("file uploads are not configured", web.WithError(err))
	}

	if _, isTimeout := middlewares.AsTimeoutError(err); isTimeout {
		c.LogWarn("request timed out", slog.String("error", err.Error()))
		return web.ErrServiceUnavailable("request timed out", web.WithError(err))
	}
	if pe, isPanic := middlewares.AsPanicError(err); isPanic {
		c.LogError("handler panicked", slog.Any("panic", pe.Value))
		return web.ErrInternal(http.StatusText(http.StatusInternalServerError), web.WithError(err))
	}
	if errors.Is(err, canonical.ErrNoOrigin) {
		c.LogError("canonical origin is not configured, set BASE_URL", slog.String("error", err.Error()))
		return web.ErrInternal(http.StatusText(http.StatusInternalServerError), web.WithError(err))
	}

	c.LogError("unhandled error", slog.String("error", err.Error()))
	return web.ErrInternal(http.StatusText(http.StatusInternalServerError), web.WithError(err))
}

// message strips the "pkg: " prefix of sentinel errors for display.
func message(err error) string {
	msg := err.Error()
	if pkg, rest, found := strings.Cut(msg, ": "); found && !strings.Contains(pkg, " ") {
		return rest
	}
	return msg
}
