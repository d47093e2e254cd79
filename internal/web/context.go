package web

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/folio/pkg/cookie"
)

const (
	// DefaultJSONBodyLimit caps request bodies decoded by BindJSON.
	DefaultJSONBodyLimit = 2 << 20
	// multipart bodies may exceed the file limit by this much for headers and fields.
	multipartOverhead = 1 << 20
	multipartMemory   = 8 << 20
)

// Component renders HTML. html/template pages implement it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	ResponseWriter() *ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns a form value. Multipart forms must be parsed first with FormFile.
	Form(name string) string

	// FormFile parses a multipart body of at most maxBytes of file data and
	// returns the first file under name.
	FormFile(name string, maxBytes int64) (*multipart.FileHeader, error)

	Header(name string) string
	SetHeader(name, value string)

	// BindJSON decodes the request body into v.
	// Malformed or oversized bodies yield a 400 or 413 HTTPError.
	BindJSON(v any) error

	JSON(code int, v any) error
	XML(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error
	Redirect(code int, url string) error

	// Render writes an HTML component with the given status code.
	Render(code int, component Component) error

	// Error creates an HTTPError without writing a response.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether a response has been started.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get reads a value from the request context.
	Get(key any) any

	// SetContext replaces the request context, for deadlines and cancellation.
	SetContext(ctx context.Context)

	CookieSigned(name string) (string, error)
	SetCookieSigned(name, value string, maxAge time.Duration) error
	DeleteCookie(name string) error
}

type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
	cookies  *cookie.Manager
}

func newContext(w http.ResponseWriter, r *http.Request, a *App) *requestContext {
	return &requestContext{
		request:  r,
		response: NewResponseWriter(w),
		logger:   a.logger,
		cookies:  a.cookies,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.request.URL.Query().Get(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	if c.request.MultipartForm != nil {
		if vs := c.request.MultipartForm.Value[name]; len(vs) > 0 {
			return vs[0]
		}
	}
	return c.request.FormValue(name)
}

func (c *requestContext) FormFile(name string, maxBytes int64) (*multipart.FileHeader, error) {
	if c.request.MultipartForm == nil {
		c.request.Body = http.MaxBytesReader(c.response, c.request.Body, maxBytes+multipartOverhead)
		if err := c.request.ParseMultipartForm(multipartMemory); err != nil {
			if tooLarge(err) {
				return nil, ErrRequestTooLarge(fmt.Sprintf("upload exceeds %d bytes", maxBytes), WithError(err))
			}
			return nil, ErrBadRequest("invalid multipart form", WithError(err))
		}
	}

	files := c.request.MultipartForm.File[name]
	if len(files) == 0 {
		return nil, ErrBadRequest(fmt.Sprintf("missing file field %q", name))
	}
	return files[0], nil
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) BindJSON(v any) error {
	body := http.MaxBytesReader(c.response, c.request.Body, DefaultJSONBodyLimit)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		switch {
		case tooLarge(err):
			return ErrRequestTooLarge("request body too large", WithError(err))
		case errors.Is(err, io.EOF):
			return ErrBadRequest("request body is empty", WithError(err))
		default:
			return ErrBadRequest("invalid JSON body", WithError(err))
		}
	}
	return nil
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) XML(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/xml; charset=utf-8")
	c.response.WriteHeader(code)
	if _, err := io.WriteString(c.response, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Render(code int, component Component) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) CookieSigned(name string) (string, error) {
	if c.cookies == nil {
		return "", ErrCookiesNotConfigured
	}
	return c.cookies.GetSigned(c.request, name)
}

func (c *requestContext) SetCookieSigned(name, value string, maxAge time.Duration) error {
	if c.cookies == nil {
		return ErrCookiesNotConfigured
	}
	c.cookies.SetSigned(c.response, name, value, maxAge)
	return nil
}

func (c *requestContext) DeleteCookie(name string) error {
	if c.cookies == nil {
		return ErrCookiesNotConfigured
	}
	c.cookies.Delete(c.response, name)
	return nil
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	// mime/multipart does not always wrap the reader error.
	return strings.Contains(err.Error(), "http: request body too large")
}
