package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/user"
	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/cookie"
)

type stubResolver map[string]*auth.Principal

func (s stubResolver) Resolve(_ context.Context, token string) (*auth.Principal, error) {
	if token == "broken" {
		return nil, errors.New("store down")
	}
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, auth.ErrUnauthenticated
}

func newAuthApp(t *testing.T) *web.App {
	t.Helper()

	cookies, err := cookie.New(strings.Repeat("k", cookie.MinSecretLength))
	require.NoError(t, err)

	resolver := stubResolver{
		"editor-token": {ID: "u1", Name: "Ed", Role: user.RoleEditor},
		"viewer-token": {ID: "u2", Name: "Vi", Role: user.RoleViewer},
	}

	return web.New(
		web.WithCookies(cookies),
		web.WithHandlers(routes(func(r web.Router) {
			r.POST("/login", func(c web.Context) error {
				if err := c.SetCookieSigned(auth.SessionCookie, c.Query("token"), time.Hour); err != nil {
					return err
				}
				return c.NoContent(http.StatusNoContent)
			})
			r.Group(func(r web.Router) {
				r.Use(middlewares.RequireAuth(resolver))
				r.GET("/me", func(c web.Context) error {
					p, _ := auth.FromContext(c.Context())
					return c.String(http.StatusOK, p.Name)
				})
				r.Group(func(r web.Router) {
					r.Use(middlewares.RequireRole(user.RoleAdmin, user.RoleEditor))
					r.POST("/articles", func(c web.Context) error {
						return c.NoContent(http.StatusCreated)
					})
				})
			})
		})),
	)
}

func withBearer(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	app := newAuthApp(t)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(app, withBearer(httptest.NewRequest(http.MethodGet, "/me", nil), "unknown"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(app, withBearer(httptest.NewRequest(http.MethodGet, "/me", nil), "editor-token"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ed", w.Body.String())

	w = serve(app, withBearer(httptest.NewRequest(http.MethodGet, "/me", nil), "broken"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireAuth_SignedCookie(t *testing.T) {
	t.Parallel()

	app := newAuthApp(t)

	login := serve(app, httptest.NewRequest(http.MethodPost, "/login?token=viewer-token", nil))
	require.Equal(t, http.StatusNoContent, login.Code)
	cookies := login.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookies[0])
	w := serve(app, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Vi", w.Body.String())

	tampered := *cookies[0]
	tampered.Value = "x" + tampered.Value
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&tampered)
	w = serve(app, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	app := newAuthApp(t)

	w := serve(app, withBearer(httptest.NewRequest(http.MethodPost, "/articles", nil), "viewer-token"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(app, withBearer(httptest.NewRequest(http.MethodPost, "/articles", nil), "editor-token"))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequireRole_WithoutPrincipal(t *testing.T) {
	t.Parallel()

	app := web.New(web.WithHandlers(routes(func(r web.Router) {
		r.Group(func(r web.Router) {
			r.Use(middlewares.RequireRole(user.RoleAdmin))
			r.GET("/admin", func(c web.Context) error { return c.NoContent(http.StatusOK) })
		})
	})))

	w := serve(app, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
