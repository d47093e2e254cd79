package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/session"
)

// Authenticator is the part of auth.Manager the auth routes use.
type Authenticator interface {
	middlewares.Resolver
	SignIn(ctx context.Context, email, password string) (*auth.Principal, *session.Session, error)
	SignOut(ctx context.Context, token string) error
	SignOutAll(ctx context.Context, userID string) error
}

// AuthHandler serves sign-in, sign-out and the current principal.
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(a Authenticator) *AuthHandler {
	return &AuthHandler{auth: a}
}

// Routes implements web.Handler.
func (h *AuthHandler) Routes(r web.Router) {
	r.Route("/api/auth", func(r web.Router) {
		r.POST("/login", h.login)
		r.POST("/logout", h.logout)
		r.POST("/logout-all", h.logoutAll, middlewares.RequireAuth(h.auth))
		r.GET("/me", h.me, middlewares.RequireAuth(h.auth))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User      *auth.Principal `json:"user"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// login opens a session. The token is set as a signed cookie for the
// dashboard and returned in the body for API clients.
func (h *AuthHandler) login(c web.Context) error {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	if req.Email == "" || req.Password == "" {
		return web.ErrUnprocessable("email and password are required")
	}

	p, sess, err := h.auth.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	if err := c.SetCookieSigned(auth.SessionCookie, sess.Token, sess.TTL(time.Now())); err != nil {
		return err
	}

	return ok(c, http.StatusOK, loginResponse{User: p, Token: sess.Token, ExpiresAt: sess.ExpiresAt})
}

func (h *AuthHandler) logout(c web.Context) error {
	if token, found := middlewares.SessionToken.Extract(c); found {
		err := h.auth.SignOut(c.Context(), token)
		if err != nil && !errors.Is(err, session.ErrNotFound) && !errors.Is(err, session.ErrInvalidToken) {
			return err
		}
	}
	if err := c.DeleteCookie(auth.SessionCookie); err != nil {
		return err
	}
	return ok(c, http.StatusOK, nil)
}

// logoutAll revokes every session of the signed-in user, this one included.
func (h *AuthHandler) logoutAll(c web.Context) error {
	p, _ := auth.FromContext(c.Context())
	if err := h.auth.SignOutAll(c.Context(), p.ID); err != nil {
		return err
	}
	if err := c.DeleteCookie(auth.SessionCookie); err != nil {
		return err
	}
	return ok(c, http.StatusOK, nil)
}

func (h *AuthHandler) me(c web.Context) error {
	p, _ := auth.FromContext(c.Context())
	return ok(c, http.StatusOK, p)
}
