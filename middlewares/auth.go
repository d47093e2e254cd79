package middlewares

import (
	"context"
	"errors"

	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/user"
	"github.com/dmitrymomot/folio/internal/web"
)

// Resolver maps a session token to a principal.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*auth.Principal, error)
}

// SessionToken reads the session token from the signed cookie, then from
// an "Authorization: Bearer" header.
var SessionToken = web.NewExtractor(
	web.FromCookieSigned(auth.SessionCookie),
	web.FromBearerToken(),
)

// RequireAuth rejects requests without a valid session with 401 and stores
// the principal in the context otherwise.
func RequireAuth(r Resolver) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			token, _ := SessionToken.Extract(c)
			p, err := r.Resolve(c.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthenticated) {
					return web.ErrUnauthorized("authentication required", web.WithError(err))
				}
				return err
			}

			c.Set(auth.PrincipalKey{}, p)
			return next(c)
		}
	}
}

// RequireRole rejects principals that hold none of roles with 403.
// It must run after RequireAuth.
func RequireRole(roles ...user.Role) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			p, ok := auth.FromContext(c.Context())
			if !ok {
				return web.ErrUnauthorized("authentication required", web.WithError(auth.ErrUnauthenticated))
			}
			if !p.Can(roles...) {
				return web.ErrForbidden("insufficient permissions", web.WithError(auth.ErrForbidden))
			}
			return next(c)
		}
	}
}
