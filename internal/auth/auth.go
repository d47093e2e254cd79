// Package auth signs dashboard users in and resolves their sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/internal/store"
	"github.com/dmitrymomot/folio/internal/user"
	"github.com/dmitrymomot/folio/pkg/session"
)

const (
	// DefaultSessionTTL is used when the manager is created without a TTL.
	DefaultSessionTTL = 24 * time.Hour

	// SessionCookie names the signed cookie that carries the session token.
	SessionCookie = "folio_session"
)

var (
	ErrUnauthenticated = errors.New("auth: authentication required")
	ErrForbidden       = errors.New("auth: insufficient role")
)

// Principal is the signed-in user a request acts as.
type Principal struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

// Can reports whether the principal holds one of roles.
func (p Principal) Can(roles ...user.Role) bool {
	return slices.Contains(roles, p.Role)
}

func principalOf(u *user.User) *Principal {
	return &Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Users is the part of user.Service the manager depends on.
type Users interface {
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
	Get(ctx context.Context, id string) (*user.User, error)
}

// Manager issues, resolves and revokes session tokens.
type Manager struct {
	users    Users
	sessions session.Store
	throttle *Throttle
	ttl      time.Duration
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLogger sets the logger for sign-in events.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithThrottle locks out an email after repeated failed sign-ins.
func WithThrottle(t *Throttle) Option {
	return func(m *Manager) {
		m.throttle = t
	}
}

// NewManager creates a Manager.
func NewManager(users Users, sessions session.Store, opts ...Option) *Manager {
	m := &Manager{
		users:    users,
		sessions: sessions,
		ttl:      DefaultSessionTTL,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// SignIn checks credentials and opens a session.
// Wrong credentials yield user.ErrInvalidCredentials, and ErrTooManyAttempts
// once the throttle locks the email out.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Principal, *session.Session, error) {
	key := "signin:" + strings.ToLower(strings.TrimSpace(email))
	if m.throttle != nil {
		allowed, err := m.throttle.Reserve(ctx, key)
		switch {
		case err != nil:
			m.logger.WarnContext(ctx, "sign-in throttle unavailable", slog.String("error", err.Error()))
		case !allowed:
			m.logger.WarnContext(ctx, "sign-in locked out", slog.String("email", email))
			return nil, nil, ErrTooManyAttempts
		}
	}

	u, err := m.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	if m.throttle != nil {
		if err := m.throttle.Reset(ctx, key); err != nil {
			m.logger.WarnContext(ctx, "failed to reset sign-in throttle", slog.String("error", err.Error()))
		}
	}

	sess, err := session.New(u.ID, m.ttl)
	if err != nil {
		return nil, nil, err
	}
	if err := m.sessions.Create(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("auth: store session: %w", err)
	}

	m.logger.InfoContext(ctx, "user signed in",
		slog.String("user_id", u.ID),
		slog.String("session_id", sess.ID),
	)
	return principalOf(u), sess, nil
}

// SignOut revokes the session for token.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.sessions.Delete(ctx, token)
}

// SignOutAll revokes every session of userID, on every device.
func (m *Manager) SignOutAll(ctx context.Context, userID string) error {
	if err := m.sessions.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("auth: revoke sessions: %w", err)
	}
	m.logger.InfoContext(ctx, "user signed out everywhere", slog.String("user_id", userID))
	return nil
}

// Resolve returns the principal behind token.
// Unknown, expired or malformed tokens yield ErrUnauthenticated.
// The user is re-read on every call so role changes apply immediately.
func (m *Manager) Resolve(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	sess, err := m.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) ||
			errors.Is(err, session.ErrExpired) ||
			errors.Is(err, session.ErrInvalidToken) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	u, err := m.users.Get(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = m.sessions.Delete(ctx, token)
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return principalOf(u), nil
}

// PrincipalKey is the context key of the signed-in *Principal.
type PrincipalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey{}, p)
}

// FromContext returns the principal stored in ctx.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(PrincipalKey{}).(*Principal)
	return p, ok && p != nil
}

// PrincipalID returns the id of the principal in ctx, for log extractors.
func PrincipalID(ctx context.Context) (string, bool) {
	if p, ok := FromContext(ctx); ok {
		return p.ID, true
	}
	return "", false
}
