package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/folio/pkg/cache"
)

const (
	DefaultMaxAttempts   = 5
	DefaultAttemptWindow = 15 * time.Minute
)

// ErrTooManyAttempts is returned by SignIn while an email is locked out.
var ErrTooManyAttempts = errors.New("auth: too many failed sign-in attempts")

// Throttle limits sign-in attempts per key. An attempt is counted before
// the password is checked, so parallel guesses cannot share one slot.
// Every attempt restarts the window; a successful sign-in resets the count.
type Throttle struct {
	attempts cache.Counter
	max      int64
	window   time.Duration
}

// NewThrottle creates a Throttle on c. Non-positive limits fall back to
// DefaultMaxAttempts and DefaultAttemptWindow.
func NewThrottle(c cache.Counter, maxAttempts int, window time.Duration) *Throttle {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultAttemptWindow
	}
	return &Throttle{attempts: c, max: int64(maxAttempts), window: window}
}

// Reserve counts an attempt for key and reports whether it is within the
// limit.
func (t *Throttle) Reserve(ctx context.Context, key string) (bool, error) {
	n, err := t.attempts.Incr(ctx, key, t.window)
	if err != nil {
		return false, err
	}
	return n <= t.max, nil
}

// Reset forgets the attempts for key.
func (t *Throttle) Reset(ctx context.Context, key string) error {
	return t.attempts.Delete(ctx, key)
}
