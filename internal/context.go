package internal

import (
	"context"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/core/user"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	ID       int64
	Name     string
	Email    string
	Role     user.Role
	IsActive bool
	TokenID  string
}

func UserFromContext(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(ContextUserKey).(*Principal)
	return p, ok && p != nil
}

func ContextWithUser(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextUserKey, p)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
