package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextSessionKey ctxKey = "session"

// SessionInfo is the request-scoped view of an authenticated session: who is
// signed in and the cached display name, injected by the auth middleware.
type SessionInfo struct {
	SessionID    string
	EmployeeID   int64
	EmployeeName string
}

func SessionFromContext(ctx context.Context) (*SessionInfo, bool) {
	if ctx == nil {
		return nil, false
	}
	if info, ok := ctx.Value(ContextSessionKey).(*SessionInfo); ok && info != nil {
		return info, true
	}
	return nil, false
}

func ContextWithSession(ctx context.Context, info *SessionInfo) context.Context {
	return context.WithValue(ctx, ContextSessionKey, info)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if
// duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
