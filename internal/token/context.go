package token

import "context"

type ctxKey struct{}

// NewContext returns a context carrying the authenticated user id.
func NewContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// FromContext extracts the authenticated user id set by the auth middleware.
func FromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	return userID, ok && userID != ""
}
