package session

import "context"

type ctxKey struct{}

// WithPrincipal attaches the authenticated principal to the request
// context. The request-handling boundary calls this after token
// verification; everything below reads it back with FromContext instead
// of downcasting some ambient authentication object.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the principal attached to ctx, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok && p.Email != ""
}
