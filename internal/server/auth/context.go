package auth

import "context"

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity binds id to ctx for the lifetime of one request.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity bound by WithIdentity, or the
// anonymous identity when none was bound.
func IdentityFromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}
