package auth

import "context"

// identityCtxKey is an unexported type used as the context key for Identity.
type identityCtxKey struct{}

// Identity represents the authenticated user making a request. It exists only
// for the duration of one request and is never persisted.
type Identity struct {
	ID    uint64
	Email string
}

// WithIdentity returns a new context with the given Identity attached.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromContext retrieves the Identity from the context.
// Returns the zero value and false if no identity is set. Handlers must treat
// false as a denial: a route reachable without the RequireAuth middleware is a
// wiring bug, never an anonymous pass-through.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}
