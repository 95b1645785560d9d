package authgate

import (
	"context"

	"github.com/goliatone/go-router"
)

type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "authgate context value " + k.name
}

var principalCtxKey = &contextKey{"principal"}

// WithPrincipal attaches a principal to the context. The first principal
// wins: a context that already carries one is returned unchanged, and a nil
// principal is a no-op.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	if principal == nil {
		return ctx
	}

	if _, ok := PrincipalFromContext(ctx); ok {
		return ctx
	}

	return context.WithValue(ctx, principalCtxKey, principal)
}

// PrincipalFromContext retrieves the principal attached to the context, if
// any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalCtxKey).(*Principal)
	return principal, ok
}

// GetRouterPrincipal reads the principal stored in the router's request
// locals under the given key. An empty key falls back to "user".
func GetRouterPrincipal(ctx router.Context, key string) (*Principal, bool) {
	if key == "" {
		key = "user"
	}

	principal, ok := ctx.Locals(key).(*Principal)
	return principal, ok
}
