package authgate

import "context"

// Policy declares what a route requires of its caller. A zero Role means the
// route only requires authentication.
type Policy struct {
	Role RoleName
}

// PolicyTable maps route identifiers to their policies.
type PolicyTable map[string]Policy

// Evaluate checks the context's principal against the policy registered for
// the route. Routes without a registered policy only require authentication.
func (t PolicyTable) Evaluate(ctx context.Context, route string) error {
	principal, _ := PrincipalFromContext(ctx)
	return AuthorizePrincipal(principal, t[route].Role)
}

// AuthorizePrincipal decides whether a principal satisfies a role
// requirement. A missing principal is always an authentication failure, even
// when no role is required.
func AuthorizePrincipal(principal *Principal, required RoleName) error {
	if principal == nil {
		return ErrUnauthenticated
	}

	if required == "" {
		return nil
	}

	if !principal.HasRole(required) {
		return ErrForbidden
	}

	return nil
}

// Authorize evaluates a role requirement against the context's principal.
func Authorize(ctx context.Context, required RoleName) error {
	principal, _ := PrincipalFromContext(ctx)
	return AuthorizePrincipal(principal, required)
}
