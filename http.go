package authgate

import (
	"context"

	"github.com/escueladev/go-authgate/middleware/tokenware"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RouteAuthenticator builds the per-route middleware chain: token
// authentication followed by role policy evaluation.
type RouteAuthenticator struct {
	auth         Authenticator
	provider     IdentityProvider
	cfg          Config
	policies     PolicyTable
	Logger       Logger
	ErrorHandler func(c router.Context, err error) error
}

// NewHTTPAuthenticator creates a route authenticator.
func NewHTTPAuthenticator(auther Authenticator, provider IdentityProvider, cfg Config) (*RouteAuthenticator, error) {
	if auther == nil {
		return nil, goerrors.New("route authenticator requires an authenticator", goerrors.CategoryBadInput)
	}

	if provider == nil {
		return nil, goerrors.New("route authenticator requires an identity provider", goerrors.CategoryBadInput)
	}

	a := &RouteAuthenticator{
		auth:     auther,
		provider: provider,
		cfg:      cfg,
		policies: PolicyTable{},
		Logger:   defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler

	return a, nil
}

// WithPolicies registers the route policy table.
func (a *RouteAuthenticator) WithPolicies(policies PolicyTable) *RouteAuthenticator {
	if policies != nil {
		a.policies = policies
	}
	return a
}

// ProtectedRoute returns middleware enforcing the given policy. Requests
// without a bearer credential reach the policy check unauthenticated and are
// rejected there; requests with an invalid token are rejected during
// validation.
func (a *RouteAuthenticator) ProtectedRoute(policy Policy) router.MiddlewareFunc {
	return tokenware.New(tokenware.Config{
		AuthScheme: a.cfg.GetAuthScheme(),
		ContextKey: a.cfg.GetContextKey(),
		Validate: func(tokenString string) (tokenware.Claims, error) {
			return a.auth.TokenService().Validate(tokenString)
		},
		Resolve: func(ctx context.Context, subject string) (tokenware.Principal, error) {
			return a.provider.ResolveSubject(ctx, subject)
		},
		ContextEnricher: func(ctx context.Context, principal tokenware.Principal) context.Context {
			if p, ok := principal.(*Principal); ok {
				return WithPrincipal(ctx, p)
			}
			return ctx
		},
		ErrorHandler: func(ctx router.Context, err error) error {
			return a.ErrorHandler(ctx, err)
		},
		SuccessHandler: func(ctx router.Context) error {
			principal, _ := GetRouterPrincipal(ctx, a.cfg.GetContextKey())
			if err := AuthorizePrincipal(principal, policy.Role); err != nil {
				return a.ErrorHandler(ctx, err)
			}
			return ctx.Next()
		},
	})
}

// RouteMiddleware looks up the registered policy for a route and returns the
// enforcing middleware. Unregistered routes require authentication only.
func (a *RouteAuthenticator) RouteMiddleware(route string) router.MiddlewareFunc {
	return a.ProtectedRoute(a.policies[route])
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	a.Logger.Info(
		"Middleware error handler: %s category=%s details=%s",
		richErr.Message,
		richErr.Category,
		print.MaybePrettyJSON(richErr.Metadata),
	)

	switch richErr.Category {
	case goerrors.CategoryAuth:
		return c.JSON(router.StatusUnauthorized, errorBody(richErr))
	case goerrors.CategoryAuthz:
		return c.JSON(router.StatusForbidden, errorBody(richErr))
	case goerrors.CategoryNotFound:
		// A valid token whose subject no longer exists reads as an
		// authentication failure to the caller, never a 404.
		return c.JSON(router.StatusUnauthorized, errorBody(ErrUnauthenticated))
	default:
		return c.JSON(router.StatusInternalServerError, map[string]string{
			"error": "An unexpected server error occurred",
		})
	}
}

func errorBody(err *goerrors.Error) map[string]string {
	return map[string]string{
		"error": err.Message,
		"code":  err.TextCode,
	}
}
