package tokenware

import (
	"context"
	"strings"

	"github.com/goliatone/go-router"
)

// Claims is what the middleware needs from a validated token. It mirrors the
// claims interface of the auth package without importing it.
type Claims interface {
	Subject() string
	Roles() []string
	HasRole(role string) bool
}

// Principal is the resolved caller attached to the request.
type Principal interface {
	Subject() string
	Roles() []string
	HasRole(role string) bool
}

type Config struct {
	// Filter skips the middleware entirely when it returns true.
	Filter func(router.Context) bool

	// Validate verifies a raw token and returns its claims. Required.
	Validate func(tokenString string) (Claims, error)

	// Resolve loads the principal for a validated subject. Required.
	Resolve func(ctx context.Context, subject string) (Principal, error)

	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler

	// ContextKey is the locals key the principal is stored under.
	ContextKey string

	// AuthScheme is the expected Authorization scheme prefix.
	AuthScheme string

	// ContextEnricher propagates the principal to the standard Go context.
	ContextEnricher func(c context.Context, principal Principal) context.Context
}

// New builds the authentication middleware. Requests without a credential in
// the expected scheme pass through unauthenticated; requests that present a
// token have it validated and the subject resolved, and any failure there is
// a rejection.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			raw, ok := TokenFromHeader(ctx.GetString(router.HeaderAuthorization, ""), cfg.AuthScheme)
			if !ok {
				return cfg.SuccessHandler(ctx)
			}

			claims, err := cfg.Validate(raw)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			principal, err := cfg.Resolve(ctx.Context(), claims.Subject())
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, principal)

			if cfg.ContextEnricher != nil {
				stdCtx := ctx.Context()
				ctx.SetContext(cfg.ContextEnricher(stdCtx, principal))
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

// TokenFromHeader extracts the credential from an Authorization header value.
// The scheme match is case sensitive and requires exactly one space between
// scheme and credential. Anything else, including an empty credential, means
// no token was presented.
func TokenFromHeader(header, authScheme string) (string, bool) {
	if header == "" || authScheme == "" {
		return "", false
	}

	prefix := authScheme + " "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := header[len(prefix):]
	if token == "" {
		return "", false
	}

	return token, true
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validate == nil {
		panic("AUTH: token middleware configuration: Validate is required.")
	}

	if cfg.Resolve == nil {
		panic("AUTH: token middleware configuration: Resolve is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c router.Context, err error) error {
			return c.Status(router.StatusUnauthorized).SendString("Invalid or expired token")
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}
