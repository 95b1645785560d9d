package authgate

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity.
type Identity interface {
	Subject() string
	Email() string
	Roles() []string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (string, error)
	Authenticate(ctx context.Context, rawToken string) (*Principal, error)
	TokenService() TokenService
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Generate(identity Identity) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// IdentityProvider ensures we have a store to retrieve auth identities
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	ResolveSubject(ctx context.Context, subject string) (*Principal, error)
}

// CredentialStore is the persistence surface this package consumes. Lookups
// for a missing record fail with ErrIdentityNotFound.
type CredentialStore interface {
	FindBySubjectOrEmail(ctx context.Context, identifier string) (*User, error)
	FindBySubject(ctx context.Context, subject string) (*User, error)
	Insert(ctx context.Context, record *User) (*User, error)
}

// Config holds auth options. The signing secret and token TTL are required
// configuration; there are no hidden defaults for either.
type Config interface {
	GetSigningKey() string // base64 encoded secret
	GetTokenTTL() time.Duration
	GetIssuer() string
	GetAudience() []string
	GetContextKey() string
	GetAuthScheme() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
