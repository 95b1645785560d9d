package authgate

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Auther wires an identity provider and a token service into the two halves
// of stateless authentication: exchanging credentials for a token, and
// exchanging a token for a principal.
type Auther struct {
	provider IdentityProvider
	tokens   TokenService
	logger   Logger
}

// Verify interface compliance
var _ Authenticator = (*Auther)(nil)

// NewAuthenticator creates an authenticator from a provider and config. The
// signing key and TTL come from config and are fixed for the lifetime of the
// authenticator.
func NewAuthenticator(provider IdentityProvider, cfg Config) (*Auther, error) {
	if provider == nil {
		return nil, goerrors.New("authenticator requires an identity provider", goerrors.CategoryBadInput)
	}

	key, err := SigningKeyFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger := Logger(defLogger{})

	return &Auther{
		provider: provider,
		logger:   logger,
		tokens:   NewTokenService(key, cfg.GetTokenTTL(), cfg.GetIssuer(), cfg.GetAudience(), logger),
	}, nil
}

// WithLogger sets the authenticator's logger.
func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithTokenService replaces the token service.
func (a *Auther) WithTokenService(tokens TokenService) *Auther {
	if tokens != nil {
		a.tokens = tokens
	}
	return a
}

// TokenService exposes the underlying token service.
func (a *Auther) TokenService() TokenService {
	return a.tokens
}

// Login verifies an identifier and password pair and returns a signed token
// for the matching identity.
func (a *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := a.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		return "", err
	}

	token, err := a.tokens.Generate(identity)
	if err != nil {
		return "", err
	}

	a.logger.Info("issued token for subject %s", identity.Subject())

	return token, nil
}

// Authenticate validates a raw token and resolves its subject into a
// principal with the subject's current roles.
func (a *Auther) Authenticate(ctx context.Context, rawToken string) (*Principal, error) {
	claims, err := a.tokens.Validate(rawToken)
	if err != nil {
		return nil, err
	}

	return a.provider.ResolveSubject(ctx, claims.Subject())
}
