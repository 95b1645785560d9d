package authgate

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// CredentialProvider verifies credentials and resolves subjects against a
// CredentialStore.
type CredentialProvider struct {
	store  CredentialStore
	logger Logger
}

// Verify interface compliance
var _ IdentityProvider = (*CredentialProvider)(nil)

// NewCredentialProvider creates an identity provider backed by a store.
func NewCredentialProvider(store CredentialStore) *CredentialProvider {
	return &CredentialProvider{
		store:  store,
		logger: defLogger{},
	}
}

// WithLogger sets the provider's logger.
func (p *CredentialProvider) WithLogger(logger Logger) *CredentialProvider {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// VerifyIdentity authenticates an identifier and password pair. The
// identifier may be a username or an email address.
func (p *CredentialProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := p.store.FindBySubjectOrEmail(ctx, identifier)
	if err != nil {
		if goerrors.IsNotFound(err) || goerrors.Is(err, ErrIdentityNotFound) {
			p.logger.Debug("login attempt for unknown identifier %q", identifier)
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "credential lookup failed")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		p.logger.Debug("password mismatch for subject %q", user.Username)
		return nil, err
	}

	return principalFromUser(user), nil
}

// ResolveSubject loads the principal for a token subject. A subject with no
// matching record fails with ErrIdentityNotFound; it never degrades to an
// anonymous principal.
func (p *CredentialProvider) ResolveSubject(ctx context.Context, subject string) (*Principal, error) {
	user, err := p.store.FindBySubject(ctx, subject)
	if err != nil {
		if goerrors.IsNotFound(err) || goerrors.Is(err, ErrIdentityNotFound) {
			p.logger.Warn("token subject %q has no credential record", subject)
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "subject lookup failed")
	}

	return principalFromUser(user), nil
}

func principalFromUser(user *User) *Principal {
	return NewPrincipal(user.Username, user.Email, user.RoleNames()...)
}
