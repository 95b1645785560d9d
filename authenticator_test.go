package authgate_test

import (
	"context"
	"testing"

	auth "github.com/escueladev/go-authgate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(t *testing.T) (*auth.Auther, *memCredentialStore) {
	t.Helper()

	store := newMemCredentialStore()
	provider := auth.NewCredentialProvider(store)

	auther, err := auth.NewAuthenticator(provider, newTestConfig())
	require.NoError(t, err)

	return auther, store
}

func TestAuthenticator_LoginRoundtrip(t *testing.T) {
	auther, store := newTestAuthenticator(t)
	registerTestUser(t, store, "alice", "alice@example.com", "pw123456", auth.RoleUser)

	t.Run("login then authenticate yields the same subject", func(t *testing.T) {
		token, err := auther.Login(context.Background(), "alice", "pw123456")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		principal, err := auther.Authenticate(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, "alice", principal.Subject())
		assert.True(t, principal.HasRole(auth.RoleUser))
		assert.False(t, principal.HasRole(auth.RoleAdmin))
	})

	t.Run("login by email", func(t *testing.T) {
		token, err := auther.Login(context.Background(), "alice@example.com", "pw123456")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := auther.Login(context.Background(), "alice", "wrong-password")
		assert.ErrorIs(t, err, auth.ErrBadCredential)
	})

	t.Run("unknown identifier is rejected", func(t *testing.T) {
		_, err := auther.Login(context.Background(), "nobody", "pw123456")
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})
}

func TestAuthenticator_Authenticate(t *testing.T) {
	auther, store := newTestAuthenticator(t)
	registerTestUser(t, store, "alice", "alice@example.com", "pw123456", auth.RoleUser)

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := auther.Authenticate(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	})

	t.Run("valid token for a deleted subject fails", func(t *testing.T) {
		// Mint a token for a subject the store does not know.
		identity := &MockIdentity{}
		identity.On("Subject").Return("ghost")
		identity.On("Roles").Return([]string{auth.RoleUser})

		token, err := auther.TokenService().Generate(identity)
		require.NoError(t, err)

		_, err = auther.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})
}

func TestNewAuthenticator(t *testing.T) {
	t.Run("requires provider", func(t *testing.T) {
		_, err := auth.NewAuthenticator(nil, newTestConfig())
		assert.Error(t, err)
	})

	t.Run("requires a decodable signing key", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.signingKey = "not base64!!!"

		_, err := auth.NewAuthenticator(auth.NewCredentialProvider(newMemCredentialStore()), cfg)
		assert.Error(t, err)
	})
}
