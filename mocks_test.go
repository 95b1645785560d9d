package authgate_test

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	auth "github.com/escueladev/go-authgate"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/mock"
)

// MockIdentity implements auth.Identity for testing
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) Subject() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Roles() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// MockLogger implements auth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// memCredentialStore is a map backed auth.CredentialStore for tests that
// need real lookup semantics instead of expectation plumbing.
type memCredentialStore struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemCredentialStore() *memCredentialStore {
	return &memCredentialStore{
		users: map[string]*auth.User{},
	}
}

func (s *memCredentialStore) FindBySubjectOrEmail(ctx context.Context, identifier string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}

	return nil, auth.ErrIdentityNotFound
}

func (s *memCredentialStore) FindBySubject(ctx context.Context, subject string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[subject]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}

	return user, nil
}

func (s *memCredentialStore) Insert(ctx context.Context, record *auth.User) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[record.Username]; ok {
		return nil, goerrors.New("duplicate username", goerrors.CategoryConflict)
	}

	s.users[record.Username] = record

	return record, nil
}

// testConfig implements auth.Config
type testConfig struct {
	signingKey string
	ttl        time.Duration
	issuer     string
	audience   []string
	contextKey string
	authScheme string
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey: base64.StdEncoding.EncodeToString([]byte("test-signing-key-material")),
		ttl:        time.Hour,
		contextKey: "user",
		authScheme: "Bearer",
	}
}

func (c *testConfig) GetSigningKey() string      { return c.signingKey }
func (c *testConfig) GetTokenTTL() time.Duration { return c.ttl }
func (c *testConfig) GetIssuer() string          { return c.issuer }
func (c *testConfig) GetAudience() []string      { return c.audience }
func (c *testConfig) GetContextKey() string      { return c.contextKey }
func (c *testConfig) GetAuthScheme() string      { return c.authScheme }
