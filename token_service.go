package authgate

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenServiceImpl issues and verifies HS256 signed bearer tokens.
type TokenServiceImpl struct {
	key      SigningKey
	ttl      time.Duration
	issuer   string
	audience jwt.ClaimStrings
	logger   Logger
	nowFunc  func() time.Time
}

// NewTokenService creates a token service bound to a signing key and a fixed
// validity window.
func NewTokenService(key SigningKey, ttl time.Duration, issuer string, audience []string, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}

	return &TokenServiceImpl{
		key:      key,
		ttl:      ttl,
		issuer:   issuer,
		audience: jwt.ClaimStrings(audience),
		logger:   logger,
		nowFunc:  time.Now,
	}
}

// WithTimeFunc overrides the clock used for issuing and verifying tokens.
func (ts *TokenServiceImpl) WithTimeFunc(now func() time.Time) *TokenServiceImpl {
	if now != nil {
		ts.nowFunc = now
	}
	return ts
}

// Generate issues a signed token for the given identity. Expiry is computed
// from the configured TTL at issue time.
func (ts *TokenServiceImpl) Generate(identity Identity) (string, error) {
	if identity == nil {
		return "", goerrors.New("cannot generate token for nil identity", goerrors.CategoryBadInput)
	}

	if ts.key.IsZero() {
		return "", goerrors.New("token service has no signing key", goerrors.CategoryInternal)
	}

	if ts.ttl <= 0 {
		return "", goerrors.New("token TTL must be positive", goerrors.CategoryInternal)
	}

	now := ts.nowFunc()

	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject(),
			Issuer:    ts.issuer,
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		RoleNames: identity.Roles(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.key.bytes())
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}

	ts.logger.Debug("issued token for subject %s, expires %s", identity.Subject(), claims.Expires().Format(time.RFC3339))

	return signed, nil
}

// Validate parses and verifies a raw token string. The signature is checked
// before any claims, so a tampered token is always reported as malformed even
// when its expiry has also passed.
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithTimeFunc(ts.nowFunc),
	}

	if ts.issuer != "" {
		opts = append(opts, jwt.WithIssuer(ts.issuer))
	}

	if len(ts.audience) > 0 {
		opts = append(opts, jwt.WithAudience(ts.audience[0]))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenUnsupported
		}
		return ts.key.bytes(), nil
	}, opts...)

	if err != nil {
		return nil, ts.rejectionFor(err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// rejectionFor maps parser failures onto the package taxonomy. Signature
// failures collapse into the malformed bucket on purpose.
func (ts *TokenServiceImpl) rejectionFor(err error) error {
	switch {
	case goerrors.Is(err, ErrTokenUnsupported):
		return ErrTokenUnsupported
	case goerrors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case goerrors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenMalformed
	case goerrors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		ts.logger.Debug("token rejected: %v", err)
		return ErrTokenMalformed
	}
}
