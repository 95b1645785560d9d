package authgate

import (
	"encoding/base64"

	goerrors "github.com/goliatone/go-errors"
)

// SigningKey is the symmetric key material shared by the token issuer and
// verifier. It is constructed once at startup from configuration and is
// read-only thereafter; both sides hold the same value instead of reaching
// into process-wide state.
type SigningKey struct {
	material []byte
}

// NewSigningKey decodes a base64 encoded secret into key material.
func NewSigningKey(encodedSecret string) (SigningKey, error) {
	if encodedSecret == "" {
		return SigningKey{}, goerrors.New("signing secret must not be empty", goerrors.CategoryBadInput).
			WithTextCode("EMPTY_SIGNING_SECRET")
	}

	material, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil {
		return SigningKey{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "signing secret is not valid base64")
	}

	return SigningKey{material: material}, nil
}

// SigningKeyFromConfig builds the key from the configured secret.
func SigningKeyFromConfig(cfg Config) (SigningKey, error) {
	return NewSigningKey(cfg.GetSigningKey())
}

func (k SigningKey) IsZero() bool {
	return len(k.material) == 0
}

func (k SigningKey) bytes() []byte {
	return k.material
}
