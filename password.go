package authgate

import (
	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of a plaintext secret.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	return string(bytes), nil
}

// ComparePasswordAndHash checks a plaintext secret against a stored bcrypt
// hash. A mismatch is ErrBadCredential.
func ComparePasswordAndHash(password, hash string) error {
	if password == "" || hash == "" {
		return ErrNoEmptyString
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if goerrors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrBadCredential
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to compare password")
	}

	return nil
}
