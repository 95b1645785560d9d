package authgate_test

import (
	"errors"
	"testing"

	auth "github.com/escueladev/go-authgate"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	t.Run("token errors carry unauthorized code", func(t *testing.T) {
		for _, err := range []*goerrors.Error{
			auth.ErrTokenMalformed,
			auth.ErrTokenExpired,
			auth.ErrTokenUnsupported,
			auth.ErrBadCredential,
			auth.ErrUnauthenticated,
		} {
			assert.Equal(t, goerrors.CodeUnauthorized, err.Code)
			assert.Equal(t, goerrors.CategoryAuth, err.Category)
		}
	})

	t.Run("forbidden carries authz category", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuthz, auth.ErrForbidden.Category)
		assert.Equal(t, goerrors.CodeForbidden, auth.ErrForbidden.Code)
	})

	t.Run("identity not found is a not found error", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryNotFound, auth.ErrIdentityNotFound.Category)
	})

	t.Run("malformed and expired are distinct", func(t *testing.T) {
		assert.NotErrorIs(t, auth.ErrTokenMalformed, auth.ErrTokenExpired)
		assert.NotEqual(t, auth.ErrTokenMalformed.TextCode, auth.ErrTokenExpired.TextCode)
	})
}

func TestIsAuthRejection(t *testing.T) {
	assert.True(t, auth.IsAuthRejection(auth.ErrBadCredential))
	assert.True(t, auth.IsAuthRejection(auth.ErrForbidden))
	assert.True(t, auth.IsAuthRejection(auth.ErrTokenExpired))

	assert.False(t, auth.IsAuthRejection(auth.ErrIdentityNotFound))
	assert.False(t, auth.IsAuthRejection(errors.New("boom")))
	assert.False(t, auth.IsAuthRejection(nil))
}
