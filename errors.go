package authgate

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrTokenMalformed covers structurally invalid tokens and signature
// mismatches. Both share one message so error specificity cannot be used as
// an oracle to distinguish tampering from corruption.
var ErrTokenMalformed = goerrors.New("invalid authentication token", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned for well-formed, correctly signed tokens whose
// validity window has elapsed.
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenUnsupported is returned for tokens carrying an algorithm or version
// this verifier does not support.
var ErrTokenUnsupported = goerrors.New("unsupported authentication token", goerrors.CategoryAuth).
	WithTextCode("TOKEN_UNSUPPORTED").
	WithCode(goerrors.CodeUnauthorized)

// ErrIdentityNotFound is returned when a subject has no matching credential
// record. Missing subjects are explicit failures, never silent anonymous.
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrBadCredential is returned when a presented secret does not match the
// stored hash.
var ErrBadCredential = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode("BAD_CREDENTIAL").
	WithCode(goerrors.CodeUnauthorized)

// ErrUnauthenticated is returned when a route requires a principal and the
// request context carries none.
var ErrUnauthenticated = goerrors.New("authentication required", goerrors.CategoryAuth).
	WithTextCode("UNAUTHENTICATED").
	WithCode(goerrors.CodeUnauthorized)

// ErrForbidden is returned when the attached principal lacks the role a
// route requires.
var ErrForbidden = goerrors.New("insufficient role", goerrors.CategoryAuthz).
	WithTextCode("FORBIDDEN").
	WithCode(goerrors.CodeForbidden)

// ErrNoEmptyString rejects empty required inputs, e.g. a blank password.
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryBadInput).
	WithTextCode("EMPTY_VALUE").
	WithCode(goerrors.CodeBadRequest)

// IsAuthRejection reports whether err belongs to the authentication or
// authorization taxonomy, as opposed to an unanticipated internal failure.
func IsAuthRejection(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.Category == goerrors.CategoryAuth || rich.Category == goerrors.CategoryAuthz
}
