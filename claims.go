package authgate

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the verified content of a bearer token.
type AuthClaims interface {
	Subject() string
	Roles() []string
	HasRole(role string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// AccessClaims is the concrete claims payload carried by issued tokens:
// registered claims plus the subject's role names.
type AccessClaims struct {
	jwt.RegisteredClaims
	RoleNames []string `json:"roles,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*AccessClaims)(nil)

// Subject returns the subject claim
func (c *AccessClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Roles returns the role names embedded in the token. Absence of roles is an
// empty slice, never nil.
func (c *AccessClaims) Roles() []string {
	if c.RoleNames == nil {
		return []string{}
	}
	return c.RoleNames
}

// HasRole checks if the token carries a specific role
func (c *AccessClaims) HasRole(role string) bool {
	for _, r := range c.RoleNames {
		if r == role {
			return true
		}
	}
	return false
}

// Expires returns the expiration time
func (c *AccessClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *AccessClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
