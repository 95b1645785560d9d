// Package authgate is a stateless authentication and authorization layer for
// HTTP APIs. It verifies credentials against a credential store, issues
// signed time-bounded bearer tokens, validates those tokens on subsequent
// requests without server-side session state, resolves the caller into a
// Principal with its role set, and evaluates per-route role policies.
//
// There is no token revocation: a token stays valid until it expires. This is
// a documented property of the stateless design, not an oversight.
package authgate
