package authgate

import "sort"

// RoleName names a role. It is an alias so role constants interoperate with
// plain string APIs.
type RoleName = string

const (
	RoleAdmin RoleName = "ADMIN"
	RoleUser  RoleName = "USER"
)

// RoleSet is an unordered collection of role names with set semantics:
// duplicates collapse and membership is exact match.
type RoleSet map[RoleName]struct{}

// NewRoleSet builds a role set from names, skipping empty strings.
func NewRoleSet(names ...string) RoleSet {
	set := make(RoleSet, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Has reports membership
func (s RoleSet) Has(role RoleName) bool {
	_, ok := s[role]
	return ok
}

// Names returns the member roles sorted, never nil.
func (s RoleSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Principal is the authenticated caller attached to a request: a subject,
// its email, and its resolved role set. It is immutable after construction.
type Principal struct {
	subject string
	email   string
	roles   RoleSet
}

// Verify interface compliance
var _ Identity = (*Principal)(nil)

// NewPrincipal builds a principal from subject, email, and role names.
func NewPrincipal(subject, email string, roles ...string) *Principal {
	return &Principal{
		subject: subject,
		email:   email,
		roles:   NewRoleSet(roles...),
	}
}

// Subject returns the unique identifier of the caller
func (p *Principal) Subject() string {
	return p.subject
}

// Email returns the caller's email
func (p *Principal) Email() string {
	return p.email
}

// Roles returns the caller's role names, sorted, never nil.
func (p *Principal) Roles() []string {
	return p.roles.Names()
}

// HasRole reports whether the principal holds the given role.
func (p *Principal) HasRole(role RoleName) bool {
	return p.roles.Has(role)
}
