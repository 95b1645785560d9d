package authgate

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the credential record backing authentication.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Username     string    `bun:"username,notnull,unique" json:"username"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`

	Roles []*Role `bun:"m2m:users_roles,join:User=Role" json:"roles,omitempty"`

	CreatedAt *time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at,omitempty"`
}

// RoleNames returns the names of the user's roles, never nil.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		if role == nil {
			continue
		}
		names = append(names, role.Name)
	}
	return names
}

// Role is a named grant that users hold through the users_roles join table.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`

	ID   uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Name string    `bun:"name,notnull,unique" json:"name"`
}

// UserRole is the join record between users and roles.
type UserRole struct {
	bun.BaseModel `bun:"table:users_roles,alias:usr_rol"`

	UserID uuid.UUID `bun:"user_id,pk,type:uuid" json:"user_id"`
	RoleID uuid.UUID `bun:"role_id,pk,type:uuid" json:"role_id"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Role *Role `bun:"rel:belongs-to,join:role_id=id" json:"role,omitempty"`
}
