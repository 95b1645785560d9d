package authgate

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

type RegisterUserMessage struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// RegisterUserHandler creates a credential record with its role grants.
type RegisterUserHandler struct {
	Store CredentialStore
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	hash, err := HashPassword(event.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	roleNames := event.Roles
	if len(roleNames) == 0 {
		roleNames = []string{RoleUser}
	}

	roles := make([]*Role, 0, len(roleNames))
	for _, name := range roleNames {
		if name == "" {
			continue
		}
		roles = append(roles, &Role{Name: name})
	}

	user := &User{
		ID:           uuid.New(),
		Username:     usernameFor(event.Username, event.Email),
		Email:        event.Email,
		PasswordHash: hash,
		Roles:        roles,
	}

	user, err = h.Store.Insert(ctx, user)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration failed")
	}

	return user, nil
}

func usernameFor(username, email string) string {
	if username != "" {
		return username
	}

	if strings.Contains(email, "@") {
		username = strings.Split(email, "@")[0]
	}

	return username
}
