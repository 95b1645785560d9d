package authgate

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Credentials is the persistence surface for users and their roles.
type Credentials interface {
	repository.Repository[*User]
	CredentialStore

	SeedRoles(ctx context.Context, names ...string) error
}

type credentials struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Credentials                  = (*credentials)(nil)
	_ CredentialStore              = (*credentials)(nil)
	_ repository.Repository[*User] = (*credentials)(nil)
)

// NewCredentialsRepository creates the store. The join model has to be
// registered before any query touches the m2m relation.
func NewCredentialsRepository(db *bun.DB) Credentials {
	db.RegisterModel((*UserRole)(nil))

	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &credentials{
		Repository: repo,
		db:         db,
	}
}

// FindBySubjectOrEmail looks up a user by username or email, with roles
// loaded.
func (c *credentials) FindBySubjectOrEmail(ctx context.Context, identifier string) (*User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrNoEmptyString
	}

	record := &User{}
	err := c.db.NewSelect().
		Model(record).
		Relation("Roles").
		Where("?TableAlias.username = ?", identifier).
		WhereOr("?TableAlias.email = ?", identifier).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, mapLookupError(err, identifier)
	}

	return record, nil
}

// FindBySubject looks up a user by username, with roles loaded.
func (c *credentials) FindBySubject(ctx context.Context, subject string) (*User, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, ErrNoEmptyString
	}

	record := &User{}
	err := c.db.NewSelect().
		Model(record).
		Relation("Roles").
		Where("?TableAlias.username = ?", subject).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, mapLookupError(err, subject)
	}

	return record, nil
}

// Insert persists a user and its role grants in one transaction. Roles are
// matched by name, created when missing.
func (c *credentials) Insert(ctx context.Context, record *User) (*User, error) {
	if record == nil {
		return nil, goerrors.New("cannot insert nil user", goerrors.CategoryBadInput)
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	roles := record.Roles
	record.Roles = nil

	err := c.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "failed to insert user").
				WithMetadata(map[string]any{
					"username": record.Username,
				})
		}

		for _, role := range roles {
			if role == nil || role.Name == "" {
				continue
			}

			persisted, err := c.ensureRoleTx(ctx, tx, role.Name)
			if err != nil {
				return err
			}

			join := &UserRole{UserID: record.ID, RoleID: persisted.ID}
			if _, err := tx.NewInsert().Model(join).Exec(ctx); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to grant role").
					WithMetadata(map[string]any{
						"role": role.Name,
					})
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	record.Roles = roles

	return record, nil
}

// SeedRoles makes sure the named roles exist.
func (c *credentials) SeedRoles(ctx context.Context, names ...string) error {
	return c.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, name := range names {
			if name == "" {
				continue
			}
			if _, err := c.ensureRoleTx(ctx, tx, name); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *credentials) ensureRoleTx(ctx context.Context, tx bun.IDB, name string) (*Role, error) {
	role := &Role{}
	err := tx.NewSelect().
		Model(role).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)

	if err == nil {
		return role, nil
	}

	if !repository.IsRecordNotFound(err) && !goerrors.Is(err, sql.ErrNoRows) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("failed to look up role %q", name))
	}

	role = &Role{ID: uuid.New(), Name: name}
	if _, err := tx.NewInsert().Model(role).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("failed to create role %q", name))
	}

	return role, nil
}

func mapLookupError(err error, identifier string) error {
	if repository.IsRecordNotFound(err) || goerrors.Is(err, sql.ErrNoRows) {
		return ErrIdentityNotFound
	}

	return goerrors.Wrap(err, goerrors.CategoryInternal, "credential lookup failed").
		WithMetadata(map[string]any{
			"identifier": identifier,
		})
}
