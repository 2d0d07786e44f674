package repository

import (
	"context"

	"famick/internal/model"
)

// UserRepository defines data access for tenants and users.
type UserRepository interface {
	// CreateTenantWithUser inserts a tenant (household) and its first user in
	// one transaction, so a failed user insert leaves no dangling tenant. The
	// user's TenantID is filled from the new tenant row. Returns ErrDuplicate
	// when the email is already registered.
	CreateTenantWithUser(ctx context.Context, householdName string, user *model.User) (*model.User, error)

	// FindByEmail returns the user with the given email, or sql.ErrNoRows.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns the user with the given ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.User, error)
}
