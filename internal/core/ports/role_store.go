package ports

import (
	"context"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

// RoleStore is the persistence contract for roles and user-role links.
type RoleStore interface {
	GetRoles(ctx context.Context) ([]domain.Role, error)
	// GetUserRoles returns the role names linked to a user. An unknown user
	// yields an empty slice, not an error.
	GetUserRoles(ctx context.Context, userID int64) ([]string, error)
	FindRoleByID(ctx context.Context, roleID int64) (*domain.Role, error)
	// AddUserToRole links a user to a role. Linking an already-linked pair
	// succeeds without creating a duplicate.
	AddUserToRole(ctx context.Context, userID, roleID int64) (bool, error)
	CreateRole(ctx context.Context, name, description string) (bool, error)
	UpdateRole(ctx context.Context, roleID int64, name, description string) (bool, error)
	// DeleteRole removes the role and detaches it from every linked user.
	DeleteRole(ctx context.Context, roleID int64) (bool, error)
}
