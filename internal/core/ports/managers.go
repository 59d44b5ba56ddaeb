package ports

import (
	"context"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/result"
)

// UserManager orchestrates the user lifecycle atop UserStore and
// PasswordHasher. Every operation reports expected failures through the
// Result envelope; the returned error is reserved for cooperative
// cancellation and is nil otherwise.
type UserManager interface {
	Create(ctx context.Context, user *domain.User, password string) result.Result[*domain.User]
	FindByID(ctx context.Context, id int64) result.Result[*domain.User]
	GetAllUsers(ctx context.Context) result.Result[[]domain.User]
	Update(ctx context.Context, user *domain.User) result.Result[*domain.User]
	ValidateUser(ctx context.Context, email, password string) result.Result[*domain.User]
	ResetPassword(ctx context.Context, id int64, newPassword string) result.Result[bool]
	Delete(ctx context.Context, id int64) result.Result[bool]
	EmailExists(ctx context.Context, email string) result.Result[bool]
}

// RoleManager orchestrates role lifecycle and user-role links atop RoleStore.
type RoleManager interface {
	GetAllRoles(ctx context.Context) result.Result[[]domain.Role]
	GetRoles(ctx context.Context, userID int64) result.Result[[]string]
	GetRoleByID(ctx context.Context, roleID int64) result.Result[*domain.Role]
	CreateRole(ctx context.Context, name, description string) result.Result[bool]
	UpdateRole(ctx context.Context, roleID int64, name, description string) result.Result[bool]
	DeleteRole(ctx context.Context, roleID int64) result.Result[bool]
	AddToRole(ctx context.Context, userID, roleID int64) result.Result[bool]
}

// SignInService is the outward-facing sign-in pipeline. The error return is
// non-nil only when the context was cancelled before any collaborator call;
// every business failure travels inside the Result.
type SignInService interface {
	SignIn(ctx context.Context, email, password string) (result.Result[domain.AuthenticatedSession], error)
}
