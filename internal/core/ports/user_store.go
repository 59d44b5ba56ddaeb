package ports

import (
	"context"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

// UserStore is the persistence contract for identity records.
//
// Absence is reported as domain.ErrUserNotFound; any datastore fault is
// wrapped in a *domain.RepositoryError. Stores never return partially
// written records.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetUsers returns every user joined with its role names.
	GetUsers(ctx context.Context) ([]domain.User, error)
	// UpdateUser overwrites the mutable fields (email, phone) and returns
	// the updated record.
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	// DeleteUser reports whether a record was actually removed.
	DeleteUser(ctx context.Context, id int64) (bool, error)
	// ResetPassword reports whether the hash was applied to an existing row.
	ResetPassword(ctx context.Context, id int64, passwordHash string) (bool, error)
}
