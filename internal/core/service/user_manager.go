package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
	"github.com/peoplecore/identity-system/internal/core/result"
)

// UserManager implements ports.UserManager on top of a UserStore and a
// PasswordHasher. Store faults are translated into generic Result failures
// here; raw datastore errors never reach a caller.
type UserManager struct {
	store  ports.UserStore
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewUserManager(store ports.UserStore, hasher ports.PasswordHasher, log zerolog.Logger) *UserManager {
	return &UserManager{store: store, hasher: hasher, log: log}
}

// isRepositoryError reports whether err originated in the datastore layer,
// as opposed to an unclassified fault.
func isRepositoryError(err error) bool {
	var repoErr *domain.RepositoryError
	return errors.As(err, &repoErr)
}

// Create registers a new user. The email-uniqueness check runs before any
// write, and the password is hashed before it is handed to the store.
func (m *UserManager) Create(ctx context.Context, user *domain.User, password string) result.Result[*domain.User] {
	existing, err := m.store.GetUserByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		m.log.Error().Err(err).Str("email", user.Email).Msg("email uniqueness check failed")
		if isRepositoryError(err) {
			return result.Failure[*domain.User]("An error occurred while creating the user.")
		}
		return result.Failure[*domain.User]("An unexpected error occurred while creating the user.")
	}
	if existing != nil {
		return result.Failure[*domain.User]("Email already exists.")
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		m.log.Error().Err(err).Msg("password hashing failed")
		return result.Failure[*domain.User]("An unexpected error occurred while creating the user.")
	}

	created, err := m.store.CreateUser(ctx, user, hash)
	if err != nil {
		m.log.Error().Err(err).Str("email", user.Email).Msg("failed to create user")
		if errors.Is(err, domain.ErrEmailExists) {
			return result.Failure[*domain.User]("Email already exists.")
		}
		if isRepositoryError(err) {
			return result.Failure[*domain.User]("An error occurred while creating the user.")
		}
		return result.Failure[*domain.User]("An unexpected error occurred while creating the user.")
	}

	m.log.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("user created")
	return result.Success(created)
}

func (m *UserManager) FindByID(ctx context.Context, id int64) result.Result[*domain.User] {
	user, err := m.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return result.Failure[*domain.User]("User is not found.")
		}
		m.log.Error().Err(err).Int64("user_id", id).Msg("failed to find user")
		if isRepositoryError(err) {
			return result.Failure[*domain.User]("An error occurred while finding the user.")
		}
		return result.Failure[*domain.User]("An unexpected error occurred finding the user.")
	}
	return result.Success(user)
}

func (m *UserManager) GetAllUsers(ctx context.Context) result.Result[[]domain.User] {
	users, err := m.store.GetUsers(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to list users")
		if isRepositoryError(err) {
			return result.Failure[[]domain.User]("An error occurred while finding the users.")
		}
		return result.Failure[[]domain.User]("An unexpected error occurred finding the users.")
	}
	if users == nil {
		return result.Failure[[]domain.User]("No users")
	}
	return result.Success(users)
}

// Update overwrites the mutable fields (email, phone) of an existing record.
func (m *UserManager) Update(ctx context.Context, user *domain.User) result.Result[*domain.User] {
	updated, err := m.store.UpdateUser(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return result.Failure[*domain.User]("User is not found.")
		}
		m.log.Error().Err(err).Int64("user_id", user.ID).Msg("failed to update user")
		if isRepositoryError(err) {
			return result.Failure[*domain.User]("Error occurred while updating the user.")
		}
		return result.Failure[*domain.User]("An unexpected error occurred.")
	}
	return result.Success(updated)
}

// ValidateUser checks a credential pair. The two failure messages differ on
// purpose; the sign-in pipeline collapses both before anything leaves the
// service.
func (m *UserManager) ValidateUser(ctx context.Context, email, password string) result.Result[*domain.User] {
	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return result.Failure[*domain.User]("User not found")
		}
		m.log.Error().Err(err).Str("email", email).Msg("credential lookup failed")
		if isRepositoryError(err) {
			return result.Failure[*domain.User]("Wrong credentials.")
		}
		return result.Failure[*domain.User]("An unexpected error occurred.")
	}

	if !m.hasher.Verify(user.PasswordHash, password) {
		return result.Failure[*domain.User]("Wrong credentials")
	}
	return result.Success(user)
}

func (m *UserManager) ResetPassword(ctx context.Context, id int64, newPassword string) result.Result[bool] {
	hash, err := m.hasher.Hash(newPassword)
	if err != nil {
		m.log.Error().Err(err).Msg("password hashing failed")
		return result.Failure[bool]("An unexpected error occurred.")
	}

	ok, err := m.store.ResetPassword(ctx, id, hash)
	if err != nil {
		m.log.Error().Err(err).Int64("user_id", id).Msg("failed to reset password")
		if isRepositoryError(err) {
			return result.Failure[bool]("Error occurred while resetting the password.")
		}
		return result.Failure[bool]("An unexpected error occurred.")
	}
	if !ok {
		return result.Failure[bool]("User is not found.")
	}
	m.log.Info().Int64("user_id", id).Msg("password reset")
	return result.Success(true)
}

// Delete removes a user. The affected-row count is the success signal: a
// clean delete of a missing id is a failure, not a no-op.
func (m *UserManager) Delete(ctx context.Context, id int64) result.Result[bool] {
	ok, err := m.store.DeleteUser(ctx, id)
	if err != nil {
		m.log.Error().Err(err).Int64("user_id", id).Msg("failed to delete user")
		if isRepositoryError(err) {
			return result.Failure[bool]("Failed to delete the user.")
		}
		return result.Failure[bool]("Unexpected error occurred while deleting the user.")
	}
	if !ok {
		return result.Failure[bool]("User is not found.")
	}
	m.log.Info().Int64("user_id", id).Msg("user deleted")
	return result.Success(true)
}

// EmailExists reports whether an email is taken. Absence is Success(false),
// not a failure.
func (m *UserManager) EmailExists(ctx context.Context, email string) result.Result[bool] {
	_, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return result.Success(false)
		}
		m.log.Error().Err(err).Str("email", email).Msg("email check failed")
		if isRepositoryError(err) {
			return result.Failure[bool]("Error occurred while email check.")
		}
		return result.Failure[bool]("An unexpected error occurred.")
	}
	return result.Success(true)
}
