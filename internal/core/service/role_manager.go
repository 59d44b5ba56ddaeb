package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
	"github.com/peoplecore/identity-system/internal/core/result"
)

// msgNoUserRoles is the exact failure GetRoles returns for a user with no
// role links. The sign-in pipeline matches it to let role-less users in.
const msgNoUserRoles = "No roles found for the given user."

// RoleManager implements ports.RoleManager atop a RoleStore.
type RoleManager struct {
	store ports.RoleStore
	log   zerolog.Logger
}

func NewRoleManager(store ports.RoleStore, log zerolog.Logger) *RoleManager {
	return &RoleManager{store: store, log: log}
}

// GetAllRoles lists every role. An empty catalogue is a failure, not an
// empty success.
func (m *RoleManager) GetAllRoles(ctx context.Context) result.Result[[]domain.Role] {
	roles, err := m.store.GetRoles(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to list roles")
		if isRepositoryError(err) {
			return result.Failure[[]domain.Role]("An error occurred while finding the roles.")
		}
		return result.Failure[[]domain.Role]("An unexpected error occurred finding the roles.")
	}
	if len(roles) == 0 {
		return result.Failure[[]domain.Role]("No Roles")
	}
	return result.Success(roles)
}

// GetRoles returns the role names linked to a user; no links is a failure.
func (m *RoleManager) GetRoles(ctx context.Context, userID int64) result.Result[[]string] {
	roles, err := m.store.GetUserRoles(ctx, userID)
	if err != nil {
		m.log.Error().Err(err).Int64("user_id", userID).Msg("failed to get user roles")
		if isRepositoryError(err) {
			return result.Failure[[]string]("An error occurred while getting user roles.")
		}
		return result.Failure[[]string]("An unexpected error occurred.")
	}
	if len(roles) == 0 {
		return result.Failure[[]string](msgNoUserRoles)
	}
	return result.Success(roles)
}

func (m *RoleManager) GetRoleByID(ctx context.Context, roleID int64) result.Result[*domain.Role] {
	role, err := m.store.FindRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return result.Failure[*domain.Role]("Non existing role.")
		}
		m.log.Error().Err(err).Int64("role_id", roleID).Msg("failed to find role")
		return result.Failure[*domain.Role]("Unexpected error occurred while retrieving role.")
	}
	if role == nil {
		return result.Failure[*domain.Role]("Non existing role.")
	}
	return result.Success(role)
}

// CreateRole creates a role. Length validation happens at the transport
// boundary, not here; only name uniqueness is enforced.
func (m *RoleManager) CreateRole(ctx context.Context, name, description string) result.Result[bool] {
	created, err := m.store.CreateRole(ctx, name, description)
	if err != nil {
		if errors.Is(err, domain.ErrRoleExists) {
			return result.Failure[bool]("Role already exists.")
		}
		m.log.Error().Err(err).Str("name", name).Msg("failed to create role")
		if isRepositoryError(err) {
			return result.Failure[bool]("Failed to create role.")
		}
		return result.Failure[bool]("Unexpected error occurred while creating role.")
	}
	if !created {
		return result.Failure[bool]("Failed to create role.")
	}
	m.log.Info().Str("name", name).Msg("role created")
	return result.Success(true)
}

// UpdateRole verifies the role exists before attempting the write.
func (m *RoleManager) UpdateRole(ctx context.Context, roleID int64, name, description string) result.Result[bool] {
	role, err := m.store.FindRoleByID(ctx, roleID)
	if err != nil && !errors.Is(err, domain.ErrRoleNotFound) {
		m.log.Error().Err(err).Int64("role_id", roleID).Msg("failed to find role for update")
		if isRepositoryError(err) {
			return result.Failure[bool]("Failed to update role.")
		}
		return result.Failure[bool]("Unexpected error occurred while updating the role.")
	}
	if role == nil {
		return result.Failure[bool]("Non existing role.")
	}

	updated, err := m.store.UpdateRole(ctx, roleID, name, description)
	if err != nil {
		if errors.Is(err, domain.ErrRoleExists) {
			return result.Failure[bool]("Role already exists.")
		}
		m.log.Error().Err(err).Int64("role_id", roleID).Msg("failed to update role")
		if isRepositoryError(err) {
			return result.Failure[bool]("Failed to update role.")
		}
		return result.Failure[bool]("Unexpected error occurred while updating the role.")
	}
	if !updated {
		return result.Failure[bool]("Failed to update role.")
	}
	return result.Success(true)
}

// DeleteRole removes the role and all of its user links. Deleting an already
// deleted id fails; the operation is deliberately not idempotent.
func (m *RoleManager) DeleteRole(ctx context.Context, roleID int64) result.Result[bool] {
	deleted, err := m.store.DeleteRole(ctx, roleID)
	if err != nil {
		m.log.Error().Err(err).Int64("role_id", roleID).Msg("failed to delete role")
		if isRepositoryError(err) {
			return result.Failure[bool]("Failed to delete role.")
		}
		return result.Failure[bool]("Unexpected error occurred while deleting role.")
	}
	if !deleted {
		return result.Failure[bool]("Role not found.")
	}
	m.log.Info().Int64("role_id", roleID).Msg("role deleted")
	return result.Success(true)
}

// AddToRole links a user to a role. Re-linking an existing pair succeeds
// without side effects.
func (m *RoleManager) AddToRole(ctx context.Context, userID, roleID int64) result.Result[bool] {
	ok, err := m.store.AddUserToRole(ctx, userID, roleID)
	if err != nil {
		m.log.Error().Err(err).Int64("user_id", userID).Int64("role_id", roleID).Msg("failed to add user to role")
		if isRepositoryError(err) {
			return result.Failure[bool]("Error occurred while adding the user to the role.")
		}
		return result.Failure[bool]("An unexpected error occurred.")
	}
	if !ok {
		return result.Failure[bool]("Failed to add user to the role.")
	}
	return result.Success(true)
}
