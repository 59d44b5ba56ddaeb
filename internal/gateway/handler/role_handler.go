package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/gateway/authz"
	"github.com/peoplecore/identity-system/internal/gateway/client"
	"github.com/peoplecore/identity-system/internal/gateway/middleware"
)

// RoleHandler exposes the gateway's role administration endpoints.
type RoleHandler struct {
	identity client.IdentityClient
	log      zerolog.Logger
}

func NewRoleHandler(identity client.IdentityClient, log zerolog.Logger) *RoleHandler {
	return &RoleHandler{identity: identity, log: log}
}

type roleRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"omitempty,max=200"`
}

type assignRoleRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
	RoleID int64 `json:"roleId" validate:"required,gt=0"`
}

// AllRoles lists the role catalog. Manager-scoped.
//
// @Summary      List all roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  result.Result[[]domain.Role]
// @Failure      403  {object}  result.Result[[]domain.Role]
// @Router       /api/people/roles [get]
func (h *RoleHandler) AllRoles(c echo.Context) error {
	caller, _ := middleware.CallerFrom(c)
	if !authz.HasAnyRole(caller.Roles, domain.RoleManager, domain.RoleHRAdmin) {
		return forbidden[[]domain.Role](c)
	}

	res, err := h.identity.AllRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, res)
}

// UserRoles lists a person's role names. Self-scoped with manager bypass.
//
// @Summary      List a person's roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "User id"
// @Success      200     {object}  result.Result[[]string]
// @Failure      401     {object}  result.Result[[]string]
// @Router       /api/people/user-roles/{userId} [get]
func (h *RoleHandler) UserRoles(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return badRequest[[]string](c, "invalid user id")
	}

	caller, _ := middleware.CallerFrom(c)
	if !authz.CanAccessRecord(caller.ID, caller.Roles, userID, domain.RoleManager, domain.RoleHRAdmin) {
		return unauthorized[[]string](c, "You can only view your own roles.")
	}

	res, err := h.identity.UserRoles(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, res)
}

// CreateRole adds a role. Manager-scoped.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleRequest  true  "Role details"
// @Success      200   {object}  result.Result[bool]
// @Failure      403   {object}  result.Result[bool]
// @Router       /api/people/roles [post]
func (h *RoleHandler) CreateRole(c echo.Context) error {
	caller, _ := middleware.CallerFrom(c)
	if !authz.HasAnyRole(caller.Roles, domain.RoleManager, domain.RoleHRAdmin) {
		return forbidden[bool](c)
	}

	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[bool](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[bool](c, err.Error())
	}

	res, err := h.identity.CreateRole(c.Request().Context(), client.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return respond(c, res)
}

// UpdateRole renames a role. Manager-scoped.
//
// @Summary      Update a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Role id"
// @Param        body  body      roleRequest  true  "Role fields"
// @Success      200   {object}  result.Result[bool]
// @Failure      403   {object}  result.Result[bool]
// @Router       /api/people/roles/{id} [put]
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	caller, _ := middleware.CallerFrom(c)
	if !authz.HasAnyRole(caller.Roles, domain.RoleManager, domain.RoleHRAdmin) {
		return forbidden[bool](c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest[bool](c, "invalid role id")
	}

	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[bool](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[bool](c, err.Error())
	}

	res, err := h.identity.UpdateRole(c.Request().Context(), id, client.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return respond(c, res)
}

// DeleteRole removes a role. Admin-scoped: deleting detaches every holder.
//
// @Summary      Delete a role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Role id"
// @Success      200  {object}  result.Result[bool]
// @Failure      403  {object}  result.Result[bool]
// @Router       /api/people/roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	caller, _ := middleware.CallerFrom(c)
	if !authz.HasAnyRole(caller.Roles, domain.RoleHRAdmin) {
		return forbidden[bool](c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest[bool](c, "invalid role id")
	}

	res, err := h.identity.DeleteRole(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, res)
}

// AssignRole links a person to a role. Admin-scoped.
//
// @Summary      Assign a role to a person
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignRoleRequest  true  "User and role ids"
// @Success      200   {object}  result.Result[bool]
// @Failure      403   {object}  result.Result[bool]
// @Router       /api/people/assign-role [post]
func (h *RoleHandler) AssignRole(c echo.Context) error {
	caller, _ := middleware.CallerFrom(c)
	if !authz.HasAnyRole(caller.Roles, domain.RoleHRAdmin) {
		return forbidden[bool](c)
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[bool](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[bool](c, err.Error())
	}

	res, err := h.identity.AssignRole(c.Request().Context(), req.UserID, req.RoleID)
	if err != nil {
		return err
	}
	return respond(c, res)
}
