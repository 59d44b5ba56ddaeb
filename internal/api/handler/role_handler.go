package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/api/metrics"
	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
	"github.com/peoplecore/identity-system/internal/core/result"
)

// RoleHandler exposes role catalog management and role assignment.
type RoleHandler struct {
	roles ports.RoleManager
	log   zerolog.Logger
}

func NewRoleHandler(roles ports.RoleManager, log zerolog.Logger) *RoleHandler {
	return &RoleHandler{roles: roles, log: log}
}

type createRoleRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"omitempty,max=200"`
}

type updateRoleRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"omitempty,max=200"`
}

type assignRoleRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
	RoleID int64 `json:"roleId" validate:"required,gt=0"`
}

type roleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DateCreated time.Time `json:"dateCreated"`
}

func toRoleResponse(r *domain.Role) roleResponse {
	return roleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		DateCreated: r.DateCreated,
	}
}

// AllRoles lists the role catalog.
//
// @Summary      List all roles
// @Tags         roles
// @Produce      json
// @Success      200  {object}  result.Result[[]roleResponse]
// @Failure      400  {object}  result.Result[[]roleResponse]
// @Router       /api/roles/all-roles [get]
func (h *RoleHandler) AllRoles(c echo.Context) error {
	res := h.roles.GetAllRoles(c.Request().Context())
	return respond(c, result.Map(res, func(roles []domain.Role) []roleResponse {
		out := make([]roleResponse, 0, len(roles))
		for i := range roles {
			out = append(out, toRoleResponse(&roles[i]))
		}
		return out
	}))
}

// UserRoles lists the role names attached to a user.
//
// @Summary      List a user's roles
// @Tags         roles
// @Produce      json
// @Param        userId  path      int  true  "User id"
// @Success      200     {object}  result.Result[[]string]
// @Failure      400     {object}  result.Result[[]string]
// @Router       /api/roles/user-roles/{userId} [get]
func (h *RoleHandler) UserRoles(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return badRequest[[]string](c, "invalid user id")
	}
	return respond(c, h.roles.GetRoles(c.Request().Context(), userID))
}

// RoleByID returns a single role.
//
// @Summary      Get a role by id
// @Tags         roles
// @Produce      json
// @Param        id   path      int  true  "Role id"
// @Success      200  {object}  result.Result[roleResponse]
// @Failure      404  {object}  result.Result[roleResponse]
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) RoleByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest[roleResponse](c, "invalid role id")
	}
	res := h.roles.GetRoleByID(c.Request().Context(), id)
	return respond(c, result.Map(res, toRoleResponse))
}

// CreateRole adds a role to the catalog.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        body  body      createRoleRequest  true  "Role details"
// @Success      200   {object}  result.Result[bool]
// @Failure      400   {object}  result.Result[bool]
// @Router       /api/roles [post]
func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[bool](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[bool](c, err.Error())
	}

	res := h.roles.CreateRole(c.Request().Context(), req.Name, req.Description)
	if res.IsSuccess {
		metrics.RoleMutationsTotal.WithLabelValues("create").Inc()
	}
	return respond(c, res)
}

// UpdateRole renames a role or changes its description.
//
// @Summary      Update a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Role id"
// @Param        body  body      updateRoleRequest  true  "Role fields to update"
// @Success      200   {object}  result.Result[bool]
// @Failure      404   {object}  result.Result[bool]
// @Router       /api/roles/{id} [put]
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest[bool](c, "invalid role id")
	}
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[bool](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[bool](c, err.Error())
	}

	res := h.roles.UpdateRole(c.Request().Context(), id, req.Name, req.Description)
	if res.IsSuccess {
		metrics.RoleMutationsTotal.WithLabelValues("update").Inc()
	}
	return respond(c, res)
}

// DeleteRole removes a role and detaches it from every user.
//
// @Summary      Delete a role
// @Tags         roles
// @Produce      json
// @Param        id   path      int  true  "Role id"
// @Success      200  {object}  result.Result[bool]
// @Failure      404  {object}  result.Result[bool]
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest[bool](c, "invalid role id")
	}
	res := h.roles.DeleteRole(c.Request().Context(), id)
	if res.IsSuccess {
		metrics.RoleMutationsTotal.WithLabelValues("delete").Inc()
	}
	return respond(c, res)
}

// AssignRole links a user to a role. Re-assigning is a no-op success.
//
// @Summary      Assign a role to a user
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        body  body      assignRoleRequest  true  "User and role ids"
// @Success      200   {object}  result.Result[bool]
// @Failure      400   {object}  result.Result[bool]
// @Router       /api/roles/assign [post]
func (h *RoleHandler) AssignRole(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[bool](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[bool](c, err.Error())
	}

	res := h.roles.AddToRole(c.Request().Context(), req.UserID, req.RoleID)
	if res.IsSuccess {
		metrics.RoleAssignmentsTotal.Inc()
	}
	return respond(c, res)
}
