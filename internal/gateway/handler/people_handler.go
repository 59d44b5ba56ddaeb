// Package handler holds the gateway's people-management HTTP surface. Every
// handler runs its authorization policy before the outbound identity call.
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

const msgOwnPasswordOnly = "You are not admin and can change your own password only."

// PeopleHandler exposes the user-facing people management endpoints.
type PeopleHandler struct {
	identity client.IdentityClient
	log      zerolog.Logger
}

func NewPeopleHandler(identity client.IdentityClient, log zerolog.Logger) *PeopleHandler {
	return &PeopleHandler{identity: identity, log: log}
}

type signUpRequest struct {
	UserName    string `json:"userName" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=20"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	ID          int64  `json:"id" validate:"required,gt=0"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type updateUserRequest struct {
	ID          int64  `json:"id" validate:"required,gt=0"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=20"`
}

// SignUp registers a new person. Admin-scoped: only HR can onboard.
//
// @Summary      Register a new person
// @Tags         people
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      signUpRequest  true  "Person details"
// @Success      200   {object}  result.Result[domain.User]
// @Failure      403   {object}  result.Result[domain.User]
// @Router       /api/people/signup [post]
func (h *PeopleHandler) SignUp(c echo.Context) error {
	caller, _ := middleware.CallerFrom(c)
	if !authz.HasAnyRole(caller.Roles, domain.RoleHRAdmin) {
		return forbidden[domain.User](c)
	}

	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[domain.User](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[domain.User](c, err.Error())
	}

	res, err := h.identity.SignUp(c.Request().Context(), client.SignUpInput{
		UserName:    req.UserName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return respond(c, res)
}

// SignIn authenticates a person. Public: no bearer token required.
//
// @Summary      Sign in
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  result.Result[domain.AuthenticatedSession]
// @Failure      400   {object}  result.Result[domain.AuthenticatedSession]
// @Router       /api/people/signin [post]
func (h *PeopleHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[domain.AuthenticatedSession](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[domain.AuthenticatedSession](c, err.Error())
	}

	res, err := h.identity.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, res)
}

// MeInfo returns the caller's own record.
//
// @Summary      Get the caller's own profile
// @Tags         people
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  result.Result[domain.User]
// @Router       /api/people/me [get]
func (h *PeopleHandler) MeInfo(c echo.Context) error {
	caller, _ := middleware.CallerFrom(c)
	res, err := h.identity.UserByID(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}
	return respond(c, res)
}

// Info returns a person's record. Self-scoped with admin bypass.
//
// @Summary      Get a person's profile
// @Tags         people
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  result.Result[domain.User]
// @Failure      401  {object}  result.Result[domain.User]
// @Router       /api/people/{id} [get]
func (h *PeopleHandler) Info(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest[domain.User](c, "invalid user id")
	}

	caller, _ := middleware.CallerFrom(c)
	if !authz.CanAccessRecord(caller.ID, caller.Roles, id, domain.RoleHRAdmin) {
		return unauthorized[domain.User](c, "You can only view your own profile.")
	}

	res, err := h.identity.UserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, res)
}

// AllUsers lists every person. Manager-scoped.
//
// @Summary      List all people
// @Tags         people
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  result.Result[[]domain.User]
// @Failure      403  {object}  result.Result[[]domain.User]
// @Router       /api/people/all-users [get]
func (h *PeopleHandler) AllUsers(c echo.Context) error {
	caller, _ := middleware.CallerFrom(c)
	if !authz.HasAnyRole(caller.Roles, domain.RoleManager, domain.RoleHRAdmin) {
		return forbidden[[]domain.User](c)
	}

	res, err := h.identity.AllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, res)
}

// UpdateUser changes a person's contact fields. Self-scoped with admin bypass.
//
// @Summary      Update a person
// @Tags         people
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  result.Result[domain.User]
// @Failure      401   {object}  result.Result[domain.User]
// @Router       /api/people/update-user [put]
func (h *PeopleHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[domain.User](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[domain.User](c, err.Error())
	}

	caller, _ := middleware.CallerFrom(c)
	if !authz.CanAccessRecord(caller.ID, caller.Roles, req.ID, domain.RoleHRAdmin) {
		return unauthorized[domain.User](c, "You can only update your own profile.")
	}

	res, err := h.identity.UpdateUser(c.Request().Context(), client.UpdateUserInput{
		ID:          req.ID,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return respond(c, res)
}

// DeleteUser removes a person. Admin-scoped.
//
// @Summary      Delete a person
// @Tags         people
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  result.Result[bool]
// @Failure      403  {object}  result.Result[bool]
// @Router       /api/people/delete-user/{id} [delete]
func (h *PeopleHandler) DeleteUser(c echo.Context) error {
	caller, _ := middleware.CallerFrom(c)
	if !authz.HasAnyRole(caller.Roles, domain.RoleHRAdmin) {
		return forbidden[bool](c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest[bool](c, "invalid user id")
	}

	res, err := h.identity.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, res)
}

// ResetPassword changes a password. Self-scoped with admin bypass; a
// non-admin touching someone else's password gets 401 before any outbound
// call is made.
//
// @Summary      Reset a person's password
// @Tags         people
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resetPasswordRequest  true  "Target user and new password"
// @Success      200   {object}  result.Result[bool]
// @Failure      401   {object}  result.Result[bool]
// @Router       /api/people/reset-password [post]
func (h *PeopleHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[bool](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[bool](c, err.Error())
	}

	caller, _ := middleware.CallerFrom(c)
	if !authz.CanAccessRecord(caller.ID, caller.Roles, req.ID, domain.RoleHRAdmin) {
		return unauthorized[bool](c, msgOwnPasswordOnly)
	}

	res, err := h.identity.ResetPassword(c.Request().Context(), req.ID, req.NewPassword)
	if err != nil {
		return err
	}
	return respond(c, res)
}
