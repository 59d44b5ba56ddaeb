package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/api/metrics"
	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
	"github.com/peoplecore/identity-system/internal/core/result"
)

// AuditSink receives sign-in audit events off the request path.
type AuditSink interface {
	Enqueue(event domain.SignInEvent)
}

// UserHandler exposes the user lifecycle and sign-in endpoints.
type UserHandler struct {
	users         ports.UserManager
	roles         ports.RoleManager
	signIn        ports.SignInService
	limiter       ports.SignInLimiter
	audit         AuditSink
	defaultRoleID int64
	log           zerolog.Logger
}

func NewUserHandler(
	users ports.UserManager,
	roles ports.RoleManager,
	signIn ports.SignInService,
	limiter ports.SignInLimiter,
	audit AuditSink,
	defaultRoleID int64,
	log zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		users:         users,
		roles:         roles,
		signIn:        signIn,
		limiter:       limiter,
		audit:         audit,
		defaultRoleID: defaultRoleID,
		log:           log,
	}
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

type userResponse struct {
	ID          int64     `json:"id"`
	UserName    string    `json:"userName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	DateCreated time.Time `json:"dateCreated"`
	Roles       []string  `json:"roles,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		DateCreated: u.DateCreated,
		Roles:       u.Roles,
	}
}

// SignUp registers a new user and links the default role.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "User registration details"
// @Success      200   {object}  result.Result[userResponse]
// @Failure      400   {object}  result.Result[userResponse]
// @Failure      500   {object}  result.Result[userResponse]
// @Router       /api/users/signup [post]
func (h *UserHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[userResponse](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[userResponse](c, err.Error())
	}

	ctx := c.Request().Context()
	created := h.users.Create(ctx, &domain.User{
		UserName:    req.UserName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}, req.Password)

	if created.IsSuccess {
		metrics.UsersCreatedTotal.Inc()
		// Best-effort: a missing default role must not undo the signup.
		if h.defaultRoleID > 0 {
			if link := h.roles.AddToRole(ctx, created.Data.ID, h.defaultRoleID); !link.IsSuccess {
				h.log.Warn().Int64("user_id", created.Data.ID).Int64("role_id", h.defaultRoleID).
					Str("error", link.Error).Msg("default role assignment failed")
			} else if roles := h.roles.GetRoles(ctx, created.Data.ID); roles.IsSuccess {
				created.Data.Roles = roles.Data
			}
		}
	}

	return respond(c, result.Map(created, toUserResponse))
}

// SignIn authenticates a credential pair and issues a token.
//
// @Summary      Sign in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  result.Result[domain.AuthenticatedSession]
// @Failure      400   {object}  result.Result[domain.AuthenticatedSession]
// @Failure      429   {object}  result.Result[domain.AuthenticatedSession]
// @Router       /api/users/signin [post]
func (h *UserHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[domain.AuthenticatedSession](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[domain.AuthenticatedSession](c, err.Error())
	}

	ctx := c.Request().Context()
	if h.throttled(ctx, req.Email) {
		metrics.SignInsTotal.WithLabelValues("throttled").Inc()
		h.recordSignIn(c, req.Email, 0, domain.AuditSignInThrottled, "too many failed attempts")
		return c.JSON(http.StatusTooManyRequests,
			result.Failure[domain.AuthenticatedSession]("Too many failed sign-in attempts. Try again later."))
	}

	res, err := h.signIn.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		// Cooperative cancellation; the error handler turns it into a
		// request-aborted response.
		return err
	}

	if res.IsSuccess {
		metrics.SignInsTotal.WithLabelValues("succeeded").Inc()
		if h.limiter != nil {
			if cerr := h.limiter.Clear(ctx, req.Email); cerr != nil {
				h.log.Warn().Err(cerr).Msg("failed to clear sign-in limiter")
			}
		}
		h.recordSignIn(c, req.Email, res.Data.User.ID, domain.AuditSignInSucceeded, "")
		return respond(c, res)
	}

	metrics.SignInsTotal.WithLabelValues(signInOutcome(res.Error)).Inc()
	if h.limiter != nil {
		if ferr := h.limiter.RecordFailure(ctx, req.Email); ferr != nil {
			h.log.Warn().Err(ferr).Msg("failed to record sign-in failure")
		}
	}
	h.recordSignIn(c, req.Email, 0, domain.AuditSignInFailed, res.Error)
	return respond(c, res)
}

func (h *UserHandler) throttled(ctx context.Context, email string) bool {
	if h.limiter == nil {
		return false
	}
	locked, err := h.limiter.TooManyAttempts(ctx, email)
	if err != nil {
		// A broken limiter must not lock everyone out.
		h.log.Warn().Err(err).Msg("sign-in limiter unavailable")
		return false
	}
	return locked
}

func (h *UserHandler) recordSignIn(c echo.Context, email string, userID int64, outcome, reason string) {
	if h.audit == nil {
		return
	}
	h.audit.Enqueue(domain.SignInEvent{
		Email:     email,
		UserID:    userID,
		Outcome:   outcome,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
		RemoteIP:  c.RealIP(),
	})
}

func signInOutcome(msg string) string {
	switch msg {
	case "Invalid credentials":
		return "invalid_credentials"
	case "Token generation failed":
		return "token_failed"
	default:
		return "error"
	}
}

// ResetPassword re-hashes and persists a new password for an existing user.
//
// @Summary      Reset a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Target user and new password"
// @Success      200   {object}  result.Result[bool]
// @Failure      400   {object}  result.Result[bool]
// @Failure      404   {object}  result.Result[bool]
// @Router       /api/users/reset-password [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[bool](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[bool](c, err.Error())
	}

	res := h.users.ResetPassword(c.Request().Context(), req.ID, req.NewPassword)
	if res.IsSuccess {
		metrics.PasswordResetsTotal.Inc()
	}
	return respond(c, res)
}

// UpdateUser overwrites a user's mutable fields (email, phone).
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "User fields to update"
// @Success      200   {object}  result.Result[userResponse]
// @Failure      400   {object}  result.Result[userResponse]
// @Failure      404   {object}  result.Result[userResponse]
// @Router       /api/users/update-user [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest[userResponse](c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest[userResponse](c, err.Error())
	}

	res := h.users.Update(c.Request().Context(), &domain.User{
		ID:          req.ID,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	return respond(c, result.Map(res, toUserResponse))
}

// DeleteUser removes a user and its role links.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  result.Result[bool]
// @Failure      404  {object}  result.Result[bool]
// @Router       /api/users/delete-user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest[bool](c, "invalid user id")
	}
	return respond(c, h.users.Delete(c.Request().Context(), id))
}

// AllUsers lists every user with its role names.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {object}  result.Result[[]userResponse]
// @Failure      400  {object}  result.Result[[]userResponse]
// @Router       /api/users/all-users [get]
func (h *UserHandler) AllUsers(c echo.Context) error {
	res := h.users.GetAllUsers(c.Request().Context())
	return respond(c, result.Map(res, func(users []domain.User) []userResponse {
		out := make([]userResponse, 0, len(users))
		for i := range users {
			out = append(out, toUserResponse(&users[i]))
		}
		return out
	}))
}

// UserByID returns a single user record.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  result.Result[userResponse]
// @Failure      404  {object}  result.Result[userResponse]
// @Router       /api/users/{id} [get]
func (h *UserHandler) UserByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest[userResponse](c, "invalid user id")
	}
	res := h.users.FindByID(c.Request().Context(), id)
	return respond(c, result.Map(res, toUserResponse))
}
