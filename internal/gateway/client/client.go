// Package client is the gateway's HTTP client for the identity service. It
// speaks the identity API's Result envelope and never surfaces transport
// detail to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/result"
)

const msgIdentityUnreachable = "An unexpected error occurred while contacting the identity service."

// SignUpInput carries a registration forwarded to the identity service.
type SignUpInput struct {
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// UpdateUserInput carries a profile update forwarded to the identity service.
type UpdateUserInput struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// RoleInput carries a role create or update.
type RoleInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// IdentityClient is the gateway's view of the identity service. Every method
// returns the identity service's Result envelope; the error return is reserved
// for cooperative cancellation of the inbound request.
type IdentityClient interface {
	SignUp(ctx context.Context, in SignUpInput) (result.Result[domain.User], error)
	SignIn(ctx context.Context, email, password string) (result.Result[domain.AuthenticatedSession], error)
	ResetPassword(ctx context.Context, userID int64, newPassword string) (result.Result[bool], error)
	UpdateUser(ctx context.Context, in UpdateUserInput) (result.Result[domain.User], error)
	DeleteUser(ctx context.Context, userID int64) (result.Result[bool], error)
	AllUsers(ctx context.Context) (result.Result[[]domain.User], error)
	UserByID(ctx context.Context, userID int64) (result.Result[domain.User], error)
	UserRoles(ctx context.Context, userID int64) (result.Result[[]string], error)
	AllRoles(ctx context.Context) (result.Result[[]domain.Role], error)
	CreateRole(ctx context.Context, in RoleInput) (result.Result[bool], error)
	UpdateRole(ctx context.Context, roleID int64, in RoleInput) (result.Result[bool], error)
	DeleteRole(ctx context.Context, roleID int64) (result.Result[bool], error)
	AssignRole(ctx context.Context, userID, roleID int64) (result.Result[bool], error)
}

// HTTPClient implements IdentityClient over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) SignUp(ctx context.Context, in SignUpInput) (result.Result[domain.User], error) {
	return call[domain.User](ctx, c, http.MethodPost, "/api/users/signup", in)
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (result.Result[domain.AuthenticatedSession], error) {
	body := map[string]string{"email": email, "password": password}
	return call[domain.AuthenticatedSession](ctx, c, http.MethodPost, "/api/users/signin", body)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, userID int64, newPassword string) (result.Result[bool], error) {
	body := map[string]any{"id": userID, "newPassword": newPassword}
	return call[bool](ctx, c, http.MethodPost, "/api/users/reset-password", body)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, in UpdateUserInput) (result.Result[domain.User], error) {
	return call[domain.User](ctx, c, http.MethodPut, "/api/users/update-user", in)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, userID int64) (result.Result[bool], error) {
	return call[bool](ctx, c, http.MethodDelete, fmt.Sprintf("/api/users/delete-user/%d", userID), nil)
}

func (c *HTTPClient) AllUsers(ctx context.Context) (result.Result[[]domain.User], error) {
	return call[[]domain.User](ctx, c, http.MethodGet, "/api/users/all-users", nil)
}

func (c *HTTPClient) UserByID(ctx context.Context, userID int64) (result.Result[domain.User], error) {
	return call[domain.User](ctx, c, http.MethodGet, fmt.Sprintf("/api/users/%d", userID), nil)
}

func (c *HTTPClient) UserRoles(ctx context.Context, userID int64) (result.Result[[]string], error) {
	return call[[]string](ctx, c, http.MethodGet, fmt.Sprintf("/api/roles/user-roles/%d", userID), nil)
}

func (c *HTTPClient) AllRoles(ctx context.Context) (result.Result[[]domain.Role], error) {
	return call[[]domain.Role](ctx, c, http.MethodGet, "/api/roles/all-roles", nil)
}

func (c *HTTPClient) CreateRole(ctx context.Context, in RoleInput) (result.Result[bool], error) {
	return call[bool](ctx, c, http.MethodPost, "/api/roles", in)
}

func (c *HTTPClient) UpdateRole(ctx context.Context, roleID int64, in RoleInput) (result.Result[bool], error) {
	return call[bool](ctx, c, http.MethodPut, fmt.Sprintf("/api/roles/%d", roleID), in)
}

func (c *HTTPClient) DeleteRole(ctx context.Context, roleID int64) (result.Result[bool], error) {
	return call[bool](ctx, c, http.MethodDelete, fmt.Sprintf("/api/roles/%d", roleID), nil)
}

func (c *HTTPClient) AssignRole(ctx context.Context, userID, roleID int64) (result.Result[bool], error) {
	body := map[string]int64{"userId": userID, "roleId": roleID}
	return call[bool](ctx, c, http.MethodPost, "/api/roles/assign", body)
}

// Ping reports whether the identity service answers its liveness probe.
// Used by the gateway's readiness endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// call performs one round-trip and decodes the Result envelope. Transport
// faults become a generic "unexpected" failure so downstream status mapping
// lands on 500; cancellation of the inbound request propagates as an error.
func call[T any](ctx context.Context, c *HTTPClient, method, path string, body any) (result.Result[T], error) {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return result.Failure[T](msgIdentityUnreachable), nil
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return result.Failure[T](msgIdentityUnreachable), nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return result.Result[T]{}, ctx.Err()
		}
		c.log.Error().Err(err).Str("method", method).Str("path", path).
			Msg("identity service call failed")
		return result.Failure[T](msgIdentityUnreachable), nil
	}
	defer resp.Body.Close()

	var res result.Result[T]
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).
			Int("status", resp.StatusCode).Msg("identity service sent a malformed envelope")
		return result.Failure[T](msgIdentityUnreachable), nil
	}

	// A non-envelope error body (router 404, aborted request) decodes into
	// an empty Result; normalize so callers always see a message.
	if !res.IsSuccess && res.Error == "" {
		return result.Failure[T](msgIdentityUnreachable), nil
	}
	return res, nil
}
