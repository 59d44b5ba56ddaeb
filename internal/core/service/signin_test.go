package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/result"
)

type stubUserManager struct {
	validateFn func(ctx context.Context, email, password string) result.Result[*domain.User]
}

func (s *stubUserManager) ValidateUser(ctx context.Context, email, password string) result.Result[*domain.User] {
	return s.validateFn(ctx, email, password)
}
func (s *stubUserManager) Create(context.Context, *domain.User, string) result.Result[*domain.User] {
	return result.Failure[*domain.User]("not used")
}
func (s *stubUserManager) FindByID(context.Context, int64) result.Result[*domain.User] {
	return result.Failure[*domain.User]("not used")
}
func (s *stubUserManager) GetAllUsers(context.Context) result.Result[[]domain.User] {
	return result.Failure[[]domain.User]("not used")
}
func (s *stubUserManager) Update(context.Context, *domain.User) result.Result[*domain.User] {
	return result.Failure[*domain.User]("not used")
}
func (s *stubUserManager) ResetPassword(context.Context, int64, string) result.Result[bool] {
	return result.Failure[bool]("not used")
}
func (s *stubUserManager) Delete(context.Context, int64) result.Result[bool] {
	return result.Failure[bool]("not used")
}
func (s *stubUserManager) EmailExists(context.Context, string) result.Result[bool] {
	return result.Failure[bool]("not used")
}

type stubRoleManager struct {
	getRolesFn func(ctx context.Context, userID int64) result.Result[[]string]
}

func (s *stubRoleManager) GetRoles(ctx context.Context, userID int64) result.Result[[]string] {
	return s.getRolesFn(ctx, userID)
}
func (s *stubRoleManager) GetAllRoles(context.Context) result.Result[[]domain.Role] {
	return result.Failure[[]domain.Role]("not used")
}
func (s *stubRoleManager) GetRoleByID(context.Context, int64) result.Result[*domain.Role] {
	return result.Failure[*domain.Role]("not used")
}
func (s *stubRoleManager) CreateRole(context.Context, string, string) result.Result[bool] {
	return result.Failure[bool]("not used")
}
func (s *stubRoleManager) UpdateRole(context.Context, int64, string, string) result.Result[bool] {
	return result.Failure[bool]("not used")
}
func (s *stubRoleManager) DeleteRole(context.Context, int64) result.Result[bool] {
	return result.Failure[bool]("not used")
}
func (s *stubRoleManager) AddToRole(context.Context, int64, int64) result.Result[bool] {
	return result.Failure[bool]("not used")
}

type stubTokenIssuer struct {
	fn func(subjectID string, user *domain.User, roles []string) result.Result[string]
}

func (s *stubTokenIssuer) GenerateToken(subjectID string, user *domain.User, roles []string) result.Result[string] {
	return s.fn(subjectID, user, roles)
}

func knownUser() *domain.User {
	return &domain.User{
		ID:          1,
		UserName:    "janefox",
		Email:       "jane.fox@example.com",
		PhoneNumber: "555-1234",
		DateCreated: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func validatingUsers() *stubUserManager {
	return &stubUserManager{validateFn: func(_ context.Context, email, password string) result.Result[*domain.User] {
		if email == "jane.fox@example.com" && password == "s3cret" {
			return result.Success(knownUser())
		}
		if email == "jane.fox@example.com" {
			return result.Failure[*domain.User]("Wrong credentials")
		}
		return result.Failure[*domain.User]("User not found")
	}}
}

func rolesOf(names ...string) *stubRoleManager {
	return &stubRoleManager{getRolesFn: func(context.Context, int64) result.Result[[]string] {
		if len(names) == 0 {
			return result.Failure[[]string]("No roles found for the given user.")
		}
		return result.Success(names)
	}}
}

func workingIssuer() *stubTokenIssuer {
	return &stubTokenIssuer{fn: func(subjectID string, _ *domain.User, _ []string) result.Result[string] {
		return result.Success("signed-token-" + subjectID)
	}}
}

func TestSignIn_Success(t *testing.T) {
	p := NewSignInPipeline(validatingUsers(), rolesOf("EMPLOYEE", "MANAGER"), workingIssuer(), zerolog.Nop())

	res, err := p.SignIn(context.Background(), "jane.fox@example.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsSuccess {
		t.Fatalf("sign-in failed: %q", res.Error)
	}
	if res.Data.Token == "" {
		t.Fatalf("expected a token")
	}
	if res.Data.User.ID != 1 {
		t.Fatalf("session user id mismatch: %d", res.Data.User.ID)
	}
	if len(res.Data.User.Roles) != 2 {
		t.Fatalf("expected roles echoed back, got %v", res.Data.User.Roles)
	}
	if res.Data.User.PhoneNumber != "555-1234" {
		t.Fatalf("user payload not echoed: %+v", res.Data.User)
	}
}

func TestSignIn_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	p := NewSignInPipeline(validatingUsers(), rolesOf("EMPLOYEE"), workingIssuer(), zerolog.Nop())

	unknown, err := p.SignIn(context.Background(), "ghost@example.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wrongPw, err := p.SignIn(context.Background(), "jane.fox@example.com", "bad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if unknown.IsSuccess || wrongPw.IsSuccess {
		t.Fatalf("expected both to fail")
	}
	if unknown.Error != "Invalid credentials" || wrongPw.Error != "Invalid credentials" {
		t.Fatalf("messages must be identical: %q vs %q", unknown.Error, wrongPw.Error)
	}
}

func TestSignIn_NoRolesStillSignsIn(t *testing.T) {
	p := NewSignInPipeline(validatingUsers(), rolesOf(), workingIssuer(), zerolog.Nop())

	res, err := p.SignIn(context.Background(), "jane.fox@example.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsSuccess {
		t.Fatalf("role-less user must sign in, got %q", res.Error)
	}
	if res.Data.User.Roles == nil || len(res.Data.User.Roles) != 0 {
		t.Fatalf("expected empty role list, got %v", res.Data.User.Roles)
	}
}

func TestSignIn_RoleLoadFailurePropagatesVerbatim(t *testing.T) {
	roles := &stubRoleManager{getRolesFn: func(context.Context, int64) result.Result[[]string] {
		return result.Failure[[]string]("An error occurred while getting user roles.")
	}}
	p := NewSignInPipeline(validatingUsers(), roles, workingIssuer(), zerolog.Nop())

	res, err := p.SignIn(context.Background(), "jane.fox@example.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsSuccess || res.Error != "An error occurred while getting user roles." {
		t.Fatalf("expected verbatim role error, got %+v", res)
	}
}

func TestSignIn_TokenFailuresNormalize(t *testing.T) {
	cases := []struct {
		name   string
		issuer *stubTokenIssuer
	}{
		{"issuer returns failure", &stubTokenIssuer{fn: func(string, *domain.User, []string) result.Result[string] {
			return result.Failure[string]("key unavailable")
		}}},
		{"issuer returns empty token", &stubTokenIssuer{fn: func(string, *domain.User, []string) result.Result[string] {
			return result.Success("")
		}}},
		{"issuer panics", &stubTokenIssuer{fn: func(string, *domain.User, []string) result.Result[string] {
			panic("nil signing key")
		}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewSignInPipeline(validatingUsers(), rolesOf("EMPLOYEE"), tc.issuer, zerolog.Nop())

			res, err := p.SignIn(context.Background(), "jane.fox@example.com", "s3cret")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.IsSuccess {
				t.Fatalf("expected failure")
			}
			if res.Error != "Token generation failed" {
				t.Fatalf("expected normalized message, got %q", res.Error)
			}
		})
	}
}

func TestSignIn_CancelledContextAbortsBeforeCollaborators(t *testing.T) {
	called := false
	users := &stubUserManager{validateFn: func(context.Context, string, string) result.Result[*domain.User] {
		called = true
		return result.Success(knownUser())
	}}
	p := NewSignInPipeline(users, rolesOf("EMPLOYEE"), workingIssuer(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.SignIn(ctx, "jane.fox@example.com", "s3cret")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatalf("collaborator called after cancellation")
	}
}

func TestSignIn_CollaboratorPanicBecomesUnexpectedError(t *testing.T) {
	users := &stubUserManager{validateFn: func(context.Context, string, string) result.Result[*domain.User] {
		panic("store exploded")
	}}
	p := NewSignInPipeline(users, rolesOf("EMPLOYEE"), workingIssuer(), zerolog.Nop())

	res, err := p.SignIn(context.Background(), "jane.fox@example.com", "s3cret")
	if err != nil {
		t.Fatalf("panic must not escape as error: %v", err)
	}
	if res.IsSuccess || res.Error != "Unexpected error" {
		t.Fatalf("expected Unexpected error, got %+v", res)
	}
}

func TestSignIn_RolesNeverLoadedWhenCredentialsFail(t *testing.T) {
	rolesCalled := false
	roles := &stubRoleManager{getRolesFn: func(context.Context, int64) result.Result[[]string] {
		rolesCalled = true
		return result.Success([]string{"EMPLOYEE"})
	}}
	p := NewSignInPipeline(validatingUsers(), roles, workingIssuer(), zerolog.Nop())

	if res, _ := p.SignIn(context.Background(), "ghost@example.com", "nope"); res.IsSuccess {
		t.Fatalf("expected failure")
	}
	if rolesCalled {
		t.Fatalf("roles loaded despite failed credential validation")
	}
}
