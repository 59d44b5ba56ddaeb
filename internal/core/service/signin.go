package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
	"github.com/peoplecore/identity-system/internal/core/result"
)

// SignInPipeline composes credential validation, role loading and token
// issuance into one outward-facing operation.
//
// Failure policy per stage:
//   - credential failures of any cause collapse to "Invalid credentials",
//     so a caller cannot distinguish an unknown email from a wrong password;
//   - role-load failures propagate verbatim (the caller is already
//     authenticated at that point), except that a user with no roles at all
//     still signs in with an empty role list;
//   - token issuance never leaks a panic or a raw issuer error, only
//     "Token generation failed";
//   - anything else that escapes a collaborator becomes "Unexpected error".
//
// Only cooperative cancellation crosses the boundary as a Go error.
type SignInPipeline struct {
	users  ports.UserManager
	roles  ports.RoleManager
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewSignInPipeline(users ports.UserManager, roles ports.RoleManager, tokens ports.TokenIssuer, log zerolog.Logger) *SignInPipeline {
	return &SignInPipeline{users: users, roles: roles, tokens: tokens, log: log}
}

func (p *SignInPipeline) SignIn(ctx context.Context, email, password string) (res result.Result[domain.AuthenticatedSession], err error) {
	// Cancellation before any collaborator call is a distinct signal, not a
	// business failure.
	if cerr := ctx.Err(); cerr != nil {
		return result.Result[domain.AuthenticatedSession]{}, cerr
	}

	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Str("email", email).Msg("sign-in pipeline panicked")
			res = result.Failure[domain.AuthenticatedSession]("Unexpected error")
			err = nil
		}
	}()

	validated := p.users.ValidateUser(ctx, email, password)
	if !validated.IsSuccess {
		return result.Failure[domain.AuthenticatedSession]("Invalid credentials"), nil
	}
	user := validated.Data

	var roles []string
	loaded := p.roles.GetRoles(ctx, user.ID)
	switch {
	case loaded.IsSuccess:
		roles = loaded.Data
	case loaded.Error == msgNoUserRoles:
		// Role-less users can still sign in.
		roles = []string{}
	default:
		return result.Failure[domain.AuthenticatedSession](loaded.Error), nil
	}

	token := p.issueToken(user, roles)
	if !token.IsSuccess || token.Data == "" {
		p.log.Warn().Int64("user_id", user.ID).Msg("token issuance failed")
		return result.Failure[domain.AuthenticatedSession]("Token generation failed"), nil
	}

	p.log.Info().Int64("user_id", user.ID).Msg("user signed in")
	return result.Success(domain.AuthenticatedSession{
		Token: token.Data,
		User: domain.AuthenticatedUser{
			ID:          user.ID,
			UserName:    user.UserName,
			Email:       user.Email,
			PhoneNumber: user.PhoneNumber,
			DateCreated: user.DateCreated,
			Roles:       roles,
		},
	}), nil
}

// issueToken shields the pipeline from a panicking issuer.
func (p *SignInPipeline) issueToken(user *domain.User, roles []string) (res result.Result[string]) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Int64("user_id", user.ID).Msg("token issuer panicked")
			res = result.Failure[string]("Token generation failed")
		}
	}()
	return p.tokens.GenerateToken(strconv.FormatInt(user.ID, 10), user, roles)
}
