package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/result"
)

// JWTIssuer implements ports.TokenIssuer with HS256-signed JWTs.
type JWTIssuer struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewJWTIssuer(secret string, tokenTTL time.Duration) *JWTIssuer {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &JWTIssuer{secret: []byte(secret), tokenTTL: tokenTTL}
}

// GenerateToken signs a token for a validated identity. Failures surface
// through the Result; the sign-in pipeline normalizes the message before it
// leaves the service.
func (i *JWTIssuer) GenerateToken(subjectID string, user *domain.User, roles []string) result.Result[string] {
	if len(i.secret) == 0 {
		return result.Failure[string]("signing key not configured")
	}
	if user == nil {
		return result.Failure[string]("no user to issue for")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      subjectID,
		"userName": user.UserName,
		"email":    user.Email,
		"roles":    roles,
		"iat":      now.Unix(),
		"exp":      now.Add(i.tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return result.Failure[string]("token signing failed")
	}
	return result.Success(signed)
}
