package ports

import (
	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/result"
)

// PasswordHasher performs one-way hashing and verification of credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) bool
}

// TokenIssuer turns a validated identity plus its role set into a signed
// token. Issuers report their own failures through the Result; the sign-in
// pipeline additionally guards against panics and empty tokens.
type TokenIssuer interface {
	GenerateToken(subjectID string, user *domain.User, roles []string) result.Result[string]
}
