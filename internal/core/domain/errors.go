package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the stores. Managers translate these into
// Result failures; they never cross the HTTP boundary as raw errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleExists   = errors.New("role already exists")
)

// RepositoryError wraps a datastore failure. Managers match it with
// errors.As and surface a generic message so driver detail never reaches a
// caller.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("repository: %s", e.Op)
	}
	return fmt.Sprintf("repository: %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// NewRepositoryError wraps err with the failing operation name.
func NewRepositoryError(op string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Err: err}
}
