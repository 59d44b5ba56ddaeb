package ports

import (
	"context"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

// AuditRecorder persists sign-in audit events. Recording is best-effort;
// a failed write must never affect the sign-in outcome.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.SignInEvent) error
}

// SignInLimiter throttles repeated failed sign-in attempts per email.
type SignInLimiter interface {
	// TooManyAttempts reports whether the email has exhausted its allowance.
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	// Clear resets the failure counter after a successful sign-in.
	Clear(ctx context.Context, email string) error
}
