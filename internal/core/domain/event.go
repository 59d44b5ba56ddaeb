package domain

import "time"

// Sign-in audit outcomes.
const (
	AuditSignInSucceeded = "succeeded"
	AuditSignInFailed    = "failed"
	AuditSignInThrottled = "throttled"
)

// SignInEvent is an audit-trail record of a sign-in attempt. Email is kept
// even for unknown accounts so lockout investigations can see probe attempts.
type SignInEvent struct {
	Email     string
	UserID    int64 // zero when the account is unknown
	Outcome   string
	Reason    string
	Timestamp time.Time
	RemoteIP  string
}
