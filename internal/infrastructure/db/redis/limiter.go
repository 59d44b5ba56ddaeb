package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	limiterWindow      = 15 * time.Minute
	defaultMaxFailures = 5
)

// SignInLimiter throttles repeated failed sign-in attempts per email, backed
// by a Redis counter with a TTL window. Key format: signin_fail:<email>
type SignInLimiter struct {
	client      *redis.Client
	maxFailures int64
}

// NewSignInLimiter creates a limiter allowing maxFailures failed attempts per
// window. maxFailures <= 0 falls back to the default.
func NewSignInLimiter(client *redis.Client, maxFailures int64) *SignInLimiter {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	return &SignInLimiter{client: client, maxFailures: maxFailures}
}

// TooManyAttempts reports whether the email has exhausted its allowance.
func (l *SignInLimiter) TooManyAttempts(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("limiter check: %w", err)
	}
	return n >= l.maxFailures, nil
}

// RecordFailure bumps the failure counter; the first failure opens the
// window. EXPIRE NX rides in the same pipeline, so a counter that lost its
// TTL (a crash between the two commands) gets one on the next failure
// instead of throttling the account forever.
func (l *SignInLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, limiterWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("limiter record failure: %w", err)
	}
	return nil
}

// Clear resets the counter after a successful sign-in.
func (l *SignInLimiter) Clear(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *SignInLimiter) key(email string) string {
	return "signin_fail:" + strings.ToLower(email)
}
