package redis

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
)

// captureHook short-circuits execution and records the commands that would
// have been sent, so limiter behavior is checked without a server.
type captureHook struct {
	cmds *[]redis.Cmder
}

func (h captureHook) DialHook(redis.DialHook) redis.DialHook {
	return func(context.Context, string, string) (net.Conn, error) {
		return nil, nil
	}
}

func (h captureHook) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		*h.cmds = append(*h.cmds, cmd)
		return nil
	}
}

func (h captureHook) ProcessPipelineHook(redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(_ context.Context, cmds []redis.Cmder) error {
		*h.cmds = append(*h.cmds, cmds...)
		return nil
	}
}

func newCapturedLimiter(t *testing.T) (*SignInLimiter, *[]redis.Cmder) {
	t.Helper()
	var seen []redis.Cmder
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	client.AddHook(captureHook{cmds: &seen})
	return NewSignInLimiter(client, 5), &seen
}

func TestRecordFailure_ArmsTheWindowOnEveryAttempt(t *testing.T) {
	l, seen := newCapturedLimiter(t)

	if err := l.RecordFailure(context.Background(), "Jane@Example.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}

	var incr, expire redis.Cmder
	for _, cmd := range *seen {
		switch cmd.Name() {
		case "incr":
			incr = cmd
		case "expire":
			expire = cmd
		}
	}
	if incr == nil {
		t.Fatalf("no INCR issued: %v", *seen)
	}
	if got := incr.Args()[1]; got != "signin_fail:jane@example.com" {
		t.Fatalf("wrong counter key: %v", got)
	}
	// The TTL must travel with the increment; a counter without a window
	// would throttle the account until a successful sign-in.
	if expire == nil {
		t.Fatalf("no EXPIRE issued alongside INCR: %v", *seen)
	}
	hasNX := false
	for _, a := range expire.Args() {
		if s, ok := a.(string); ok && strings.EqualFold(s, "nx") {
			hasNX = true
		}
	}
	if !hasNX {
		t.Fatalf("EXPIRE must be NX so later failures do not extend the window: %v", expire.Args())
	}
}

func TestRecordFailure_RepairsAMissingTTL(t *testing.T) {
	l, seen := newCapturedLimiter(t)

	// Two failures in a row: both carry the EXPIRE, so a key orphaned
	// between INCR and EXPIRE picks a TTL up on the next attempt.
	for i := 0; i < 2; i++ {
		if err := l.RecordFailure(context.Background(), "jane@example.com"); err != nil {
			t.Fatalf("record failure %d: %v", i, err)
		}
	}

	expires := 0
	for _, cmd := range *seen {
		if cmd.Name() == "expire" {
			expires++
		}
	}
	if expires != 2 {
		t.Fatalf("expected an EXPIRE per failure, got %d", expires)
	}
}
