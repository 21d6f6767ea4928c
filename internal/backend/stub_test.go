package backend

import (
	"errors"
	"strings"
	"testing"
)

func TestEveryOperationReportsRemoval(t *testing.T) {
	t.Parallel()

	c := New()
	calls := map[string]func() error{
		OpFrom:              func() error { _, err := c.From("movies"); return err },
		OpSignIn:            func() error { _, err := c.Auth().SignIn("a@b.c", "pw"); return err },
		OpSignOut:           func() error { return c.Auth().SignOut() },
		OpOnAuthStateChange: func() error { _, err := c.OnAuthStateChange(func(string, *Session) {}); return err },
		OpRPC:               func() error { _, err := c.RPC("fn", nil); return err },
		OpStorageFrom:       func() error { _, err := c.Storage().From("posters"); return err },
	}

	if len(calls) != len(Operations()) {
		t.Fatalf("test covers %d operations, package lists %d", len(calls), len(Operations()))
	}

	for op, call := range calls {
		t.Run(op, func(t *testing.T) {
			err := call()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrRemoved) {
				t.Fatalf("errors.Is(err, ErrRemoved) = false for %v", err)
			}
			var re *RemovedError
			if !errors.As(err, &re) || re.Op != op {
				t.Fatalf("expected RemovedError for %s, got %v", op, err)
			}
			msg := err.Error()
			if !strings.Contains(msg, op) || !strings.Contains(msg, "removed") {
				t.Fatalf("message should name %s and say removed: %q", op, msg)
			}
		})
	}
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	c := New()
	for _, op := range Operations() {
		if err := c.Invoke(op); !errors.Is(err, ErrRemoved) {
			t.Errorf("Invoke(%s) = %v", op, err)
		}
	}
	if err := c.Invoke("auth.resetPassword"); err == nil || errors.Is(err, ErrRemoved) {
		t.Fatalf("unknown operation should be reported as unknown, got %v", err)
	}
}
