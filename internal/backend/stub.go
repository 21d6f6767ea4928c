// Package backend is what remains of the hosted backend integration the
// browser used to talk to. It was removed; every operation reports that
// explicitly so that any leftover call site fails fast and visibly.
package backend

import (
	"errors"
	"fmt"
)

// ErrRemoved matches every error returned by this package.
var ErrRemoved = errors.New("backend integration removed")

// Operation names, as call sites used to spell them.
const (
	OpFrom              = "from"
	OpSignIn            = "auth.signIn"
	OpSignOut           = "auth.signOut"
	OpOnAuthStateChange = "onAuthStateChange"
	OpRPC               = "rpc"
	OpStorageFrom       = "storage.from"
)

// Operations lists every operation of the removed integration.
func Operations() []string {
	return []string{OpFrom, OpSignIn, OpSignOut, OpOnAuthStateChange, OpRPC, OpStorageFrom}
}

// RemovedError names the operation that was invoked.
type RemovedError struct {
	Op string
}

func (e *RemovedError) Error() string {
	return fmt.Sprintf("%v: %s is not available", ErrRemoved, e.Op)
}

func (e *RemovedError) Is(target error) bool { return target == ErrRemoved }

func removed(op string) error { return &RemovedError{Op: op} }

// Client has the shape of the old backend client. Nothing works.
type Client struct{}

// New returns the stub client.
func New() *Client { return &Client{} }

// Query stands in for a table query builder.
type Query struct{}

// Session stands in for an auth session.
type Session struct{}

// Subscription stands in for an auth state listener handle.
type Subscription struct{}

// Bucket stands in for a storage bucket handle.
type Bucket struct{}

// From would have started a query on table.
func (c *Client) From(table string) (*Query, error) {
	return nil, removed(OpFrom)
}

// RPC would have invoked a remote procedure.
func (c *Client) RPC(fn string, args map[string]any) (any, error) {
	return nil, removed(OpRPC)
}

// OnAuthStateChange would have registered an auth listener.
func (c *Client) OnAuthStateChange(fn func(event string, s *Session)) (*Subscription, error) {
	return nil, removed(OpOnAuthStateChange)
}

// Auth returns the auth namespace.
func (c *Client) Auth() Auth { return Auth{} }

// Storage returns the storage namespace.
func (c *Client) Storage() Storage { return Storage{} }

// Auth is the auth namespace of the removed client.
type Auth struct{}

// SignIn would have signed a user in.
func (Auth) SignIn(email, password string) (*Session, error) {
	return nil, removed(OpSignIn)
}

// SignOut would have ended the session.
func (Auth) SignOut() error {
	return removed(OpSignOut)
}

// Storage is the storage namespace of the removed client.
type Storage struct{}

// From would have opened a storage bucket.
func (Storage) From(bucket string) (*Bucket, error) {
	return nil, removed(OpStorageFrom)
}

// Invoke calls the named operation with zero arguments; it is what the
// admin diagnostics endpoint uses. Unknown names are reported as such.
func (c *Client) Invoke(op string) error {
	var err error
	switch op {
	case OpFrom:
		_, err = c.From("")
	case OpSignIn:
		_, err = c.Auth().SignIn("", "")
	case OpSignOut:
		err = c.Auth().SignOut()
	case OpOnAuthStateChange:
		_, err = c.OnAuthStateChange(nil)
	case OpRPC:
		_, err = c.RPC("", nil)
	case OpStorageFrom:
		_, err = c.Storage().From("")
	default:
		return fmt.Errorf("unknown backend operation %q", op)
	}
	return err
}
