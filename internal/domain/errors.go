package domain

import (
	"errors"
	"fmt"
)

var (
	ErrIdentityNotFound = errors.New("identity not found")
	ErrLoginFailed      = errors.New("login failed")
)

// TransportError is an unrecoverable failure reported by a room session
// update. The process terminates with the carried code; reconnect policy
// belongs to the session client, not the console.
type TransportError struct {
	Code   int
	Reason string
}

func (e *TransportError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("room session transport error (code %d)", e.Code)
	}
	return fmt.Sprintf("room session transport error (code %d): %s", e.Code, e.Reason)
}

// ExitCode maps the transport code onto a usable process exit status.
func (e *TransportError) ExitCode() int {
	code := e.Code
	if code < 0 {
		code = -code
	}
	if code == 0 || code > 255 {
		return 1
	}
	return code
}
