package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrRemote       = errors.New("management api error")
)

// ValidationError reports malformed or missing input. It is raised before any
// remote call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an entity that is absent or outside the caller's scope.
type NotFoundError struct {
	Resource string
	ID       string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// MemberNotFound is returned when loginID is unknown or not associated with tenantID.
func MemberNotFound(tenantID, loginID string) *NotFoundError {
	return &NotFoundError{
		Resource: "Member",
		ID:       loginID,
		Message:  fmt.Sprintf("Member %s not found in tenant %s", loginID, tenantID),
	}
}

// RemoteError wraps a failure returned by the identity platform. Its text is
// for logs only; handlers never echo it to callers.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

func remote(op string, err error) error {
	return &RemoteError{Op: op, Err: err}
}
