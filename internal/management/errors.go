package management

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a failure reported by the management API, or a transport failure
// while talking to it (StatusCode 0).
type Error struct {
	Operation   string
	StatusCode  int
	Code        string `json:"errorCode"`
	Description string `json:"errorDescription"`
	Message     string `json:"errorMessage"`
	Err         error  `json:"-"`
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "management %s", e.Operation)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	if e.Description != "" {
		fmt.Fprintf(&b, " %s", e.Description)
	}
	if e.Message != "" && e.Message != e.Description {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a management error describing a missing
// entity, either by status code or by its message.
func IsNotFound(err error) bool {
	var mErr *Error
	if !errors.As(err, &mErr) {
		return false
	}
	if mErr.StatusCode == http.StatusNotFound {
		return true
	}
	return strings.Contains(strings.ToLower(mErr.Description), "not found") ||
		strings.Contains(strings.ToLower(mErr.Message), "not found")
}
