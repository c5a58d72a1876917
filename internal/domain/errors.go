package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure a command can report.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindAuthenticationFailed
	KindAccessDenied
	KindRateLimited
	KindNotFound
	KindServerError
	KindNoRunningTimer
	KindInvalidCredentialFormat
	KindInvalidDuration
	KindInvalidInput
	KindNoWorkspace
)

var kindNames = map[ErrorKind]string{
	KindGeneric:                 "generic",
	KindAuthenticationFailed:    "authentication_failed",
	KindAccessDenied:            "access_denied",
	KindRateLimited:             "rate_limited",
	KindNotFound:                "not_found",
	KindServerError:             "server_error",
	KindNoRunningTimer:          "no_running_timer",
	KindInvalidCredentialFormat: "invalid_credential_format",
	KindInvalidDuration:         "invalid_duration",
	KindInvalidInput:            "invalid_input",
	KindNoWorkspace:             "no_workspace",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified failure. Message is safe to show to users; Cause
// keeps the underlying detail for debug output only.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError builds a classified error.
func NewError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// Errorf builds a classified error with a formatted message and no cause.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is.
var (
	ErrGeneric                 = &Error{Kind: KindGeneric, Message: "request failed"}
	ErrAuthenticationFailed    = &Error{Kind: KindAuthenticationFailed, Message: "authentication failed: check your API key"}
	ErrAccessDenied            = &Error{Kind: KindAccessDenied, Message: "access denied"}
	ErrRateLimited             = &Error{Kind: KindRateLimited, Message: "rate limited by the service, wait before trying again"}
	ErrNotFound                = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrServerError             = &Error{Kind: KindServerError, Message: "the service reported an internal error, try again later"}
	ErrNoRunningTimer          = &Error{Kind: KindNoRunningTimer, Message: "no timer is running"}
	ErrInvalidCredentialFormat = &Error{Kind: KindInvalidCredentialFormat, Message: "API key has an invalid format"}
	ErrInvalidDuration         = &Error{Kind: KindInvalidDuration, Message: "invalid duration"}
	ErrInvalidInput            = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrNoWorkspace             = &Error{Kind: KindNoWorkspace, Message: "no workspace selected, run 'clockify workspace switch <id>'"}
)

// KindOf returns the kind of a classified error, or KindGeneric.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}
