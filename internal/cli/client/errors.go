package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API call
type Kind int

const (
	// KindValidation is a client-side rejection; no request was sent
	KindValidation Kind = iota
	// KindUnauthenticated means a protected endpoint was called without a token
	KindUnauthenticated
	// KindAuthExpired means the backend answered 401 and the session was cleared
	KindAuthExpired
	// KindHTTP is any other non-2xx answer
	KindHTTP
	// KindNetwork means no answer was received
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindAuthExpired:
		return "auth-expired"
	case KindHTTP:
		return "http-error"
	case KindNetwork:
		return "network-error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	msgAuthRequired   = "authentication required, please log in"
	msgSessionExpired = "session expired, please log in again."
)

// Error is the failure returned by every API operation
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 when no response was received
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether the backend rejected the session
func (e *Error) IsAuthError() bool {
	return e.Kind == KindAuthExpired
}

// KindOf returns the kind of err if it is (or wraps) an *Error
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsAuthError reports whether err is a 401 session failure
func IsAuthError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsAuthError()
}

// NeedsLogin reports whether the caller should send the user to login
func NeedsLogin(err error) bool {
	kind, ok := KindOf(err)
	return ok && (kind == KindAuthExpired || kind == KindUnauthenticated)
}

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}
