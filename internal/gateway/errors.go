package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed call to the HR service.
type Kind int

const (
	// KindNetwork is a transport failure: DNS, refused connection, timeout.
	KindNetwork Kind = iota + 1
	// KindRejected is a non-2xx answer other than 401.
	KindRejected
	// KindMalformed is a 2xx answer whose body could not be decoded.
	KindMalformed
	// KindUnauthorized is a 401 answer; the bearer token is no longer accepted.
	KindUnauthorized
	// KindCanceled means the caller's context ended before the call finished.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	case KindUnauthorized:
		return "unauthorized"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is returned by every failed gateway call.
type Error struct {
	Kind   Kind
	Method string
	Path   string
	// Status is the HTTP status for Rejected and Unauthorized errors.
	Status int
	// Message is the server-provided explanation, when one could be extracted.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: %s (%d): %s", e.Method, e.Path, e.Kind, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: %s (%d)", e.Method, e.Path, e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a gateway error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind, true
	}
	return 0, false
}

// IsUnauthorized reports whether err is a 401 from the HR service.
func IsUnauthorized(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindUnauthorized
}

// IsCanceled reports whether err came from a cancelled caller context.
func IsCanceled(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindCanceled
}

// IsNotFound reports whether err is a 404 rejection.
func IsNotFound(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == KindRejected && gwErr.Status == http.StatusNotFound
}
