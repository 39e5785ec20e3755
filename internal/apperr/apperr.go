package apperr

import (
	"fmt"
	"net/http"
)

// ValidationError marks malformed input rejected before touching the store.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a lookup of a resource that does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// RetryableError wraps a transient store failure. The caller may retry;
// this layer never does.
type RetryableError struct {
	Op  string
	Err error
}

func (e *RetryableError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

func Retryable(op string, err error) error {
	return &RetryableError{Op: op, Err: err}
}

// Status maps an error to an HTTP status code and a caller-facing message.
// Unexpected errors collapse to a generic 500 with no internals leaked.
func Status(err error) (int, string) {
	switch e := err.(type) {
	case *ValidationError:
		return http.StatusBadRequest, e.Msg
	case *NotFoundError:
		return http.StatusNotFound, e.Error()
	case *RetryableError:
		return http.StatusServiceUnavailable, "temporary failure, please retry"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
