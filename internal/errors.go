package internal

import (
	"errors"
	"fmt"
)

// Framework errors.
var (
	// ErrAuthentication signals that the request has no authenticated identity.
	// Returned by the gate or by a handler, it is answered with a redirect
	// to the configured login location.
	ErrAuthentication = errors.New("uniweb: authentication required")

	// ErrMalformedRequest is returned when the cookie header, query string or
	// body cannot be parsed, or the body exceeds the configured limit.
	// The request is answered with 400.
	ErrMalformedRequest = errors.New("uniweb: malformed request")

	// ErrReservedCookie is returned by SetCookie for the session cookie name.
	ErrReservedCookie = errors.New("uniweb: cookie name is reserved")

	// ErrUnknownCapability is raised when a route declares a token with no provider.
	ErrUnknownCapability = errors.New("uniweb: unknown capability")

	// ErrNilResponse is returned when a handler yields neither response nor error.
	ErrNilResponse = errors.New("uniweb: handler returned nil response")

	// ErrStartupHook is returned by Run when a startup hook fails.
	ErrStartupHook = errors.New("uniweb: startup hook failed")

	// ErrDetachedResponse is returned by session operations on a response
	// that was created without a request.
	ErrDetachedResponse = errors.New("uniweb: response has no request")
)

// PanicError wraps a value recovered from a panicking handler, provider or
// middleware.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsPanicError reports whether err contains a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// AsPanicError extracts the PanicError from err.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
