package pagos

import (
	"errors"
	"fmt"
)

// The package raises three disjoint error kinds. Everything else a remote
// provider can do wrong is a business failure and travels as a Response
// with Success() == false, never as an error.

// ValidationError reports construction of a Status or ErrorCode outside the
// closed vocabulary.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func IsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	ok := errors.As(err, &vErr)
	return vErr, ok
}

// InvalidArgumentError reports integration mistakes: an unknown or missing
// driver, a missing required credential, a negative amount.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return e.Msg
}

func IsInvalidArgument(err error) (*InvalidArgumentError, bool) {
	var iaErr *InvalidArgumentError
	ok := errors.As(err, &iaErr)
	return iaErr, ok
}

// CapabilityError reports a capability or operation the active driver does
// not implement. Not every provider supports every operation family; the
// failure is typed so callers can branch on it.
type CapabilityError struct {
	Driver string
	Method string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("Undefined method [%s] called", e.Method)
}

func IsCapabilityError(err error) (*CapabilityError, bool) {
	var capErr *CapabilityError
	ok := errors.As(err, &capErr)
	return capErr, ok
}
