package reconcile

import (
	"errors"
	"fmt"
)

// ErrCallback indicates that a create or modify callback failed.
var ErrCallback = errors.New("reconcile callback failed")

// CallbackError reports which change request's callback failed.
type CallbackError struct {
	Kind      RequestKind
	RequestID string
	Err       error
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.RequestID, e.Err)
}

// Unwrap returns the underlying callback error.
func (e *CallbackError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support for ErrCallback.
func (e *CallbackError) Is(target error) bool {
	return target == ErrCallback
}
