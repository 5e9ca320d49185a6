package common

import (
	"errors"
	"fmt"
)

// ValidationError means the record failed a data-integrity rule. It is
// reported before any persistence attempt and is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// InfrastructureError means the persistence port itself failed (connection
// drop, lock timeout, constraint violation). These are the only errors the
// retry loop will re-attempt.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("infrastructure failure: %s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError wraps a driver-level failure with the operation
// that produced it.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRetryable is the retry predicate for persistence attempts: only
// infrastructure failures are worth re-attempting.
func IsRetryable(err error) bool {
	var ie *InfrastructureError
	return errors.As(err, &ie)
}
