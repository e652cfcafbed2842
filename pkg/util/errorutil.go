package util

import (
	"errors"
	"fmt"
)

// Error codes for the store's hard failures. Every other authorization or
// validation failure in the store is a deliberate silent no-op.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeConflict        = "CONFLICT"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

// NewUnauthenticated signals a mutation attempted without a session.
func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthenticated, message, nil)
}

// NewInvalidArgument signals a missing or malformed required field.
func NewInvalidArgument(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidArgument, message, details)
}

// NewConflict signals a uniqueness violation.
func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, details)
}

// HasCode reports whether err carries the given domain error code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

func IsUnauthenticated(err error) bool { return HasCode(err, CodeUnauthenticated) }
func IsInvalidArgument(err error) bool { return HasCode(err, CodeInvalidArgument) }
func IsConflict(err error) bool        { return HasCode(err, CodeConflict) }
