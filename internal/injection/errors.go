package injection

import (
	"errors"
	"fmt"
)

// Error represents a domain-specific error
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeProcess      = "PROCESS_ERROR"
	ErrCodeNotification = "NOTIFICATION_ERROR"
	ErrCodeRelayAPI     = "RELAY_API_ERROR"
)

// NewError creates a new injection error
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsValidation reports whether err is a validation error. Validation errors
// abort an operation before any side effect occurs.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeValidation
}
