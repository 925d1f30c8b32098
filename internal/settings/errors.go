package settings

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes registry errors.
type ErrorCode string

const (
	// ErrCodeNotInitialized indicates a lookup of an id that was never registered.
	ErrCodeNotInitialized ErrorCode = "NOT_INITIALIZED"

	// ErrCodeTypeMismatch indicates a typed lookup with the wrong type parameter.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeUnknownKey indicates an id or key that names no setting.
	ErrCodeUnknownKey ErrorCode = "UNKNOWN_KEY"

	// ErrCodeInvalidValue indicates a value that cannot be stored in the setting.
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"
)

// Error is returned for registry contract violations.
type Error struct {
	Code    ErrorCode
	ID      ID
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotInitialized reports whether err is (or wraps) a NOT_INITIALIZED error.
func IsNotInitialized(err error) bool {
	return hasCode(err, ErrCodeNotInitialized)
}

// IsTypeMismatch reports whether err is (or wraps) a TYPE_MISMATCH error.
func IsTypeMismatch(err error) bool {
	return hasCode(err, ErrCodeTypeMismatch)
}

// IsUnknownKey reports whether err is (or wraps) an UNKNOWN_KEY error.
func IsUnknownKey(err error) bool {
	return hasCode(err, ErrCodeUnknownKey)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func notInitialized(id ID) *Error {
	return &Error{
		Code:    ErrCodeNotInitialized,
		ID:      id,
		Message: fmt.Sprintf("setting %s is not registered", id),
	}
}
