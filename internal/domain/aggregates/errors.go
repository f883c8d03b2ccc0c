package aggregates

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeForbidden          ErrorCode = "forbidden"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// Error carries a code for the HTTP layer, the failing operation and a
// message safe to show to the caller. Cause stays internal.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := string(e.Code)
	if e.Message != "" {
		s = e.Message + " (" + s + ")"
	}
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{Code: code, Op: op, Message: message, Cause: cause}
}

// Wrap gives err a code. The message is err's text.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: op, Message: err.Error(), Cause: err}
}

func Errorf(code ErrorCode, op, format string, args ...any) error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
