package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// StatusForCode maps aggregate error codes onto HTTP statuses.
func StatusForCode(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation, domainagg.CodeInvariantViolation:
		return http.StatusBadRequest
	case domainagg.CodeUnauthorized:
		return http.StatusUnauthorized
	case domainagg.CodeForbidden:
		return http.StatusForbidden
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// From converts err into an *Error. Existing *Error values pass through,
// aggregate errors keep their code, anything else becomes a 500 with
// fallbackCode.
func From(err error, fallbackCode string) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if code := domainagg.CodeOf(err); code != "" {
		return New(StatusForCode(code), string(code), err)
	}
	return New(http.StatusInternalServerError, fallbackCode, err)
}
