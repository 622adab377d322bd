package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	NotFoundKind   Kind = "not_found"
	ConflictKind   Kind = "conflict"
	ValidationKind Kind = "validation"
	AuthKind       Kind = "unauthorized"
	ForbiddenKind  Kind = "forbidden"
	InternalKind   Kind = "internal"
)

type AppError struct {
	Kind    Kind
	Message string
	Code    int
	Err     error
}

func NewError(kind Kind, msg string, code int, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: msg,
		Code:    code,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(err error) *AppError {
	return NewError(NotFoundKind, err.Error(), http.StatusNotFound, err)
}

func Conflict(err error) *AppError {
	return NewError(ConflictKind, err.Error(), http.StatusConflict, err)
}

// ConflictCause answers with err's message and keeps cause for the logs.
func ConflictCause(err, cause error) *AppError {
	return NewError(ConflictKind, err.Error(), http.StatusConflict, cause)
}

func Validation(msg string) *AppError {
	return NewError(ValidationKind, msg, http.StatusBadRequest, nil)
}

func Validationf(format string, args ...any) *AppError {
	return Validation(fmt.Sprintf(format, args...))
}

func Unauthorized(msg string) *AppError {
	return NewError(AuthKind, msg, http.StatusUnauthorized, nil)
}

func Forbidden(msg string) *AppError {
	return NewError(ForbiddenKind, msg, http.StatusForbidden, nil)
}

func Internal(msg string, err error) *AppError {
	return NewError(InternalKind, msg, http.StatusInternalServerError, err)
}

// As extracts an AppError from the chain. Errors of unknown origin are reported as internal.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
