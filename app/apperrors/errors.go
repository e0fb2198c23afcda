package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeNotFound     Code = "NOT_FOUND"
	CodeStorage      Code = "STORAGE_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeTooLarge     Code = "PAYLOAD_TOO_LARGE"
)

// AppError carries the status and a user-facing message for a failed request.
type AppError struct {
	Code     Code
	Message  string
	Err      error
	HTTPCode int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode}
}

func Wrap(err error, code Code, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPCode: httpCode}
}

func NotFound(err error, what string) *AppError {
	return Wrap(err, CodeNotFound, what+" not found", http.StatusNotFound)
}

func Storage(err error) *AppError {
	return Wrap(err, CodeStorage, "File storage is unavailable", http.StatusInternalServerError)
}

func Internal(err error) *AppError {
	return Wrap(err, CodeInternal, "Internal server error", http.StatusInternalServerError)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func BadRequest(err error) *AppError {
	return Wrap(err, CodeBadRequest, "Malformed request", http.StatusBadRequest)
}

func TooLarge(err error) *AppError {
	return Wrap(err, CodeTooLarge, "Upload is too large", http.StatusRequestEntityTooLarge)
}

// From returns err as an *AppError, wrapping anything unknown as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
