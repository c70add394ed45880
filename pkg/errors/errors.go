package errors

import (
	"fmt"
	"net/http"
)

// Error codes returned to callers. Expected negative outcomes (a taken slot,
// nothing to cancel) share the same shape as faults but carry 4xx codes so
// retry logic can tell "try another slot" from "the calendar is down".
const (
	CodeUnknownResource = "UNKNOWN_RESOURCE"
	CodeInvalidTime     = "INVALID_TIME"
	CodeValidation      = "VALIDATION_ERROR"
	CodeSlotTaken       = "SLOT_TAKEN"
	CodeNotFound        = "NOT_FOUND"
	CodeGatewayTimeout  = "GATEWAY_TIMEOUT"
	CodeGatewayError    = "GATEWAY_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func UnknownResource(name string) *AppError {
	return &AppError{
		Code:       CodeUnknownResource,
		Message:    fmt.Sprintf("no calendar is configured for %q", name),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"resource": name},
	}
}

func InvalidTime(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidTime,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func SlotTaken(message string) *AppError {
	return &AppError{
		Code:       CodeSlotTaken,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func NotFound(message string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

func GatewayTimeout(err error) *AppError {
	return &AppError{
		Code:       CodeGatewayTimeout,
		Message:    "the calendar backend did not answer in time",
		HTTPStatus: http.StatusGatewayTimeout,
		Err:        err,
	}
}

func GatewayError(message string, err error) *AppError {
	return &AppError{
		Code:       CodeGatewayError,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError returns err as an AppError, wrapping anything unrecognized as an
// internal error so handlers never leak raw error strings.
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
