// Package errors provides the structured errors returned by the activity registry and
// mapped onto HTTP and GraphQL responses.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	ErrCodeActivityNotFound    ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeParticipantNotFound ErrorCode = "PARTICIPANT_NOT_FOUND"
	ErrCodeAlreadySignedUp     ErrorCode = "ALREADY_SIGNED_UP"
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
)

// Kind groups codes into the failure classes callers branch on.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Extensions exposes the code to GraphQL clients.
func (e *StandardError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Code)}
}

// Kind returns the failure class of the error code.
func (e *StandardError) Kind() Kind {
	switch e.Code {
	case ErrCodeActivityNotFound, ErrCodeParticipantNotFound:
		return KindNotFound
	case ErrCodeAlreadySignedUp:
		return KindConflict
	case ErrCodeValidationFailed:
		return KindValidation
	}
	return KindInternal
}

// NewActivityNotFoundError is returned when the activity name is not in the registry.
func NewActivityNotFoundError(activity string) *StandardError {
	return &StandardError{
		Code:    ErrCodeActivityNotFound,
		Message: "Activity not found",
		Details: fmt.Sprintf("activity: %s", activity),
	}
}

// NewParticipantNotFoundError is returned when removing an email that is not enrolled.
func NewParticipantNotFoundError(activity, email string) *StandardError {
	return &StandardError{
		Code:    ErrCodeParticipantNotFound,
		Message: "Student is not signed up for this activity",
		Details: fmt.Sprintf("activity: %s, email: %s", activity, email),
	}
}

// NewAlreadySignedUpError is returned for a duplicate signup.
func NewAlreadySignedUpError(activity, email string) *StandardError {
	return &StandardError{
		Code:    ErrCodeAlreadySignedUp,
		Message: "Student is already signed up",
		Details: fmt.Sprintf("activity: %s, email: %s", activity, email),
	}
}

func NewValidationError(message string) *StandardError {
	return &StandardError{
		Code:    ErrCodeValidationFailed,
		Message: message,
	}
}

// AsStandard unwraps err into a *StandardError.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the error code of err, or "" when err is not a StandardError.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.Code
	}
	return ""
}

// KindOf returns the failure class of err. Nil and unknown errors are KindInternal.
func KindOf(err error) Kind {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.Kind()
	}
	return KindInternal
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// HTTPStatus maps err onto the status code returned to HTTP clients. A duplicate signup
// is reported as 400, which is what the browser client expects.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
