// Package apperror carries a stable error kind alongside business-rule failures
// so the transport layer can map them to status codes without inspecting text.
package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation            Kind = "VALIDATION_ERROR"
	KindUnauthorizedLocation  Kind = "UNAUTHORIZED_LOCATION"
	KindDuplicateOperation    Kind = "DUPLICATE_OPERATION"
	KindNotFound              Kind = "NOT_FOUND"
	KindInvalidStatus         Kind = "INVALID_STATUS"
	KindInsufficientBalance   Kind = "INSUFFICIENT_BALANCE"
	KindOverlappingAssignment Kind = "OVERLAPPING_ASSIGNMENT"
	KindInvalidState          Kind = "INVALID_STATE"
	KindUnauthorized          Kind = "UNAUTHORIZED"
	KindForbidden             Kind = "FORBIDDEN"
	KindConflict              Kind = "CONFLICT"
	KindInternal              Kind = "INTERNAL_SERVER_ERROR"
)

// Error is a business-rule failure tagged with its Kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind onto the status code returned to clients.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindUnauthorizedLocation, KindDuplicateOperation, KindInvalidStatus,
		KindInsufficientBalance, KindOverlappingAssignment, KindInvalidState:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
