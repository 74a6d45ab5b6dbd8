package response

import (
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

var maskInternal atomic.Bool

// MaskInternalErrors hides the text of unclassified errors from clients.
// Enabled in production.
func MaskInternalErrors(mask bool) {
	maskInternal.Store(mask)
}

type detailer interface {
	Details() map[string]any
}

// HandleError maps validation errors and apperror kinds to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		slog.Error("Unhandled error", "error", err)
		msg := err.Error()
		if maskInternal.Load() {
			msg = "An unexpected error occurred"
		}
		InternalServerError(w, msg)
		return
	}

	var details interface{}
	var d detailer
	if errors.As(err, &d) {
		details = d.Details()
	}
	Error(w, kind.HTTPStatus(), string(kind), err.Error(), details)
}
