package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_WrappedError(t *testing.T) {
	base := New(KindNotFound, "timesheet not found")
	wrapped := fmt.Errorf("failed to load timesheet: %w", base)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, base))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestKind_HTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:            http.StatusBadRequest,
		KindUnauthorizedLocation:  http.StatusBadRequest,
		KindDuplicateOperation:    http.StatusBadRequest,
		KindInvalidStatus:         http.StatusBadRequest,
		KindInsufficientBalance:   http.StatusBadRequest,
		KindOverlappingAssignment: http.StatusBadRequest,
		KindInvalidState:          http.StatusBadRequest,
		KindUnauthorized:          http.StatusUnauthorized,
		KindForbidden:             http.StatusForbidden,
		KindNotFound:              http.StatusNotFound,
		KindConflict:              http.StatusConflict,
		KindInternal:              http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), string(kind))
	}
}
