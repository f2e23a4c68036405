package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"app error", NewError(KindNotFound, DOCTOR_NOT_FOUND), KindNotFound},
		{"wrapped app error", fmt.Errorf("create: %w", NewError(KindDuplicateOpID, OP_ID_ALREADY_EXISTS)), KindDuplicateOpID},
		{"plain error", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(NewError(KindForbidden, USER_DOESNOT_HAVE_ACCESS), KindForbidden))
	assert.False(t, IsKind(nil, KindInternal))
	assert.False(t, IsKind(errors.New("x"), KindForbidden))
}

func TestWrapErrorUnwraps(t *testing.T) {
	cause := errors.New("E11000 duplicate key")
	err := WrapError(KindConstraintViolation, RECORD_ALREADY_EXISTS, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, RECORD_ALREADY_EXISTS, err.Error())
}

func TestKindHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusConflict, KindDuplicateBillingID.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, KindInvalidSchedule.HTTPStatus())
	assert.Equal(t, http.StatusForbidden, KindForbidden.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindConstraintViolation.HTTPStatus())
	assert.Equal(t, "DuplicateBillingId", KindDuplicateBillingID.String())
}
