package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailedResponse(t *testing.T) {
	t.Run("domain error keeps message", func(t *testing.T) {
		resp := FailedResponse(NewError(KindNotFound, ROBOT_NOT_FOUND))
		assert.False(t, resp.Status)
		assert.Equal(t, ROBOT_NOT_FOUND, resp.Message)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		resp := FailedResponse(errors.New("mongo: connection reset"))
		assert.Equal(t, INTERNAL_SERVER_ERROR, resp.Message)
	})

	t.Run("constraint violation is hidden", func(t *testing.T) {
		resp := FailedResponse(WrapError(KindConstraintViolation, RECORD_ALREADY_EXISTS, errors.New("E11000")))
		assert.Equal(t, INTERNAL_SERVER_ERROR, resp.Message)
	})
}

func TestSuccessResponse(t *testing.T) {
	resp := SuccessResponse("ok", nil)
	assert.True(t, resp.Status)
	assert.Equal(t, map[string]interface{}{}, resp.Data)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusCode(nil))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("x")))
	assert.Equal(t, http.StatusConflict, StatusCode(NewError(KindDuplicateOpID, OP_ID_ALREADY_EXISTS)))
}
