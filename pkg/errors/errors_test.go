package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrBindError.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, Invalid("Invalid limit (1..200)").HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, ErrUnauthorized.HTTPStatus())
	assert.Equal(t, http.StatusForbidden, ErrForbidden.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, ErrBookNotFound.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, ErrDatabaseError.HTTPStatus())

	// 非法错误码兜底为500
	assert.Equal(t, http.StatusInternalServerError, New(123, "x").HTTPStatus())
}

func TestWrapHidesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, "Server/database error")

	assert.Equal(t, "Server/database error", err.Message)
	assert.True(t, errors.Is(err, cause), "Unwrap应能找到底层错误")
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestGetAppError(t *testing.T) {
	t.Run("包装过的AppError原样返回", func(t *testing.T) {
		wrapped := fmt.Errorf("repo: %w", ErrBookNotFound)
		assert.Same(t, ErrBookNotFound, GetAppError(wrapped))
	})

	t.Run("普通错误转为Internal", func(t *testing.T) {
		appErr := GetAppError(fmt.Errorf("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.Equal(t, "Server error", appErr.Message)
	})
}

func TestIsMatchesByCode(t *testing.T) {
	copyErr := New(ErrCodeUnauthorized, "Unauthorized")
	assert.True(t, errors.Is(copyErr, ErrUnauthorized))
	assert.False(t, errors.Is(copyErr, ErrForbidden))
}

func TestDatabaseMatchesPredefined(t *testing.T) {
	err := Database(fmt.Errorf("no reachable servers"))
	assert.True(t, errors.Is(err, ErrDatabaseError))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.Equal(t, "Server/database error", err.Message)
}

func TestRedisMatchesPredefined(t *testing.T) {
	cause := fmt.Errorf("dial tcp: i/o timeout")
	err := Redis(cause)
	assert.True(t, errors.Is(err, ErrRedisError))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrCodeRedisError, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}
