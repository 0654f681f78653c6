package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/linemk/secondhand-shop/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestError_IsKind(t *testing.T) {
	err := apperr.InvalidState("apiclient.PayOrder", 409, "Order cannot be paid")

	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	assert.False(t, errors.Is(err, apperr.ErrProtocol))

	wrapped := fmt.Errorf("workflow: %w", err)
	assert.True(t, errors.Is(wrapped, apperr.ErrInvalidState), "kind must survive wrapping")
	assert.Equal(t, "workflow: apiclient.PayOrder: Order cannot be paid", wrapped.Error())
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := apperr.Transport("apiclient.ListProducts", cause)

	assert.True(t, errors.Is(err, apperr.ErrTransport))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", apperr.UserMessage(nil))
	assert.Equal(t, "用户名或密码错误", apperr.UserMessage(apperr.Auth("op", 401, "用户名或密码错误")))
	assert.Equal(t, "login required, please sign in again", apperr.UserMessage(apperr.Auth("op", 401, "")))
	assert.Equal(t, "network error, please check the connection",
		apperr.UserMessage(apperr.Transport("op", errors.New("timeout"))))
	assert.Equal(t, "operation failed", apperr.UserMessage(errors.New("boom")))
}
