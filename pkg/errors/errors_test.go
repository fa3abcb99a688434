package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	e := New(CodeBackendFailure, "spectroscopy backend unreachable")
	assert.Equal(t, "[GATEWAY_010] spectroscopy backend unreachable", e.Error())

	withDetail := e.WithDetail("POST http://localhost:9000/spectroscopy")
	assert.Contains(t, withDetail.Error(), "POST http://localhost:9000/spectroscopy")
	// The original is not mutated.
	assert.Empty(t, e.Detail)
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeBackendFailure, "should vanish"))
}

func TestWrap_PreservesCodeOnUnknown(t *testing.T) {
	inner := New(CodeBackendTimeout, "deadline exceeded")
	wrapped := Wrap(fmt.Errorf("dispatch: %w", inner), CodeUnknown, "adding context")
	assert.Equal(t, CodeBackendTimeout, wrapped.Code)
}

func TestWrap_Unwrap(t *testing.T) {
	sentinel := errors.New("connection refused")
	wrapped := Wrap(sentinel, CodeBackendFailure, "extraction backend call failed")
	require.NotNil(t, wrapped)
	assert.True(t, errors.Is(wrapped, sentinel))
}

func TestIsCode(t *testing.T) {
	err := Wrap(New(CodeFallbackFailure, "completion call failed"), CodeUnknown, "chat")
	assert.True(t, IsCode(err, CodeFallbackFailure))
	assert.False(t, IsCode(err, CodeBackendFailure))
	assert.False(t, IsCode(nil, CodeFallbackFailure))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(errors.New("plain")))
	assert.Equal(t, CodeBadRequest, GetCode(New(CodeBadRequest, "missing question")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 400, CodeBadRequest.HTTPStatus())
	assert.Equal(t, 502, CodeFallbackFailure.HTTPStatus())
	assert.Equal(t, 504, CodeBackendTimeout.HTTPStatus())
	assert.Equal(t, 500, CodeInternal.HTTPStatus())
}
