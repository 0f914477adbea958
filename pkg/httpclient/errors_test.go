package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/RedDotz20/storeapi/pkg/errors"
)

func makeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_NotFound(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusNotFound, ""), "catalog")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestParseResponseError_Unauthorized(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusUnauthorized, "username or password is incorrect"), "auth")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.Contains(t, err.Error(), "username or password is incorrect")
}

func TestParseResponseError_UnauthorizedEmptyBody(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusUnauthorized, ""), "auth")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestParseResponseError_Forbidden(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusForbidden, "nope"), "auth")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestParseResponseError_BadRequest(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusBadRequest, "limit must be a number"), "catalog")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "limit must be a number")
}

func TestParseResponseError_ServerError(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusInternalServerError, "oops"), "catalog")

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestParseResponseError_OtherStatus(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusTeapot, "short and stout"), "catalog")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "418")
	assert.Contains(t, err.Error(), "short and stout")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(400))
	assert.True(t, IsClientError(404))
	assert.True(t, IsClientError(499))
	assert.False(t, IsClientError(399))
	assert.False(t, IsClientError(500))
	assert.False(t, IsClientError(200))
}
