package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/RedDotz20/storeapi/pkg/errors"
)

// ParseResponseError reads the body of a non-2xx HTTP response from a remote
// API and translates it into an appropriate AppError. The remote catalog and
// auth backends return plain-text or loosely structured bodies, so only the
// status code is mapped; a snippet of the body is preserved for diagnostics.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10)) // 4 KB snippet
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}
	snippet := strings.TrimSpace(string(bodyBytes))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: fmt.Sprintf("%s: resource not found", serviceName),
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return apperrors.Unauthorized(fmt.Sprintf("%s: %s", serviceName, nonEmpty(snippet, "unauthorized")))
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.InvalidInput(fmt.Sprintf("%s: %s", serviceName, nonEmpty(snippet, "bad request")))
	case resp.StatusCode >= 500:
		return apperrors.Upstream(serviceName, fmt.Errorf("status %d: %s", resp.StatusCode, snippet))
	default:
		return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, snippet)
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
// Client errors are not retried and do not trip the circuit breaker.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
