package api

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is a non-2xx response from the server. The raw body is carried so
// callers can surface the server's message verbatim.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Body)
}

// AccessDenied reports whether the server rejected the request for lack of
// authorization. Views render this distinctly from generic failures.
func (e *HTTPError) AccessDenied() bool {
	return e.StatusCode == http.StatusForbidden
}

// NetworkError is a transport-level failure: the request never produced an
// HTTP response. Distinct from [HTTPError] because the user action is always
// retryable.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is an [HTTPError] with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == code
}

// IsAccessDenied reports whether err is a 403 [HTTPError].
func IsAccessDenied(err error) bool {
	return IsStatus(err, http.StatusForbidden)
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
