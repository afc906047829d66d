package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrUnauthenticated  = fmt.Errorf("no credential available")
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotSignedIn      = fmt.Errorf("not signed in")
	ErrSessionExpired   = fmt.Errorf("session expired")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrCallbackTimeout  = fmt.Errorf("authorization callback timed out")
	ErrCallbackRejected = fmt.Errorf("authorization callback rejected")

	// API errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
