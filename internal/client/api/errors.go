package api

import (
	"net/http"

	"github.com/pkg/errors"
)

// CodeInactiveAccount is the error code for a deactivated account.
const CodeInactiveAccount = "INACTIVE_ACCOUNT"

// APIError is an error envelope returned by the server.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if detail, ok := e.Details.(string); ok && detail != "" {
		msg += ": " + detail
	}
	if e.Code != "" {
		return e.Code + ": " + msg
	}

	return msg
}

// IsUnauthorized reports a 401: the token (or the login) was rejected.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsInactiveAccount reports that the token's account has been deactivated.
// The server answers 400 for it, but the token is as dead as after a 401.
func (e *APIError) IsInactiveAccount() bool {
	return e.Code == CodeInactiveAccount
}

// IsSessionRejection reports any answer that invalidates the bearer token.
func (e *APIError) IsSessionRejection() bool {
	return e.IsUnauthorized() || e.IsInactiveAccount()
}

// IsForbidden reports a 403: the record belongs to someone else.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsNotFound reports a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict reports a 409, e.g. a username that is already taken.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsRetriable reports a 503: the server could not reach its credential store.
func (e *APIError) IsRetriable() bool {
	return e.StatusCode == http.StatusServiceUnavailable
}

// AsAPIError unwraps err into an *APIError when it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}
