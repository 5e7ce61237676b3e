package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthRequired means there is no session at all; the shopper must log in.
	ErrAuthRequired = errors.New("authsdk: authentication required")

	// ErrTimeout is returned when a caller stops waiting for a token refresh
	// or the refresh exchange itself runs past its deadline.
	ErrTimeout = errors.New("authsdk: timed out waiting for token refresh")
)

// TokenRefreshError reports that the session could not be renewed. By the
// time it is returned the stored credential has been cleared.
type TokenRefreshError struct {
	Err error
}

func (e *TokenRefreshError) Error() string {
	return fmt.Sprintf("token refresh failed: %v", e.Err)
}

func (e *TokenRefreshError) Unwrap() error { return e.Err }

// SessionExpiredError is returned by Session.Do after the server rejected the
// credential and one forced refresh did not help. The stored credential has
// been cleared.
type SessionExpiredError struct {
	Err error
}

func (e *SessionExpiredError) Error() string {
	return "session expired, please log in again"
}

func (e *SessionExpiredError) Unwrap() error { return e.Err }

// APIError is a non-success response from the commerce API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// parseErrorResponse turns a non-2xx response body into an *APIError. Both the
// {"code","message"} and the OAuth2 style {"error","error_description"}
// bodies are understood. Returns nil for 2xx.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	var oauthErr ErrorResponse
	if err := json.Unmarshal(body, &oauthErr); err == nil && oauthErr.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       oauthErr.Error,
			Message:    oauthErr.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       "http_error",
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
