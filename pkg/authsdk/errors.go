package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the error envelope used by every auth endpoint. It doubles as
// a Go error on the client side and as a canned response on the server side.
type APIError struct {
	// StatusCode is the HTTP status this error is served with. It is not
	// part of the JSON body.
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return e.Code
}

// WriteError writes the error to w as a JSON response. Token-bearing
// endpoints must not be cached, so every error carries no-store headers too.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(e.StatusCode)
	json.NewEncoder(w).Encode(e)
}

// NewAPIError creates an APIError with a custom description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// Predefined errors for the auth API. Descriptions are part of the public
// contract; clients match on them, so treat changes as breaking.
var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "The request body is malformed or missing required parameters",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_credentials",
		Description: "Invalid email or password",
	}

	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        "email_taken",
		Description: "Email already registered",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_token",
		Description: "Invalid or expired token",
	}

	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        "not_found",
		Description: "User not found",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        "server_error",
		Description: "An unexpected error occurred",
	}
)

// ErrReauthRequired is returned by Session when the stored credentials can no
// longer be exchanged for a valid token pair. The session has already been
// cleared; the user must log in again. Transport failures are never wrapped
// into this error.
var ErrReauthRequired = errors.New("authsdk: re-authentication required")

// parseErrorResponse turns a non-2xx response body into an *APIError. It
// understands both the standard envelope and the validation envelope and
// falls back to the HTTP status when the body is unrecognisable.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	var valResp ValidationErrorResponse
	if err := json.Unmarshal(body, &valResp); err == nil && valResp.Code != "" {
		desc := valResp.Message
		if len(valResp.Details) > 0 {
			desc = fmt.Sprintf("%s: %v", valResp.Message, valResp.Details)
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        valResp.Code,
			Description: desc,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        "unexpected_error",
		Description: fmt.Sprintf("unexpected response status %d", resp.StatusCode),
	}
}
