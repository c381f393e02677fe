package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrRefreshFailed means the backend rejected the refresh token.
	// Callers must treat the session as unrecoverable and log out.
	ErrRefreshFailed = errors.New("refresh token rejected")

	// ErrSessionExpired is returned by the transport when a request got a 401,
	// the one-shot refresh cycle failed, and no further retry is allowed.
	ErrSessionExpired = errors.New("session expired")
)

// AuthError is a backend rejection of credentials or registration data,
// carrying the human-readable message from the response body.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// APIError is any other non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// errorBody is the subset of error payloads the backend emits. FastAPI-style
// backends use "detail"; the gateway in front of them rewrites to "message".
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// responseMessage extracts a safe human-readable message from an error
// response body, falling back to the given generic text.
func responseMessage(resp *http.Response, fallback string) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fallback
	}

	var body errorBody
	if err := json.Unmarshal(b, &body); err != nil {
		return fallback
	}

	var detail string
	if len(body.Detail) > 0 && json.Unmarshal(body.Detail, &detail) == nil && detail != "" {
		return detail
	}
	if body.Message != "" {
		return body.Message
	}
	return fallback
}
