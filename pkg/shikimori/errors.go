package shikimori

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyOpen is returned by Open on a client that is already open.
	ErrAlreadyOpen = errors.New("shikimori: client is already open")
	// ErrRestricted is returned by operations that need OAuth credentials.
	ErrRestricted = errors.New("shikimori: client is in restricted mode")

	errNoRefreshToken = errors.New("no refresh token")
)

// ConfigError reports a missing or invalid configuration field. It is
// fatal: the client cannot be constructed until the field is supplied.
type ConfigError struct {
	Field string
	// AuthorizationURL is set when the auth code is missing; the operator
	// visits it to obtain one.
	AuthorizationURL string
}

func (e *ConfigError) Error() string {
	if e.AuthorizationURL != "" {
		return fmt.Sprintf("shikimori: missing %s, authorize the application at %s and set the code it shows", e.Field, e.AuthorizationURL)
	}
	return fmt.Sprintf("shikimori: missing required config field %q", e.Field)
}

// TokenError reports a failed exchange at the OAuth token endpoint.
// Payload holds the server's raw error document when there was one.
type TokenError struct {
	GrantType string
	Payload   json.RawMessage
	Err       error
}

func (e *TokenError) Error() string {
	msg := fmt.Sprintf("shikimori: %s grant failed", e.GrantType)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if len(e.Payload) > 0 {
		msg += ": " + string(e.Payload)
	}
	return msg
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	// Code is the "error" field of the body or of the WWW-Authenticate
	// challenge, e.g. "invalid_token".
	Code string
	Body []byte
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("shikimori API error: %s %s returned %d", e.Method, e.URL, e.StatusCode)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if body := strings.TrimSpace(string(e.Body)); body != "" {
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		msg += ": " + body
	}
	return msg
}

// InvalidToken reports the one failure the client recovers from by
// refreshing the token pair.
func (e *APIError) InvalidToken() bool {
	return e.StatusCode == 401 && e.Code == "invalid_token"
}

// errorCode extracts the error code from a failed response.
func errorCode(body []byte, authenticate string) string {
	var doc struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &doc) == nil && doc.Error != "" {
		return doc.Error
	}
	// Bearer realm="...", error="invalid_token", error_description="..."
	for _, part := range strings.Split(authenticate, ",") {
		part = strings.TrimSpace(part)
		if i := strings.Index(part, "error="); i >= 0 {
			return strings.Trim(part[i+len("error="):], `"`)
		}
	}
	return ""
}
