package taskapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// fallbackMessage is used when neither the response body nor the HTTP
// status text yields an error message.
const fallbackMessage = "Request failed"

// Error is the uniform failure shape produced by the client. Callers
// receive the same shape whether the failure came from the server or
// from a local transport fault.
type Error struct {
	// Message is human-readable and safe to show to the user.
	Message string

	// StatusCode is the HTTP status, or 0 when no response was
	// received (transport failure).
	StatusCode int

	// Raw is the parsed response body, or nil when the body was empty
	// or not valid JSON.
	Raw json.RawMessage

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// Unwrap returns the underlying transport error.
func (e *Error) Unwrap() error {
	return e.Err
}

// statusError builds an Error from a non-2xx response.
func statusError(statusCode int, raw json.RawMessage) *Error {
	msg := messageFromBody(raw)
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	if msg == "" {
		msg = fallbackMessage
	}
	return &Error{Message: msg, StatusCode: statusCode, Raw: raw}
}

// transportError builds an Error for a request that never produced a
// response. StatusCode stays 0.
func transportError(err error) *Error {
	return &Error{Message: err.Error(), Err: err}
}

// messageFromBody extracts an error message from a parsed response
// body. Servers are inconsistent about their failure payloads, so the
// first non-empty of these wins, in order:
//
//  1. an "error" string field
//  2. a "message" string field
//  3. a "details" list of objects each carrying a "message", joined
//     with ", "
//
// Returns "" when the body is absent or yields nothing.
func messageFromBody(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Details []struct {
			Message string `json:"message"`
		} `json:"details"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}

	if body.Error != "" {
		return body.Error
	}
	if body.Message != "" {
		return body.Message
	}
	if len(body.Details) > 0 {
		msgs := make([]string, 0, len(body.Details))
		for _, d := range body.Details {
			if d.Message != "" {
				msgs = append(msgs, d.Message)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, ", ")
		}
	}
	return ""
}

// IsNotFound reports whether the error is an HTTP 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether the error is an HTTP 401 from the API.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsTransport reports whether the error is a local transport failure,
// i.e. no response was received.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == 0
}

func hasStatus(err error, code int) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == code
}
