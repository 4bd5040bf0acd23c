package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// UploadError is an OnDemand API failure that came back with an HTTP
// response. Body keeps the raw response for the caller's details field.
type UploadError struct {
	StatusCode int
	Body       []byte
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("ondemand upload failed with status %d: %s", e.StatusCode, e.Message())
}

// Message returns the "message" or "error" field of the response body,
// falling back to the HTTP status text.
func (e *UploadError) Message() string {
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Err != "" {
			return body.Err
		}
	}
	return http.StatusText(e.StatusCode)
}

// Details returns the decoded response body, or the raw text when the
// body is not JSON.
func (e *UploadError) Details() interface{} {
	if len(e.Body) == 0 {
		return nil
	}
	var details interface{}
	if err := json.Unmarshal(e.Body, &details); err != nil {
		return string(e.Body)
	}
	return details
}

// MentionsSession reports whether the error body blames the session,
// which is the only condition that triggers the one-shot upload retry.
func (e *UploadError) MentionsSession() bool {
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(body.Message), "session") ||
		strings.Contains(strings.ToLower(body.Err), "session")
}

// NetworkError is a transport failure where no HTTP response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("could not connect to OnDemand API: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
