package twitter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the Twitter API.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitter %s failed with status %d: %s", e.Operation, e.StatusCode, e.Message)
}

// IsAuthorizationFailure reports whether the caller must re-authenticate
// (expired token or missing scope) rather than retry.
func (e *APIError) IsAuthorizationFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// errorPayload covers both the v1.1 {"errors":[...]} shape and the v2
// problem-details shape.
type errorPayload struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	Error  string `json:"error"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func newAPIError(operation string, resp *http.Response, body []byte) *APIError {
	return &APIError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Message:    extractMessage(resp, body),
		Body:       body,
	}
}

func extractMessage(resp *http.Response, body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if len(payload.Errors) > 0 && payload.Errors[0].Message != "" {
			messages := make([]string, 0, len(payload.Errors))
			for _, e := range payload.Errors {
				messages = append(messages, e.Message)
			}
			return strings.Join(messages, "; ")
		}
		if payload.Title != "" {
			return payload.Title
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return resp.Status
}
