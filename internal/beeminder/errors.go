package beeminder

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the service, carrying the HTTP status
// and whatever message the error envelope contained.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("beeminder: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("beeminder: %s (status %d)", e.Message, e.Status)
}

// parseAPIError extracts a message from the service's error envelope, which
// is either {"errors":{"message":"..."}} or {"errors":"..."}. Anything else
// falls back to the raw body.
func parseAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		var s string
		if json.Unmarshal(envelope.Errors, &s) == nil {
			return &APIError{Status: status, Message: s}
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Errors, &obj) == nil && obj.Message != "" {
			return &APIError{Status: status, Message: obj.Message}
		}
	}
	return &APIError{Status: status, Message: strings.TrimSpace(string(body))}
}
