package socialapi

import (
	"encoding/json"
	"fmt"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string // the backend's "error" field, if any
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("social api: status %d", e.Status)
	}
	return fmt.Sprintf("social api: status %d: %s", e.Status, e.Message)
}

// ServerMessage returns the message supplied by the backend.
func (e *APIError) ServerMessage() string {
	return e.Message
}

type errorResponse struct {
	Error string `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		apiErr.Message = resp.Error
	}

	return apiErr
}
