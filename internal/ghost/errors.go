package ghost

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel validation errors raised before a payload ever leaves the
// process.
var (
	ErrEmptyTitle   = errors.New("post title cannot be empty")
	ErrEmptyContent = errors.New("post content cannot be empty")
)

// APIError carries a non-2xx response: the HTTP status plus whatever
// structured messages the remote body contained.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	msg := strings.Join(e.Messages, ", ")
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.IsValidation() {
		return fmt.Sprintf("ghost validation error (%d): %s", e.Status, msg)
	}
	return fmt.Sprintf("ghost api error (%d): %s", e.Status, msg)
}

// IsValidation reports whether the remote rejected the payload itself, as
// opposed to a transport or server failure.
func (e *APIError) IsValidation() bool {
	return e.Status == http.StatusUnprocessableEntity
}

type remoteError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Context string `json:"context"`
}

// newAPIError extracts structured messages from a Ghost error body. Bodies
// that don't parse still produce a usable error with the raw status.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var parsed struct {
		Errors []remoteError `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, e := range parsed.Errors {
			msg := e.Message
			if msg == "" {
				msg = e.Type
			}
			if e.Context != "" {
				msg = fmt.Sprintf("%s (%s)", msg, e.Context)
			}
			if msg != "" {
				apiErr.Messages = append(apiErr.Messages, msg)
			}
		}
	}
	return apiErr
}
