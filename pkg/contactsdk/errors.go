package contactsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/aussiebroadwan/contacts/pkg/httpx"
)

// APIError is an error response from the contacts service. It is used by the
// server to write error bodies and by the client to report them.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"-"`

	// Message is the human readable error.
	Message string `json:"errors"`

	// Details maps field names to validation messages.
	Details map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}

	fields := make([]string, 0, len(e.Details))
	for name := range e.Details {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	for i, name := range fields {
		fields[i] = name + " " + e.Details[name]
	}
	return fmt.Sprintf("%d: %s (%s)", e.StatusCode, e.Message, strings.Join(fields, "; "))
}

// WriteError writes the error as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

var (
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrBadRequest   = &APIError{StatusCode: http.StatusBadRequest, Message: "Bad Request"}
	ErrNotFound     = &APIError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	ErrInternal     = &APIError{StatusCode: http.StatusInternalServerError, Message: "Internal Server Error"}
)

// NewAPIError builds an error with a custom message.
func NewAPIError(status int, message string) *APIError {
	return &APIError{StatusCode: status, Message: message}
}

// NewValidationError builds a 400 error carrying per-field messages.
func NewValidationError(details map[string]string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Message: "Validation Error", Details: details}
}

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies that
// are not in the service's error format keep the status text as message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsValidation reports whether err is a 400 with field details.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest && len(apiErr.Details) > 0
}
