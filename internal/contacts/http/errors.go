package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/contacts/internal/contacts/service"
	"github.com/aussiebroadwan/contacts/internal/contacts/validate"
	"github.com/aussiebroadwan/contacts/pkg/contactsdk"
	"github.com/aussiebroadwan/contacts/pkg/httpx"
	"github.com/aussiebroadwan/contacts/pkg/slogx"
)

// errBadID is returned for a non-numeric contact id in the path.
var errBadID = errors.New("contact id is not numeric")

var (
	apiErrBadJSON       = contactsdk.NewAPIError(http.StatusBadRequest, "Invalid JSON body")
	apiErrBadID         = contactsdk.NewAPIError(http.StatusBadRequest, "Validation failed (numeric string is expected)")
	apiErrUsernameTaken = contactsdk.NewAPIError(http.StatusBadRequest, "Username already exists")
	apiErrCredentials   = contactsdk.NewAPIError(http.StatusUnauthorized, "Username or password is invalid")
	apiErrNotFound      = contactsdk.NewAPIError(http.StatusNotFound, "Contact is not found")
)

// toAPIError maps a handler error to its response. It returns nil for
// errors that have no public representation.
func toAPIError(err error) *contactsdk.APIError {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return contactsdk.NewValidationError(verr.Fields)
	case errors.Is(err, httpx.ErrBadJSON):
		return apiErrBadJSON
	case errors.Is(err, errBadID):
		return apiErrBadID
	case errors.Is(err, service.ErrUsernameTaken):
		return apiErrUsernameTaken
	case errors.Is(err, service.ErrInvalidCredentials):
		return apiErrCredentials
	case errors.Is(err, service.ErrUnauthorized):
		return contactsdk.ErrUnauthorized
	case errors.Is(err, service.ErrContactNotFound):
		return apiErrNotFound
	}
	return nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)
	if apiErr == nil {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		contactsdk.ErrInternal.WriteError(w)
		return
	}

	if apiErr.StatusCode == http.StatusUnauthorized {
		httpx.SetBearerChallenge(w)
	}
	apiErr.WriteError(w)
}
