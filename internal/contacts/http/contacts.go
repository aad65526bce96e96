package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
	"github.com/aussiebroadwan/contacts/internal/contacts/service"
	"github.com/aussiebroadwan/contacts/pkg/httpx"
)

type ContactHandler struct {
	Contacts *service.ContactService
}

// Create adds a contact owned by the caller.
//
//	@Summary	Create contact
//	@Tags		Contacts
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		contactsdk.CreateContactRequest	true	"Contact"
//	@Success	200		{object}	contactsdk.ContactResponse		"Wrapped in data"
//	@Failure	400		{object}	contactsdk.APIError				"Validation error"
//	@Failure	401		{object}	contactsdk.APIError				"Unauthorized"
//	@Router		/api/contacts [post].
func (h *ContactHandler) Create(r *http.Request, user domain.User) (any, error) {
	var req service.ContactCreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	return h.Contacts.Create(r.Context(), user, req)
}

// Get returns one of the caller's contacts.
//
//	@Summary	Get contact
//	@Tags		Contacts
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int							true	"Contact ID"
//	@Success	200	{object}	contactsdk.ContactResponse	"Wrapped in data"
//	@Failure	400	{object}	contactsdk.APIError			"Non-numeric id"
//	@Failure	401	{object}	contactsdk.APIError			"Unauthorized"
//	@Failure	404	{object}	contactsdk.APIError			"Contact is not found"
//	@Router		/api/contacts/{id} [get].
func (h *ContactHandler) Get(r *http.Request, user domain.User) (any, error) {
	id, err := contactID(r)
	if err != nil {
		return nil, err
	}
	return h.Contacts.Get(r.Context(), user, id)
}

// Update applies a partial update to one of the caller's contacts.
//
//	@Summary		Update contact
//	@Description	Only the fields present are changed.
//	@Tags			Contacts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Contact ID"
//	@Param			body	body		contactsdk.UpdateContactRequest	true	"Fields to change"
//	@Success		200		{object}	contactsdk.ContactResponse		"Wrapped in data"
//	@Failure		400		{object}	contactsdk.APIError				"Validation error"
//	@Failure		401		{object}	contactsdk.APIError				"Unauthorized"
//	@Failure		404		{object}	contactsdk.APIError				"Contact is not found"
//	@Router			/api/contacts/{id} [put].
func (h *ContactHandler) Update(r *http.Request, user domain.User) (any, error) {
	id, err := contactID(r)
	if err != nil {
		return nil, err
	}

	var req service.ContactUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	req.ID = id

	return h.Contacts.Update(r.Context(), user, req)
}

// Remove deletes one of the caller's contacts.
//
//	@Summary	Delete contact
//	@Tags		Contacts
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int					true	"Contact ID"
//	@Success	200	{object}	bool				"data: true"
//	@Failure	400	{object}	contactsdk.APIError	"Non-numeric id"
//	@Failure	401	{object}	contactsdk.APIError	"Unauthorized"
//	@Failure	404	{object}	contactsdk.APIError	"Contact is not found"
//	@Router		/api/contacts/{id} [delete].
func (h *ContactHandler) Remove(r *http.Request, user domain.User) (any, error) {
	id, err := contactID(r)
	if err != nil {
		return nil, err
	}
	if _, err := h.Contacts.Remove(r.Context(), user, id); err != nil {
		return nil, err
	}
	return true, nil
}

func contactID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, errBadID
	}
	return id, nil
}
