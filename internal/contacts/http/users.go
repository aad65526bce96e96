package http

import (
	"net/http"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
	"github.com/aussiebroadwan/contacts/internal/contacts/service"
	"github.com/aussiebroadwan/contacts/pkg/httpx"
)

type UserHandler struct {
	Users *service.UserService
}

// Register creates an account.
//
//	@Summary		Register a user
//	@Description	Creates an account. The username must be unused.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		contactsdk.RegisterRequest	true	"Account details"
//	@Success		200		{object}	contactsdk.UserResponse		"Wrapped in data"
//	@Failure		400		{object}	contactsdk.APIError			"Validation error or username already exists"
//	@Failure		429		{object}	contactsdk.APIError			"Rate limited"
//	@Router			/api/users [post].
func (h *UserHandler) Register(r *http.Request, _ domain.User) (any, error) {
	var req service.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	return h.Users.Register(r.Context(), req)
}

// Login issues a session token.
//
//	@Summary		Log in
//	@Description	Verifies the credentials and returns a session token valid for one hour.
//	@Description	Any previously issued token stops working.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		contactsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	contactsdk.UserResponse		"Wrapped in data, includes token"
//	@Failure		400		{object}	contactsdk.APIError			"Validation error"
//	@Failure		401		{object}	contactsdk.APIError			"Username or password is invalid"
//	@Failure		429		{object}	contactsdk.APIError			"Rate limited"
//	@Router			/api/users/login [post].
func (h *UserHandler) Login(r *http.Request, _ domain.User) (any, error) {
	var req service.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	return h.Users.Login(r.Context(), req)
}

// Current returns the logged-in user.
//
//	@Summary	Get current user
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	contactsdk.UserResponse	"Wrapped in data"
//	@Failure	401	{object}	contactsdk.APIError		"Unauthorized"
//	@Router		/api/users/current [get].
func (h *UserHandler) Current(_ *http.Request, user domain.User) (any, error) {
	return h.Users.Get(user), nil
}

// Update changes the name and/or password.
//
//	@Summary		Update current user
//	@Description	Only the fields present are changed. The session token stays valid.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		contactsdk.UpdateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	contactsdk.UserResponse			"Wrapped in data"
//	@Failure		400		{object}	contactsdk.APIError				"Validation error"
//	@Failure		401		{object}	contactsdk.APIError				"Unauthorized"
//	@Router			/api/users/current [patch].
func (h *UserHandler) Update(r *http.Request, user domain.User) (any, error) {
	var req service.ProfileUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	return h.Users.Update(r.Context(), user, req)
}

// Logout revokes the session token.
//
//	@Summary	Log out
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	contactsdk.UserResponse	"Wrapped in data"
//	@Failure	401	{object}	contactsdk.APIError		"Unauthorized"
//	@Router		/api/users/current [delete].
func (h *UserHandler) Logout(r *http.Request, user domain.User) (any, error) {
	return h.Users.Logout(r.Context(), user)
}
