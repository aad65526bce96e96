package contactsdk

import (
	"context"
	"net/http"
	"strconv"
	"sync"
)

// Session performs requests on behalf of a logged-in user.
type Session struct {
	client *SDKClient

	mu    sync.RWMutex
	token string
}

// Token returns the bearer token of the session, or "" after Logout.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ============================================================================
// Users
// ============================================================================

// Current returns the logged-in user.
func (s *Session) Current(ctx context.Context) (*UserResponse, error) {
	return do[UserResponse](ctx, s, http.MethodGet, "/api/users/current", nil)
}

// UpdateProfile changes the name and/or password. The session token stays
// valid.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserResponse, error) {
	return do[UserResponse](ctx, s, http.MethodPatch, "/api/users/current", req)
}

// Logout revokes the session token. The Session is unusable afterwards.
func (s *Session) Logout(ctx context.Context) (*UserResponse, error) {
	user, err := do[UserResponse](ctx, s, http.MethodDelete, "/api/users/current", nil)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return user, nil
}

// ============================================================================
// Contacts
// ============================================================================

func (s *Session) CreateContact(ctx context.Context, req CreateContactRequest) (*ContactResponse, error) {
	return do[ContactResponse](ctx, s, http.MethodPost, "/api/contacts", req)
}

func (s *Session) GetContact(ctx context.Context, id int64) (*ContactResponse, error) {
	return do[ContactResponse](ctx, s, http.MethodGet, contactPath(id), nil)
}

// UpdateContact applies the non-nil fields of req.
func (s *Session) UpdateContact(ctx context.Context, id int64, req UpdateContactRequest) (*ContactResponse, error) {
	return do[ContactResponse](ctx, s, http.MethodPut, contactPath(id), req)
}

func (s *Session) RemoveContact(ctx context.Context, id int64) error {
	_, err := do[bool](ctx, s, http.MethodDelete, contactPath(id), nil)
	return err
}

func contactPath(id int64) string {
	return "/api/contacts/" + strconv.FormatInt(id, 10)
}

func do[T any](ctx context.Context, s *Session, method, path string, body any) (*T, error) {
	out, err := call[T](ctx, s.client, method, path, s.Token(), body)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
