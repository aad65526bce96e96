package contactsdk

import "github.com/aussiebroadwan/contacts/pkg/jwtx"

// ============================================================================
// User Types
// ============================================================================

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret"`
	Name     string `json:"name" example:"Alice"`
}

type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret"`
}

// UpdateProfileRequest changes the display name and/or password. Nil fields
// are left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" example:"Alice Liddell"`
	Password *string `json:"password,omitempty"`
}

// UserResponse is the public view of a user. Token is only set by login.
type UserResponse struct {
	Username string `json:"username" example:"alice"`
	Name     string `json:"name" example:"Alice"`
	Token    string `json:"token,omitempty"`
}

// ============================================================================
// Contact Types
// ============================================================================

type CreateContactRequest struct {
	FirstName string  `json:"first_name" example:"Ada"`
	LastName  *string `json:"last_name,omitempty" example:"Lovelace"`
	Email     *string `json:"email,omitempty" example:"ada@example.com"`
	Phone     *string `json:"phone,omitempty" example:"555-0100"`
}

// UpdateContactRequest is a partial update. Nil fields are left unchanged.
type UpdateContactRequest struct {
	FirstName *string `json:"first_name,omitempty" example:"Ada"`
	LastName  *string `json:"last_name,omitempty" example:"Lovelace"`
	Email     *string `json:"email,omitempty" example:"ada@example.com"`
	Phone     *string `json:"phone,omitempty" example:"555-0100"`
}

type ContactResponse struct {
	ID        int64   `json:"id" example:"1"`
	FirstName string  `json:"first_name" example:"Ada"`
	LastName  *string `json:"last_name" example:"Lovelace"`
	Email     *string `json:"email" example:"ada@example.com"`
	Phone     *string `json:"phone" example:"555-0100"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse is the public key set used to verify EdDSA session tokens.
// It is empty when the service signs with HS256.
type JWKSResponse jwtx.JWKS

// envelope is the {"data": ...} wrapper of every successful response.
type envelope[T any] struct {
	Data T `json:"data"`
}

// String returns a pointer to s, for optional request fields.
func String(s string) *string { return &s }
