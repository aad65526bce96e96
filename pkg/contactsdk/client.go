package contactsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the contacts service. It provides the
// unauthenticated operations and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with a 10 second request timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	user, err := call[UserResponse](ctx, c, http.MethodPost, "/api/users", "", req)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates with username and password and returns a Session
// holding the issued token.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := call[UserResponse](ctx, c, http.MethodPost, "/api/users/login", "",
		LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	return c.NewSession(user.Token), nil
}

// NewSession wraps a token obtained earlier, for example one stored by the
// caller between runs.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetJWKS retrieves the key set for verifying EdDSA session tokens.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", "", nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON(resp, &jwks); err != nil {
		return nil, err
	}
	return &jwks, nil
}
