package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/contacts/pkg/slogx"
)

// Principal is anything that can be authenticated from a bearer token.
type Principal interface {
	Subject() string
}

// Authenticator resolves a raw bearer token into a principal.
type Authenticator[T Principal] func(ctx context.Context, token string) (T, error)

// BearerToken extracts the token from the Authorization header. Both
// "Bearer <token>" and a bare "<token>" are accepted.
func BearerToken(r *http.Request) string {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return authz
}

// AuthnMiddleware authenticates the request with authn and places the
// principal in the request context. Failures are answered by unauthorized,
// or by a bare RFC 6750 challenge when it is nil.
func AuthnMiddleware[T Principal](authn Authenticator[T], unauthorized http.Handler) Middleware {
	if unauthorized == nil {
		unauthorized = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeBearerError(w, "invalid or missing token")
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := BearerToken(r)
			if raw == "" {
				unauthorized.ServeHTTP(w, r)
				return
			}

			p, err := authn(ctx, raw)
			if err != nil {
				log.Debug("authentication failed", "err", err)
				unauthorized.ServeHTTP(w, r)
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.WithContext(ctx, log.With("subject", p.Subject()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}

// SetBearerChallenge adds the RFC 6750 challenge header without writing a body.
func SetBearerChallenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
}
