package jwtx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates JWTs signed with one of a set of shared secrets,
// selected by the "kid" header.
type HS256Verifier struct {
	mu      sync.RWMutex
	secrets map[string][]byte
	issuer  string
	aud     []string
}

// NewVerifierHS256 creates an empty HS256 verifier. Secrets are registered
// with Add.
func NewVerifierHS256(issuer string, aud []string) *HS256Verifier {
	return &HS256Verifier{
		secrets: make(map[string][]byte),
		issuer:  issuer,
		aud:     aud,
	}
}

// Add registers the secret for kid.
func (v *HS256Verifier) Add(kid string, secret []byte) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.secrets[kid] = append([]byte(nil), secret...)
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("jwtx: missing kid")
		}

		v.mu.RLock()
		secret, ok := v.secrets[kid]
		v.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("jwtx: unknown kid %q: %w", kid, ErrNoKey)
		}
		return secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, errors.New("jwtx: invalid token claims")
	}

	if err := claims.validate(v.issuer, v.aud); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
