package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Sizes in bytes of random material, before encoding.
const (
	SecretSize = 32 // HS256 signing secrets
	KeyIDSize  = 12 // kid header values
)

// RandomString returns size random bytes encoded as unpadded base64url.
func RandomString(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken tags a bearer token for log lines. The tag is 16
// characters of its SHA-256 digest and cannot be turned back into the token.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:12])
}
