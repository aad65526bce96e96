package jwtx

import "crypto/ed25519"

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)

	// PublicJWK returns the verification key for publishing. Symmetric
	// signers return false since their key must never leave the process.
	PublicJWK() (JWK, bool)
	Validate() error
}

// NewSignerEdDSA wraps an existing Ed25519 private key.
func NewSignerEdDSA(kid string, key ed25519.PrivateKey) (Signer, error) {
	return newEdDSASigner(kid, key)
}

// NewSignerHS256 creates an HMAC-SHA256 signer from a shared secret.
func NewSignerHS256(kid string, secret []byte) (Signer, error) {
	return newHS256Signer(kid, secret)
}
