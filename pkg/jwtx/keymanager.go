package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/contacts/pkg/cryptox"
)

// Supported JWT signing algorithms
const (
	AlgorithmHS256 = "HS256"
	AlgorithmEdDSA = "EdDSA"
)

// KeyManager manages JWT signing and verification keys for an instance.
// Keys are selected randomly for signing; every key ever added stays
// valid for verification.
type KeyManager struct {
	Verifier Verifier

	// KeySet publishes the EdDSA public keys. It stays empty for HS256.
	KeySet *KeySet

	algorithm string
	hs256     *HS256Verifier

	signers []Signer
	mu      sync.RWMutex
}

// KeyManagerOptions configures the KeyManager for a specific use case.
type KeyManagerOptions struct {
	// Algorithm specifies which signing algorithm to use: "HS256" or "EdDSA".
	Algorithm string

	// Issuer is the issuer claim (iss) that will be validated in tokens.
	Issuer string

	// Audience is the list of audience values (aud) that will be validated.
	// Empty slice means no audience validation.
	Audience []string

	// Secret is the HS256 shared secret. When set, it is the only signing
	// key and NumKeys is ignored, so tokens survive a restart. When empty,
	// random secrets are generated.
	Secret []byte

	// NumKeys specifies how many signing keys to generate. Defaults to 1,
	// maximum is 10.
	NumKeys int
}

// NewEphemeralKeyManager creates a new KeyManager. Generated keys only
// exist in memory, so tokens signed with them become invalid when the
// service restarts.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 1
	}
	if numKeys > 10 {
		numKeys = 10
	}

	km := &KeyManager{
		KeySet:    NewKeySet(),
		algorithm: opts.Algorithm,
	}

	switch opts.Algorithm {
	case AlgorithmHS256:
		km.hs256 = NewVerifierHS256(opts.Issuer, opts.Audience)
		km.Verifier = km.hs256
	case AlgorithmEdDSA:
		km.Verifier = NewCommonEdDSA(km.KeySet, opts.Issuer, opts.Audience)
	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: HS256, EdDSA)", opts.Algorithm)
	}

	if opts.Algorithm == AlgorithmHS256 && len(opts.Secret) > 0 {
		signer, err := NewSignerHS256("contacts-hs256", opts.Secret)
		if err != nil {
			return nil, err
		}
		if err := km.AddSigner(signer); err != nil {
			return nil, err
		}
		return km, nil
	}

	for i := 0; i < numKeys; i++ {
		keyID, err := generateRandomKeyID()
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate key ID: %w", err)
		}

		signer, err := generateSigner(opts.Algorithm, keyID)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate signer %d: %w", i+1, err)
		}

		if err := km.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add signer %d: %w", i+1, err)
		}
	}

	return km, nil
}

// generateSigner creates a new signer with the specified algorithm and key ID.
func generateSigner(algorithm, keyID string) (Signer, error) {
	switch algorithm {
	case AlgorithmHS256:
		secret, err := cryptox.RandomString(cryptox.SecretSize)
		if err != nil {
			return nil, fmt.Errorf("failed to generate HS256 secret: %w", err)
		}
		return NewSignerHS256(keyID, []byte(secret))

	case AlgorithmEdDSA:
		return GenerateSignerEdDSA(keyID)

	default:
		return nil, fmt.Errorf("unsupported algorithm %q", algorithm)
	}
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string {
	return km.algorithm
}

// IsReady returns true if the KeyManager has at least one signing key.
func (km *KeyManager) IsReady() bool {
	return km.NumSigners() > 0
}

// GetSigner returns a randomly selected signer from the available signing
// keys, or nil when there are none.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	if len(km.signers) == 0 {
		return nil
	}

	if len(km.signers) == 1 {
		return km.signers[0]
	}

	idx := rand.IntN(len(km.signers))
	return km.signers[idx]
}

// Sign signs claims with one of the active keys.
func (km *KeyManager) Sign(claims Claims) (string, error) {
	signer := km.GetSigner()
	if signer == nil {
		return "", fmt.Errorf("jwtx: no signing keys loaded")
	}
	return signer.Sign(claims)
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// AddSigner adds a new signing key. The key is added to the active signers
// list and to whichever verification set matches the algorithm.
func (km *KeyManager) AddSigner(signer Signer) error {
	if signer == nil {
		return fmt.Errorf("signer cannot be nil")
	}
	if signer.Alg() != km.algorithm {
		return fmt.Errorf("signer algorithm %q does not match %q", signer.Alg(), km.algorithm)
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	switch s := signer.(type) {
	case *HS256Signer:
		km.hs256.Add(s.KID(), s.secret)
	default:
		if err := km.KeySet.AddSigner(signer); err != nil {
			return fmt.Errorf("failed to add signer to keyset: %w", err)
		}
	}

	km.signers = append(km.signers, signer)
	return nil
}

// GetSigners returns a copy of all active signing keys.
func (km *KeyManager) GetSigners() []Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	signers := make([]Signer, len(km.signers))
	copy(signers, km.signers)
	return signers
}

// generateRandomKeyID creates a random key identifier of the form
// "contacts-{random-token}".
func generateRandomKeyID() (string, error) {
	token, err := cryptox.RandomString(cryptox.KeyIDSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate random key ID: %w", err)
	}
	return fmt.Sprintf("contacts-%s", token), nil
}
