package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for every stored password hash.
const BcryptCost = 10

var ErrPasswordMismatch = errors.New("password does not match")

// prehash binds the password to the pepper and keeps bcrypt's input under
// its 72 byte limit. The result is 44 ASCII bytes.
func prehash(password string) []byte {
	mac := hmac.New(sha256.New, []byte(GetPepper()))
	mac.Write([]byte(password))
	sum := mac.Sum(nil)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum)
	return out
}

// HashPassword returns a bcrypt hash of the peppered password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a hash produced by
// HashPassword. It returns ErrPasswordMismatch when they differ.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), prehash(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	if err != nil {
		return fmt.Errorf("invalid hash: %w", err)
	}
	return nil
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// EqualizeTiming performs a bcrypt comparison against a throwaway hash. Call
// it when the account being authenticated does not exist so the response
// takes as long as a real password check.
func EqualizeTiming(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), BcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, prehash(password))
}

