package jwtx

import (
	"crypto/ed25519"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeySet_EmptyJWKSEncodesKeysArray(t *testing.T) {
	b, err := json.Marshal(NewKeySet().PublicJWKS())
	require.NoError(t, err)
	require.JSONEq(t, `{"keys":[]}`, string(b))
}

func TestKeySet_AddSigner(t *testing.T) {
	ks := NewKeySet()
	require.False(t, ks.IsReady())

	signer, err := GenerateSignerEdDSA("contacts-ed1")
	require.NoError(t, err)
	require.NoError(t, ks.AddSigner(signer))
	require.True(t, ks.IsReady())

	got, err := ks.Get("contacts-ed1")
	require.NoError(t, err)
	require.Equal(t, signer.(*EdDSASigner).key.Public(), got)

	_, err = ks.Get("missing")
	require.ErrorIs(t, err, ErrNoKey)

	hs, err := NewSignerHS256("hs", []byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	require.Error(t, ks.AddSigner(hs), "HS256 secrets are never published")
	require.Len(t, ks.PublicJWKS().Keys, 1)
}

func TestParseJWKToKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	key, err := parseJWKToKey(NewEd25519JWK("k", "sig", "EdDSA", pub))
	require.NoError(t, err)
	require.Equal(t, pub, key)

	tests := []struct {
		name string
		jwk  JWK
	}{
		{"unsupported kty", JWK{Kty: "RSA"}},
		{"unsupported curve", JWK{Kty: "OKP", Crv: "X25519"}},
		{"bad base64", JWK{Kty: "OKP", Crv: "Ed25519", X: "!!!"}},
		{"short key", JWK{Kty: "OKP", Crv: "Ed25519", X: "AAAA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseJWKToKey(tt.jwk)
			require.Error(t, err)
		})
	}
}
