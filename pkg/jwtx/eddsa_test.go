package jwtx_test

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/aussiebroadwan/contacts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "contacts-test"

func newEdDSASigner(t *testing.T, kid string) jwtx.Signer {
	t.Helper()
	signer, err := jwtx.GenerateSignerEdDSA(kid)
	require.NoError(t, err)
	return signer
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer := newEdDSASigner(t, "contacts-ed1")
	require.NoError(t, signer.Validate())
	require.Equal(t, "EdDSA", signer.Alg())
	require.Equal(t, "contacts-ed1", signer.KID())

	claims := jwtx.NewSessionClaims("alice", "Alice", time.Hour, exampleIssuer, []string{"contacts-web"}, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	jwks := keyset.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)
	require.Equal(t, "sig", jwks.Keys[0].Use)

	got, err := jwtx.NewVerifierEdDSA(keyset, exampleIssuer, []string{"contacts-web"}).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Subject)
	require.Equal(t, claims.Username, got.Username)
	require.Equal(t, claims.Name, got.Name)
	require.Equal(t, claims.ID, got.ID)
}

func TestEdDSAVerifyFailsForWrongIssuer(t *testing.T) {
	signer := newEdDSASigner(t, "k1")

	token, err := signer.Sign(jwtx.NewSessionClaims("alice", "", time.Minute, exampleIssuer, nil, time.Now().UTC()))
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	_, err = jwtx.NewVerifierEdDSA(keyset, "wrong-issuer", nil).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestEdDSAVerifyFailsForUnknownKey(t *testing.T) {
	signer1 := newEdDSASigner(t, "key1")
	signer2 := newEdDSASigner(t, "key2")

	token, err := signer1.Sign(jwtx.NewSessionClaims("alice", "", time.Minute, exampleIssuer, nil, time.Now().UTC()))
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer2))

	_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer, nil).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrNoKey)
}

func TestEdDSAVerifyFailsForHS256Token(t *testing.T) {
	hs, err := jwtx.NewSignerHS256("shared-kid", testSecret)
	require.NoError(t, err)

	token, err := hs.Sign(jwtx.NewSessionClaims("alice", "", time.Minute, exampleIssuer, nil, time.Now().UTC()))
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(newEdDSASigner(t, "shared-kid")))

	_, err = jwtx.NewVerifierEdDSA(keyset, exampleIssuer, nil).Verify(token)
	require.Error(t, err)
}

func TestNewSignerEdDSA(t *testing.T) {
	_, key, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA("kid", key)
	require.NoError(t, err)

	jwk, ok := signer.PublicJWK()
	require.True(t, ok)
	require.Equal(t, jwtx.NewEd25519JWK("kid", "sig", "EdDSA", key.Public().(ed25519.PublicKey)), jwk)

	_, err = jwtx.NewSignerEdDSA("kid", ed25519.PrivateKey("short"))
	require.ErrorContains(t, err, "invalid Ed25519 private key size")
}

func TestEdDSACommonVerifierAdapter(t *testing.T) {
	signer := newEdDSASigner(t, "contacts-ed1")

	claims := jwtx.NewSessionClaims("bob", "Bob", time.Minute, exampleIssuer, nil, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	got, err := jwtx.NewCommonEdDSA(keyset, exampleIssuer, nil).Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Username, got.Username)
	require.Equal(t, claims.Name, got.Name)
}
