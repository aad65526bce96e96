package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/contacts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestKeyManager_SignAndVerifyRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts jwtx.KeyManagerOptions
	}{
		{"HS256 random secret", jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Issuer: exampleIssuer, NumKeys: 3}},
		{"HS256 configured secret", jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Issuer: exampleIssuer, Secret: testSecret}},
		{"EdDSA", jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: exampleIssuer, NumKeys: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewEphemeralKeyManager(tt.opts)
			require.NoError(t, err)
			require.True(t, km.IsReady())
			require.Equal(t, tt.opts.Algorithm, km.Algorithm())

			for range 5 {
				claims := jwtx.NewSessionClaims("testuser", "Test User", time.Minute, exampleIssuer, nil, time.Now())
				token, err := km.Sign(claims)
				require.NoError(t, err)

				parsed, err := km.Verifier.Verify(token)
				require.NoError(t, err)
				require.Equal(t, claims.Username, parsed.Username)
				require.Equal(t, claims.Name, parsed.Name)
			}
		})
	}
}

func TestKeyManager_ConfiguredSecretIsStable(t *testing.T) {
	opts := jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Issuer: exampleIssuer, Secret: testSecret}

	km1, err := jwtx.NewEphemeralKeyManager(opts)
	require.NoError(t, err)
	km2, err := jwtx.NewEphemeralKeyManager(opts)
	require.NoError(t, err)
	require.Equal(t, 1, km1.NumSigners())

	token, err := km1.Sign(jwtx.NewSessionClaims("alice", "", time.Minute, exampleIssuer, nil, time.Now()))
	require.NoError(t, err)

	_, err = km2.Verifier.Verify(token)
	require.NoError(t, err, "a restart with the same secret keeps tokens valid")
}

func TestKeyManager_JWKSOnlyForEdDSA(t *testing.T) {
	hs, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Issuer: exampleIssuer})
	require.NoError(t, err)
	require.Empty(t, hs.KeySet.PublicJWKS().Keys)

	ed, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: exampleIssuer, NumKeys: 2})
	require.NoError(t, err)
	require.Len(t, ed.KeySet.PublicJWKS().Keys, 2)
}

func TestNewEphemeralKeyManager_ErrorCases(t *testing.T) {
	tests := []struct {
		name        string
		opts        jwtx.KeyManagerOptions
		expectedErr string
	}{
		{
			name:        "missing Issuer",
			opts:        jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256},
			expectedErr: "Issuer is required",
		},
		{
			name:        "unsupported algorithm",
			opts:        jwtx.KeyManagerOptions{Algorithm: "RS256", Issuer: exampleIssuer},
			expectedErr: "unsupported algorithm",
		},
		{
			name:        "short secret",
			opts:        jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Issuer: exampleIssuer, Secret: []byte("short")},
			expectedErr: "at least 32 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := jwtx.NewEphemeralKeyManager(tt.opts)
			require.Error(t, err)
			require.Nil(t, km)
			require.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

// TestKeyManager_EverySignerVerifies checks that a token signed by any of
// several EdDSA keys verifies and names its key in the kid header.
func TestKeyManager_EverySignerVerifies(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: exampleIssuer, NumKeys: 3})
	require.NoError(t, err)

	signers := km.GetSigners()
	require.Len(t, signers, 3)

	kids := make(map[string]struct{})
	for _, signer := range signers {
		require.True(t, strings.HasPrefix(signer.KID(), "contacts-"))
		kids[signer.KID()] = struct{}{}

		token, err := signer.Sign(jwtx.NewSessionClaims("alice", "Alice", time.Minute, exampleIssuer, nil, time.Now()))
		require.NoError(t, err)

		claims, err := km.Verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Username)
	}
	require.Len(t, kids, 3)

	for _, jwk := range km.KeySet.PublicJWKS().Keys {
		require.Contains(t, kids, jwk.Kid)
	}
}

func TestKeyManager_AddSignerRejectsOtherAlgorithm(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmEdDSA, Issuer: exampleIssuer})
	require.NoError(t, err)

	hs, err := jwtx.NewSignerHS256("hs", testSecret)
	require.NoError(t, err)
	require.Error(t, km.AddSigner(hs))
	require.Error(t, km.AddSigner(nil))
}
