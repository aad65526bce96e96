package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	for _, size := range []int{KeyIDSize, SecretSize} {
		s, err := RandomString(size)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(s)
		require.NoError(t, err)
		require.Len(t, raw, size)
	}

	seen := make(map[string]struct{})
	for range 50 {
		s, err := RandomString(SecretSize)
		require.NoError(t, err)
		require.NotContains(t, seen, s)
		seen[s] = struct{}{}
	}

	_, err := RandomString(0)
	require.Error(t, err)
}

func TestFingerprintToken(t *testing.T) {
	token := "eyJhbGciOiJIUzI1NiJ9.eyJ1c2VybmFtZSI6ImFsaWNlIn0.c2ln"

	fp := FingerprintToken(token)
	require.Len(t, fp, 16)
	require.Equal(t, fp, FingerprintToken(token))
	require.NotEqual(t, fp, FingerprintToken(token+"x"))
	require.NotContains(t, token, fp)
}
