package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/contacts/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewSessionClaims(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := jwtx.NewSessionClaims("alice", "Alice", jwtx.DefaultTokenTTL, "contacts", nil, now)

	require.Equal(t, "alice", c.Subject)
	require.Equal(t, "alice", c.Username)
	require.Equal(t, "Alice", c.Name)
	require.Equal(t, "contacts", c.Issuer)
	require.Equal(t, now, c.IssuedAt.Time)
	require.Equal(t, now.Add(time.Hour), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID)

	again := jwtx.NewSessionClaims("alice", "Alice", jwtx.DefaultTokenTTL, "contacts", nil, now)
	require.NotEqual(t, c.ID, again.ID, "two logins in the same second get distinct tokens")
}

func TestValidateIssuer(t *testing.T) {
	c := jwtx.NewSessionClaims("alice", "", time.Hour, "contacts", nil, time.Now())

	require.NoError(t, c.ValidateIssuer("contacts"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("another-deployment"), jwtx.ErrIssuer)
}

func TestValidateAudience(t *testing.T) {
	c := jwtx.NewSessionClaims("alice", "", time.Hour, "contacts", []string{"contacts-web", "contacts-cli"}, time.Now())

	require.NoError(t, c.ValidateAudience([]string{"contacts-cli"}))
	require.NoError(t, c.ValidateAudience(nil))
	require.ErrorIs(t, c.ValidateAudience([]string{"billing"}), jwtx.ErrAudience)
}

func TestValidateExpiry(t *testing.T) {
	tests := []struct {
		name   string
		issued time.Time
		ttl    time.Duration
		want   error
	}{
		{"fresh session", time.Now(), time.Hour, nil},
		{"session past its hour", time.Now().Add(-2 * time.Hour), time.Hour, jwtx.ErrExpired},
		{"issued in the future", time.Now().Add(time.Hour), time.Hour, jwtx.ErrNotYetValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := jwtx.NewSessionClaims("alice", "", tt.ttl, "contacts", nil, tt.issued)
			err := c.ValidateExpiry()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("no exp or nbf", func(t *testing.T) {
		require.NoError(t, (&jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{}}).ValidateExpiry())
	})
}
