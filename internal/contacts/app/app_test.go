package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/contacts/pkg/httpx"
	"github.com/aussiebroadwan/contacts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "contacts.db", cfg.DatabaseFile)
	require.Equal(t, jwtx.AlgorithmHS256, cfg.Algorithm)
	require.Equal(t, "contacts", cfg.Issuer)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Zero(t, cfg.RateLimits.Strict.Requests)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CONTACTS_DATABASE_DRIVER", "postgres")
	t.Setenv("CONTACTS_DATABASE_URL", "postgres://contacts@localhost/contacts")
	t.Setenv("CONTACTS_JWT_ALGORITHM", "EdDSA")
	t.Setenv("CONTACTS_TOKEN_TTL", "30m")
	t.Setenv("PORT", "8080")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "10")
	t.Setenv("RATELIMIT_STRICT_WINDOW_SEC", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, "postgres://contacts@localhost/contacts", cfg.DatabaseURL)
	require.Equal(t, jwtx.AlgorithmEdDSA, cfg.Algorithm)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, 8080, cfg.Port)

	strict := cfg.RateLimits.Strict.apply(httpx.StrictLimit)
	require.Equal(t, 10, strict.RequestsPerWindow)
	require.Equal(t, 30*time.Second, strict.Window)
	require.Equal(t, 5, strict.Burst)
}

func TestLoadConfigRejects(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("CONTACTS_DATABASE_DRIVER", "postgres")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "CONTACTS_DATABASE_URL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("CONTACTS_DATABASE_DRIVER", "mysql")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("CONTACTS_TOKEN_TTL", "soon")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestInitSessionKeys(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("short secret", func(t *testing.T) {
		_, err := InitSessionKeys(Config{Algorithm: jwtx.AlgorithmHS256, Issuer: "contacts", Secret: "short"}, logger)
		require.Error(t, err)
	})

	t.Run("shared secret yields one stable key", func(t *testing.T) {
		cfg := Config{Algorithm: jwtx.AlgorithmHS256, Issuer: "contacts", Secret: strings.Repeat("s", 32), NumKeys: 3}
		a, err := InitSessionKeys(cfg, logger)
		require.NoError(t, err)
		b, err := InitSessionKeys(cfg, logger)
		require.NoError(t, err)
		require.Equal(t, 1, a.NumSigners())

		token, err := a.Sign(jwtx.NewSessionClaims("alice", "Alice", time.Hour, "contacts", nil, time.Now()))
		require.NoError(t, err)
		claims, err := b.Verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Username)
	})

	t.Run("eddsa", func(t *testing.T) {
		km, err := InitSessionKeys(Config{Algorithm: jwtx.AlgorithmEdDSA, Issuer: "contacts", NumKeys: 2}, logger)
		require.NoError(t, err)
		require.Len(t, km.KeySet.PublicJWKS().Keys, 2)
	})
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	dir := t.TempDir()

	app, err := New(Config{
		DatabaseDriver:       DriverSQLite,
		DatabaseFile:         filepath.Join(dir, "contacts.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		Issuer:               "contacts",
		Algorithm:            jwtx.AlgorithmHS256,
		TokenTTL:             time.Hour,
		LogLevel:             "error",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })
	return app
}

func TestApplicationServesRoutes(t *testing.T) {
	app := newTestApp(t)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
