package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
	"github.com/aussiebroadwan/contacts/internal/contacts/store/drivers/sqlite"
	"github.com/aussiebroadwan/contacts/internal/contacts/validate"
	"github.com/aussiebroadwan/contacts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "contacts-test"

type testEnv struct {
	store    *sqlite.Store
	users    *UserService
	sessions *SessionService
	contacts *ContactService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmHS256,
		Issuer:    testIssuer,
	})
	require.NoError(t, err)

	return &testEnv{
		store: st,
		users: &UserService{
			Store:      st,
			KeyManager: km,
			Issuer:     testIssuer,
			TokenTTL:   time.Hour,
		},
		sessions: &SessionService{Store: st, Verifier: km.Verifier},
		contacts: &ContactService{Store: st},
	}
}

// login registers (if needed) and logs a user in, returning the resolved user.
func (e *testEnv) login(t *testing.T, username string) (domain.User, string) {
	t.Helper()
	ctx := context.Background()

	_, err := e.users.Register(ctx, RegisterRequest{Username: username, Password: "secret", Name: username + " name"})
	if err != nil {
		require.ErrorIs(t, err, ErrUsernameTaken)
	}

	resp, err := e.users.Login(ctx, LoginRequest{Username: username, Password: "secret"})
	require.NoError(t, err)

	user, err := e.sessions.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	return user, resp.Token
}

func ptr(s string) *string { return &s }

func TestUserService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.users.Register(ctx, RegisterRequest{Username: "alice", Password: "secret", Name: "Alice"})
	require.NoError(t, err)
	require.Equal(t, UserResponse{Username: "alice", Name: "Alice"}, resp)

	stored, err := env.store.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotEqual(t, "secret", stored.PasswordHash)
	require.Nil(t, stored.Token)

	t.Run("duplicate username leaves the first user alone", func(t *testing.T) {
		_, err := env.users.Register(ctx, RegisterRequest{Username: "alice", Password: "other", Name: "Other"})
		require.ErrorIs(t, err, ErrUsernameTaken)

		again, err := env.store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, "Alice", again.Name)
		require.Equal(t, stored.PasswordHash, again.PasswordHash)

		_, err = env.users.Login(ctx, LoginRequest{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		_, err = env.users.Login(ctx, LoginRequest{Username: "alice", Password: "other"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := env.users.Register(ctx, RegisterRequest{Username: "", Password: "x", Name: "X"})
		var verr *validate.Error
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "username")
	})

	t.Run("rejected registration stores nothing", func(t *testing.T) {
		_, err := env.users.Register(ctx, RegisterRequest{Username: "carol", Password: strings.Repeat("p", 101), Name: "Carol"})
		var verr *validate.Error
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "password")

		n, err := env.store.Users().CountByUsername(ctx, "carol")
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func TestUserService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, RegisterRequest{Username: "bob", Password: "hunter2", Name: "Bob"})
	require.NoError(t, err)

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		_, errWrong := env.users.Login(ctx, LoginRequest{Username: "bob", Password: "nope"})
		_, errUnknown := env.users.Login(ctx, LoginRequest{Username: "nobody", Password: "nope"})
		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		require.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("success stores the token", func(t *testing.T) {
		resp, err := env.users.Login(ctx, LoginRequest{Username: "bob", Password: "hunter2"})
		require.NoError(t, err)
		require.Equal(t, "bob", resp.Username)
		require.Equal(t, "Bob", resp.Name)
		require.NotEmpty(t, resp.Token)

		stored, err := env.store.Users().GetUserByUsername(ctx, "bob")
		require.NoError(t, err)
		require.NotNil(t, stored.Token)
		require.Equal(t, resp.Token, *stored.Token)
		require.NotNil(t, stored.TokenExpiresAt)
		require.WithinDuration(t, time.Now().Add(time.Hour), *stored.TokenExpiresAt, 5*time.Second)
	})

	t.Run("new login supersedes old token", func(t *testing.T) {
		first, err := env.users.Login(ctx, LoginRequest{Username: "bob", Password: "hunter2"})
		require.NoError(t, err)
		second, err := env.users.Login(ctx, LoginRequest{Username: "bob", Password: "hunter2"})
		require.NoError(t, err)
		require.NotEqual(t, first.Token, second.Token)

		_, err = env.sessions.Authenticate(ctx, first.Token)
		require.ErrorIs(t, err, ErrUnauthorized)
		_, err = env.sessions.Authenticate(ctx, second.Token)
		require.NoError(t, err)
	})
}

func TestUserService_UpdateAndLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, token := env.login(t, "carol")

	require.Equal(t, UserResponse{Username: "carol", Name: "carol name"}, env.users.Get(user))

	t.Run("empty update is a no-op", func(t *testing.T) {
		resp, err := env.users.Update(ctx, user, ProfileUpdateRequest{})
		require.NoError(t, err)
		require.Equal(t, "carol name", resp.Name)
	})

	t.Run("rename", func(t *testing.T) {
		resp, err := env.users.Update(ctx, user, ProfileUpdateRequest{Name: ptr("Carol")})
		require.NoError(t, err)
		require.Equal(t, UserResponse{Username: "carol", Name: "Carol"}, resp)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := env.users.Update(ctx, user, ProfileUpdateRequest{Name: ptr("")})
		var verr *validate.Error
		require.ErrorAs(t, err, &verr)
	})

	t.Run("password change keeps the current token", func(t *testing.T) {
		_, err := env.users.Update(ctx, user, ProfileUpdateRequest{Password: ptr("new-secret")})
		require.NoError(t, err)

		_, err = env.sessions.Authenticate(ctx, token)
		require.NoError(t, err)

		_, err = env.users.Login(ctx, LoginRequest{Username: "carol", Password: "secret"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = env.users.Login(ctx, LoginRequest{Username: "carol", Password: "new-secret"})
		require.NoError(t, err)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		user, token := env.login(t, "dave")

		resp, err := env.users.Logout(ctx, user)
		require.NoError(t, err)
		require.Equal(t, "dave", resp.Username)

		_, err = env.sessions.Authenticate(ctx, token)
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestSessionService_Authenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, token := env.login(t, "erin")

	t.Run("empty and garbage tokens", func(t *testing.T) {
		_, err := env.sessions.Authenticate(ctx, "")
		require.ErrorIs(t, err, ErrUnauthorized)
		_, err = env.sessions.Authenticate(ctx, "not-a-jwt")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("token signed by another key", func(t *testing.T) {
		other, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Algorithm: jwtx.AlgorithmHS256, Issuer: testIssuer})
		require.NoError(t, err)
		forged, err := other.Sign(jwtx.NewSessionClaims("erin", "erin name", time.Hour, testIssuer, nil, time.Now()))
		require.NoError(t, err)

		_, err = env.sessions.Authenticate(ctx, forged)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("stored expiry is enforced", func(t *testing.T) {
		s := &SessionService{
			Store:    env.store,
			Verifier: env.sessions.Verifier,
			Now:      func() time.Time { return time.Now().Add(2 * time.Hour) },
		}
		_, err := s.Authenticate(ctx, token)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("valid current token", func(t *testing.T) {
		user, err := env.sessions.Authenticate(ctx, token)
		require.NoError(t, err)
		require.Equal(t, "erin", user.Username)
	})
}

func TestContactService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := env.login(t, "alice")
	bob, _ := env.login(t, "bob")

	created, err := env.contacts.Create(ctx, alice, ContactCreateRequest{
		FirstName: "Ada",
		LastName:  ptr("Lovelace"),
		Email:     ptr("ada@example.com"),
	})
	require.NoError(t, err)
	require.Positive(t, created.ID)
	require.Equal(t, "Ada", created.FirstName)
	require.Equal(t, "Lovelace", *created.LastName)
	require.Nil(t, created.Phone)

	t.Run("create validation", func(t *testing.T) {
		for _, email := range []string{"not-an-email", ""} {
			_, err := env.contacts.Create(ctx, alice, ContactCreateRequest{FirstName: "X", Email: ptr(email)})
			var verr *validate.Error
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, "email")
		}
	})

	t.Run("owner can read", func(t *testing.T) {
		got, err := env.contacts.Get(ctx, alice, created.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)
	})

	t.Run("other users see not found", func(t *testing.T) {
		_, err := env.contacts.Get(ctx, bob, created.ID)
		require.ErrorIs(t, err, ErrContactNotFound)

		_, err = env.contacts.Update(ctx, bob, ContactUpdateRequest{ID: created.ID, FirstName: ptr("Mallory")})
		require.ErrorIs(t, err, ErrContactNotFound)

		_, err = env.contacts.Remove(ctx, bob, created.ID)
		require.ErrorIs(t, err, ErrContactNotFound)
	})

	t.Run("missing contact", func(t *testing.T) {
		_, err := env.contacts.Get(ctx, alice, 99999)
		require.ErrorIs(t, err, ErrContactNotFound)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := env.contacts.Update(ctx, alice, ContactUpdateRequest{ID: created.ID, Phone: ptr("555-0100")})
		require.NoError(t, err)
		require.Equal(t, created.ID, updated.ID)
		require.Equal(t, "Ada", updated.FirstName)
		require.Equal(t, "Lovelace", *updated.LastName)
		require.Equal(t, "555-0100", *updated.Phone)
	})

	t.Run("update validation", func(t *testing.T) {
		_, err := env.contacts.Update(ctx, alice, ContactUpdateRequest{ID: created.ID, FirstName: ptr("")})
		var verr *validate.Error
		require.ErrorAs(t, err, &verr)

		_, err = env.contacts.Update(ctx, alice, ContactUpdateRequest{ID: 0})
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "id")

		_, err = env.contacts.Update(ctx, alice, ContactUpdateRequest{ID: created.ID, Email: ptr("")})
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "email")

		got, err := env.contacts.Get(ctx, alice, created.ID)
		require.NoError(t, err)
		require.Equal(t, "ada@example.com", *got.Email, "a rejected update keeps the stored email")
	})

	t.Run("remove returns the deleted contact", func(t *testing.T) {
		removed, err := env.contacts.Remove(ctx, alice, created.ID)
		require.NoError(t, err)
		require.Equal(t, created.ID, removed.ID)

		_, err = env.contacts.Get(ctx, alice, created.ID)
		require.ErrorIs(t, err, ErrContactNotFound)
	})
}

func TestHousekeepingService_ClearExpiredTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "frank")

	hk := NewHousekeepingService(env.store, nil, 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Logger = discardLogger()

	n, err := hk.ClearExpiredTokens(ctx, time.Now())
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = hk.ClearExpiredTokens(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	stored, err := env.store.Users().GetUserByUsername(ctx, "frank")
	require.NoError(t, err)
	require.Nil(t, stored.Token)
}

func TestHousekeepingService_StartStop(t *testing.T) {
	env := newTestEnv(t)
	hk := NewHousekeepingService(env.store, discardLogger(), time.Millisecond)
	hk.Start()
	time.Sleep(5 * time.Millisecond)
	hk.Stop()
}
