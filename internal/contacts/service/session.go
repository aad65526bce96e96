package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
	"github.com/aussiebroadwan/contacts/internal/contacts/store"
	"github.com/aussiebroadwan/contacts/pkg/cryptox"
	"github.com/aussiebroadwan/contacts/pkg/jwtx"
	"github.com/aussiebroadwan/contacts/pkg/slogx"
)

// SessionService resolves bearer tokens to users. A token must carry a valid
// signature and expiry, and must also be the user's current stored token, so
// a logged-out or superseded token is rejected.
type SessionService struct {
	Store    store.Store
	Verifier jwtx.Verifier

	Now func() time.Time
}

// Authenticate returns ErrUnauthorized for any token that does not resolve
// to a user. Store failures are returned as is.
func (s *SessionService) Authenticate(ctx context.Context, raw string) (domain.User, error) {
	if raw == "" {
		return domain.User{}, ErrUnauthorized
	}

	l := slogx.FromContext(ctx).With(slog.String("token_fp", cryptox.FingerprintToken(raw)))

	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		l.Debug("session token rejected", "error", err)
		return domain.User{}, ErrUnauthorized
	}

	user, err := s.Store.Users().GetUserByToken(ctx, raw)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Debug("session token is not current")
			return domain.User{}, ErrUnauthorized
		}
		return domain.User{}, err
	}

	if user.Username != claims.Username {
		l.Warn("session token username mismatch", slog.String("username", user.Username))
		return domain.User{}, ErrUnauthorized
	}

	if user.TokenExpiresAt != nil && !s.now().Before(*user.TokenExpiresAt) {
		return domain.User{}, ErrUnauthorized
	}

	return user, nil
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
