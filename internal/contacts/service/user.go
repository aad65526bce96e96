package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
	"github.com/aussiebroadwan/contacts/internal/contacts/store"
	"github.com/aussiebroadwan/contacts/internal/contacts/validate"
	"github.com/aussiebroadwan/contacts/pkg/cryptox"
	"github.com/aussiebroadwan/contacts/pkg/jwtx"
	"github.com/aussiebroadwan/contacts/pkg/slogx"
)

// UserService manages accounts and the single live session token each
// account holds.
type UserService struct {
	Store      store.Store
	KeyManager *jwtx.KeyManager
	Issuer     string
	Audience   []string
	TokenTTL   time.Duration

	// Now is used for token timestamps. Defaults to time.Now.
	Now func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *UserService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultTokenTTL
}

// Register creates a new account with no session token.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	err := validate.Check(validate.Register, validate.Fields{
		"username": req.Username,
		"password": req.Password,
		"name":     req.Name,
	})
	if err != nil {
		return UserResponse{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return UserResponse{}, err
	}

	user := domain.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Users().CountByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrUsernameTaken
		}

		// A concurrent register can still win the insert.
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return UserResponse{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("username", user.Username))
	return toUserResponse(user), nil
}

// Login verifies the credentials and issues a new session token, replacing
// any token the user held before.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (UserResponse, error) {
	l := slogx.FromContext(ctx)

	err := validate.Check(validate.Login, validate.Fields{
		"username": req.Username,
		"password": req.Password,
	})
	if err != nil {
		return UserResponse{}, err
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.EqualizeTiming(req.Password)
			l.Info("login failed", slog.String("username", req.Username))
			return UserResponse{}, ErrInvalidCredentials
		}
		return UserResponse{}, err
	}

	if err := cryptox.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login failed", slog.String("username", req.Username))
			return UserResponse{}, ErrInvalidCredentials
		}
		return UserResponse{}, err
	}

	claims := jwtx.NewSessionClaims(user.Username, user.Name, s.ttl(), s.Issuer, s.Audience, s.now())
	token, err := s.KeyManager.Sign(claims)
	if err != nil {
		return UserResponse{}, fmt.Errorf("sign session token: %w", err)
	}

	if err := s.Store.Users().SetToken(ctx, user.Username, token, claims.ExpiresAt.Time); err != nil {
		return UserResponse{}, err
	}

	l.Info("user logged in",
		slog.String("username", user.Username),
		slog.String("token_fp", cryptox.FingerprintToken(token)),
	)

	resp := toUserResponse(user)
	resp.Token = token
	return resp, nil
}

// Get projects an already authenticated user.
func (s *UserService) Get(user domain.User) UserResponse {
	return toUserResponse(user)
}

// Update applies the present fields of req. The current token stays valid
// after a password change.
func (s *UserService) Update(ctx context.Context, user domain.User, req ProfileUpdateRequest) (UserResponse, error) {
	err := validate.Check(validate.ProfileUpdate, validate.Fields{
		"name":     req.Name,
		"password": req.Password,
	})
	if err != nil {
		return UserResponse{}, err
	}

	var hash string
	if req.Password != nil {
		if hash, err = cryptox.HashPassword(*req.Password); err != nil {
			return UserResponse{}, err
		}
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if req.Name != nil {
			if err := tx.Users().UpdateName(ctx, user.Username, *req.Name); err != nil {
				return err
			}
		}
		if req.Password != nil {
			if err := tx.Users().UpdatePasswordHash(ctx, user.Username, hash); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return UserResponse{}, ErrUnauthorized
		}
		return UserResponse{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	return toUserResponse(user), nil
}

// Logout revokes the user's current token.
func (s *UserService) Logout(ctx context.Context, user domain.User) (UserResponse, error) {
	if err := s.Store.Users().ClearToken(ctx, user.Username); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return UserResponse{}, ErrUnauthorized
		}
		return UserResponse{}, err
	}

	slogx.FromContext(ctx).Info("user logged out", slog.String("username", user.Username))
	return toUserResponse(user), nil
}
