package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
	"github.com/aussiebroadwan/contacts/internal/contacts/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByToken(ctx context.Context, token string) (domain.User, error) {
	row, err := r.q.GetUserByToken(ctx, sql.NullString{String: token, Valid: true})
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CountByUsername(ctx context.Context, username string) (int64, error) {
	return r.q.CountUsersByUsername(ctx, username)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdateName(ctx context.Context, username, name string) error {
	return affected(r.q.UpdateUserName(ctx, gen.UpdateUserNameParams{
		Name:     name,
		Username: username,
	}))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	return affected(r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		PasswordHash: hash,
		Username:     username,
	}))
}

func (r *usersRepo) SetToken(ctx context.Context, username, token string, expiresAt time.Time) error {
	n, err := r.q.SetUserToken(ctx, gen.SetUserTokenParams{
		Token:          sql.NullString{String: token, Valid: true},
		TokenExpiresAt: sql.NullInt64{Int64: expiresAt.Unix(), Valid: true},
		Username:       username,
	})
	return affected(n, mapConstraint(err))
}

func (r *usersRepo) ClearToken(ctx context.Context, username string) error {
	return affected(r.q.ClearUserToken(ctx, username))
}

func (r *usersRepo) ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.q.ClearExpiredUserTokens(ctx, sql.NullInt64{Int64: now.Unix(), Valid: true})
}
