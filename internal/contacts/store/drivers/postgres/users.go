package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
)

const userColumns = `username, name, password_hash, token, token_expires_at, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u       domain.User
		token   sql.NullString
		expires sql.NullTime
	)
	if err := row.Scan(&u.Username, &u.Name, &u.PasswordHash, &token, &expires, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Token = stringPtr(token)
	if expires.Valid {
		t := expires.Time
		u.TokenExpiresAt = &t
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *usersRepo) GetUserByToken(ctx context.Context, token string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE token = $1`, token))
}

func (r *usersRepo) CountByUsername(ctx context.Context, username string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = $1`, username).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, name, password_hash) VALUES ($1, $2, $3)`,
		u.Username, u.Name, u.PasswordHash)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *usersRepo) UpdateName(ctx context.Context, username, name string) error {
	return affected(r.db.ExecContext(ctx,
		`UPDATE users SET name = $1, updated_at = now() WHERE username = $2`, name, username))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	return affected(r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE username = $2`, hash, username))
}

func (r *usersRepo) SetToken(ctx context.Context, username, token string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET token = $1, token_expires_at = $2, updated_at = now() WHERE username = $3`,
		token, expiresAt, username)
	if err != nil {
		return mapConstraint(err)
	}
	return affected(res, nil)
}

func (r *usersRepo) ClearToken(ctx context.Context, username string) error {
	return affected(r.db.ExecContext(ctx,
		`UPDATE users SET token = NULL, token_expires_at = NULL, updated_at = now() WHERE username = $1`, username))
}

func (r *usersRepo) ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET token = NULL, token_expires_at = NULL
		 WHERE token IS NOT NULL AND token_expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}
