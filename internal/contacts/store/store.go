package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this and expose sub-repositories so a transaction can
// hand out the same repos bound to the transaction.
type Store interface {
	Users() Users
	Contacts() Contacts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByUsername returns ErrNotFound when no user has that username.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByToken looks up the user whose current token is exactly token.
	GetUserByToken(ctx context.Context, token string) (domain.User, error)

	// CountByUsername is 0 or 1 since username is the primary key.
	CountByUsername(ctx context.Context, username string) (int64, error)

	// CreateUser inserts a new user. Returns ErrAlreadyExists on a duplicate username.
	CreateUser(ctx context.Context, u domain.User) error

	UpdateName(ctx context.Context, username, name string) error
	UpdatePasswordHash(ctx context.Context, username, hash string) error

	// SetToken replaces the user's current token.
	SetToken(ctx context.Context, username, token string, expiresAt time.Time) error

	// ClearToken removes the user's current token (logout).
	ClearToken(ctx context.Context, username string) error

	// ClearExpiredTokens removes tokens whose expiry is before now and
	// reports how many users were affected.
	ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

type Contacts interface {
	// CreateContact inserts c and returns it with its generated id.
	CreateContact(ctx context.Context, c domain.Contact) (domain.Contact, error)

	// GetContact returns ErrNotFound unless a contact with id is owned by username.
	GetContact(ctx context.Context, username string, id int64) (domain.Contact, error)

	// UpdateContact applies the non-nil fields of patch to the contact owned
	// by username and returns the updated row.
	UpdateContact(ctx context.Context, username string, id int64, patch domain.ContactPatch) (domain.Contact, error)

	// DeleteContact removes the contact owned by username.
	DeleteContact(ctx context.Context, username string, id int64) error
}
