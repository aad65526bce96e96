package postgres

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
)

const contactColumns = `id, username, first_name, last_name, email, phone, created_at, updated_at`

type contactsRepo struct {
	db dbtx
}

func scanContact(row *sql.Row) (domain.Contact, error) {
	var (
		c                      domain.Contact
		lastName, email, phone sql.NullString
	)
	err := row.Scan(&c.ID, &c.Username, &c.FirstName, &lastName, &email, &phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Contact{}, mapNotFound(err)
	}
	c.LastName = stringPtr(lastName)
	c.Email = stringPtr(email)
	c.Phone = stringPtr(phone)
	return c, nil
}

func (r *contactsRepo) CreateContact(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	return scanContact(r.db.QueryRowContext(ctx,
		`INSERT INTO contacts (username, first_name, last_name, email, phone)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+contactColumns,
		c.Username, c.FirstName, nullString(c.LastName), nullString(c.Email), nullString(c.Phone)))
}

func (r *contactsRepo) GetContact(ctx context.Context, username string, id int64) (domain.Contact, error) {
	return scanContact(r.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND username = $2`, id, username))
}

func (r *contactsRepo) UpdateContact(
	ctx context.Context,
	username string,
	id int64,
	patch domain.ContactPatch,
) (domain.Contact, error) {
	return scanContact(r.db.QueryRowContext(ctx,
		`UPDATE contacts SET
		     first_name = COALESCE($1, first_name),
		     last_name  = COALESCE($2, last_name),
		     email      = COALESCE($3, email),
		     phone      = COALESCE($4, phone),
		     updated_at = now()
		 WHERE id = $5 AND username = $6
		 RETURNING `+contactColumns,
		nullString(patch.FirstName), nullString(patch.LastName), nullString(patch.Email), nullString(patch.Phone),
		id, username))
}

func (r *contactsRepo) DeleteContact(ctx context.Context, username string, id int64) error {
	return affected(r.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = $1 AND username = $2`, id, username))
}
