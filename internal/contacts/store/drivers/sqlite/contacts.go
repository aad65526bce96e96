package sqlite

import (
	"context"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
	"github.com/aussiebroadwan/contacts/internal/contacts/store/drivers/sqlite/gen"
)

type contactsRepo struct {
	q *gen.Queries
}

func (r *contactsRepo) CreateContact(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	id, err := r.q.CreateContact(ctx, gen.CreateContactParams{
		Username:  c.Username,
		FirstName: c.FirstName,
		LastName:  mapOptionalString(c.LastName),
		Email:     mapOptionalString(c.Email),
		Phone:     mapOptionalString(c.Phone),
	})
	if err != nil {
		return domain.Contact{}, err
	}
	return r.GetContact(ctx, c.Username, id)
}

func (r *contactsRepo) GetContact(ctx context.Context, username string, id int64) (domain.Contact, error) {
	row, err := r.q.GetContact(ctx, gen.GetContactParams{ID: id, Username: username})
	if err != nil {
		return domain.Contact{}, mapNotFound(err)
	}
	return mapContact(row), nil
}

func (r *contactsRepo) UpdateContact(
	ctx context.Context,
	username string,
	id int64,
	patch domain.ContactPatch,
) (domain.Contact, error) {
	err := affected(r.q.UpdateContact(ctx, gen.UpdateContactParams{
		FirstName: mapOptionalString(patch.FirstName),
		LastName:  mapOptionalString(patch.LastName),
		Email:     mapOptionalString(patch.Email),
		Phone:     mapOptionalString(patch.Phone),
		ID:        id,
		Username:  username,
	}))
	if err != nil {
		return domain.Contact{}, err
	}
	return r.GetContact(ctx, username, id)
}

func (r *contactsRepo) DeleteContact(ctx context.Context, username string, id int64) error {
	return affected(r.q.DeleteContact(ctx, gen.DeleteContactParams{ID: id, Username: username}))
}
