package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
	"github.com/aussiebroadwan/contacts/internal/contacts/store"
	"github.com/aussiebroadwan/contacts/internal/contacts/validate"
	"github.com/aussiebroadwan/contacts/pkg/slogx"
)

// ContactService is the per-user address book. Every lookup is scoped by the
// caller's username; a contact owned by someone else is reported exactly like
// a missing one.
type ContactService struct {
	Store store.Store
}

func (s *ContactService) Create(ctx context.Context, user domain.User, req ContactCreateRequest) (ContactResponse, error) {
	err := validate.Check(validate.ContactCreate, validate.Fields{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"phone":      req.Phone,
	})
	if err != nil {
		return ContactResponse{}, err
	}

	c, err := s.Store.Contacts().CreateContact(ctx, domain.Contact{
		Username:  user.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return ContactResponse{}, err
	}

	slogx.FromContext(ctx).Debug("contact created", slog.Int64("contact_id", c.ID))
	return toContactResponse(c), nil
}

func (s *ContactService) Get(ctx context.Context, user domain.User, id int64) (ContactResponse, error) {
	c, err := s.Store.Contacts().GetContact(ctx, user.Username, id)
	if err != nil {
		return ContactResponse{}, mapContactErr(err)
	}
	return toContactResponse(c), nil
}

// Update changes the present fields of the contact. The id and owner never
// change.
func (s *ContactService) Update(ctx context.Context, user domain.User, req ContactUpdateRequest) (ContactResponse, error) {
	err := validate.Check(validate.ContactUpdate, validate.Fields{
		"id":         req.ID,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"phone":      req.Phone,
	})
	if err != nil {
		return ContactResponse{}, err
	}

	var updated domain.Contact
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Contacts().GetContact(ctx, user.Username, req.ID); err != nil {
			return err
		}

		c, err := tx.Contacts().UpdateContact(ctx, user.Username, req.ID, domain.ContactPatch{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		})
		if err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return ContactResponse{}, mapContactErr(err)
	}

	return toContactResponse(updated), nil
}

// Remove deletes the contact and returns its last state.
func (s *ContactService) Remove(ctx context.Context, user domain.User, id int64) (ContactResponse, error) {
	var removed domain.Contact
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Contacts().GetContact(ctx, user.Username, id)
		if err != nil {
			return err
		}
		if err := tx.Contacts().DeleteContact(ctx, user.Username, id); err != nil {
			return err
		}
		removed = c
		return nil
	})
	if err != nil {
		return ContactResponse{}, mapContactErr(err)
	}

	slogx.FromContext(ctx).Debug("contact removed", slog.Int64("contact_id", id))
	return toContactResponse(removed), nil
}

func mapContactErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrContactNotFound
	}
	return err
}
