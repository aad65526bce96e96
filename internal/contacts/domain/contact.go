package domain

import "time"

// Contact is a single address-book entry. Username is the owning user and is
// never exposed through the public API.
type Contact struct {
	ID        int64
	Username  string
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactPatch carries the optional fields of a partial update. Nil means
// "leave unchanged".
type ContactPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
}
