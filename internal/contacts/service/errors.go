package service

import "errors"

var (
	// ErrUsernameTaken is returned by Register when the username is in use.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("username or password is invalid")

	// ErrUnauthorized is returned for a missing, invalid, expired or revoked
	// session token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrContactNotFound covers both a missing contact and one owned by
	// another user.
	ErrContactNotFound = errors.New("contact is not found")
)
