/*
Package contactsdk provides a Go client for the contacts service.

# Overview

The package is organized around two types:

  - SDKClient: unauthenticated operations (register, login, health, JWKS)
  - Session: operations on behalf of a logged-in user

Create an SDKClient and log in to obtain a Session:

	client := contactsdk.NewSDKClient("http://localhost:3000")

	_, err := client.Register(ctx, contactsdk.RegisterRequest{
		Username: "alice",
		Password: "secret",
		Name:     "Alice",
	})

	session, err := client.Login(ctx, "alice", "secret")

A Session carries the bearer token returned by login. Tokens are valid for one
hour and are not refreshed; log in again once requests start failing with 401.

	me, err := session.Current(ctx)

	contact, err := session.CreateContact(ctx, contactsdk.CreateContactRequest{
		FirstName: "Ada",
		Email:     contactsdk.String("ada@example.com"),
	})

	contact, err = session.UpdateContact(ctx, contact.ID, contactsdk.UpdateContactRequest{
		Phone: contactsdk.String("555-0100"),
	})

	err = session.RemoveContact(ctx, contact.ID)

	_, err = session.Logout(ctx)

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP status,
the server's message and, for validation failures, a per-field map:

	var apiErr *contactsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		// contact does not exist or belongs to someone else
	}

The helpers IsUnauthorized, IsNotFound and IsValidation cover the common
checks.

# Wire Format

Successful responses are wrapped as {"data": ...}. Errors are
{"errors": "message"} with an optional "details" object. The server side of
the service writes errors through APIError.WriteError so both ends share one
definition.
*/
package contactsdk
